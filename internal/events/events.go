package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics booking events are published on.
const (
	TopicBookingEvents = "hotel.booking.events"
)

// CloudEvent type identifiers.
const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
	BookingDeleted   = "booking.deleted"
)

// BookingCreatedEvent is emitted after a booking is persisted as confirmed.
type BookingCreatedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	RoomID          uuid.UUID `json:"room_id"`
	HotelID         uuid.UUID `json:"hotel_id"`
	GuestEmail      string    `json:"guest_email"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingUpdatedEvent is emitted after a booking mutation other than cancel.
type BookingUpdatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is emitted the first time a booking is cancelled.
// Idempotent re-cancels do not emit.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	RoomID      uuid.UUID `json:"room_id"`
	CancelledAt time.Time `json:"cancelled_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingDeletedEvent is emitted after an administrative hard delete.
type BookingDeletedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
