package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Booking is the aggregate root for the booking domain. For a given room,
// the set of bookings whose status is not cancelled must hold pairwise
// non-overlapping stay intervals; the store enforces this at commit time and
// the lifecycle manager enforces it before every write.
type Booking struct {
	id     uuid.UUID
	roomID uuid.UUID
	guest  Guest
	stay   StayDates
	guests int

	totalPriceCents int64
	currency        string

	status      BookingStatus
	cancelledAt *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking directly in the confirmed state. Availability
// and capacity checks are the lifecycle manager's responsibility; this
// constructor validates only the aggregate's own invariants.
func NewBooking(
	roomID uuid.UUID,
	guest Guest,
	stay StayDates,
	guests int,
	totalPriceCents int64,
	currency string,
) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if err := guest.Validate(); err != nil {
		return nil, err
	}
	if !stay.IsOrdered() {
		return nil, domain.NewValidationError("check-out date must be after check-in date")
	}
	if guests <= 0 {
		return nil, domain.NewValidationError("number of guests must be positive")
	}
	if totalPriceCents <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		roomID:          roomID,
		guest:           guest,
		stay:            stay,
		guests:          guests,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          StatusConfirmed,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	roomID uuid.UUID,
	guest Guest,
	stay StayDates,
	guests int,
	totalPriceCents int64,
	currency string,
	status BookingStatus,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		roomID:          roomID,
		guest:           guest,
		stay:            stay,
		guests:          guests,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          status,
		cancelledAt:     cancelledAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomID returns the booked room's identifier.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// Guest returns the guest identity.
func (b *Booking) Guest() Guest { return b.guest }

// Stay returns the half-open [checkIn, checkOut) interval.
func (b *Booking) Stay() StayDates { return b.stay }

// GuestCount returns the number of guests staying.
func (b *Booking) GuestCount() int { return b.guests }

// TotalPriceCents returns the computed total price in cents.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// CancelledAt returns the time the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsCancelled reports whether the booking has been cancelled.
func (b *Booking) IsCancelled() bool { return b.status == StatusCancelled }

// --- Behavior ---

// ChangeGuest replaces the guest identity on a live booking.
func (b *Booking) ChangeGuest(guest Guest) error {
	if b.IsCancelled() {
		return domain.NewConflictError("cannot update a cancelled booking")
	}
	if err := guest.Validate(); err != nil {
		return err
	}
	b.guest = guest
	b.updatedAt = time.Now().UTC()
	return nil
}

// ChangeGuestCount updates the number of guests staying.
func (b *Booking) ChangeGuestCount(guests int) error {
	if b.IsCancelled() {
		return domain.NewConflictError("cannot update a cancelled booking")
	}
	if guests <= 0 {
		return domain.NewValidationError("number of guests must be positive")
	}
	b.guests = guests
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reschedule moves the booking to a new stay interval with a freshly
// computed total. The caller re-verifies availability before invoking this.
func (b *Booking) Reschedule(stay StayDates, totalPriceCents int64) error {
	if b.IsCancelled() {
		return domain.NewConflictError("cannot update a cancelled booking")
	}
	if !stay.IsOrdered() {
		return domain.NewValidationError("check-out date must be after check-in date")
	}
	b.stay = stay
	b.totalPriceCents = totalPriceCents
	b.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus applies an explicit status edit, enforcing the transition
// table. Setting the current status again is a no-op.
func (b *Booking) ChangeStatus(target BookingStatus) error {
	if target == b.status {
		return nil
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	if target == StatusCancelled {
		now := time.Now().UTC()
		b.cancelledAt = &now
	}
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel moves the booking to cancelled. Cancelling an already-cancelled
// booking is an idempotent no-op; the second return value reports whether
// state actually changed.
func (b *Booking) Cancel() (bool, error) {
	if b.IsCancelled() {
		return false, nil
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return false, domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
	return true, nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

// String implements fmt.Stringer for log output.
func (b *Booking) String() string {
	return fmt.Sprintf("booking %s room=%s %s..%s status=%s",
		b.id, b.roomID,
		b.stay.CheckIn().Format("2006-01-02"), b.stay.CheckOut().Format("2006-01-02"),
		b.status)
}
