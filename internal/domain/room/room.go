package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Room is the bookable unit of inventory. Nightly rate is fixed point in
// cents. The Available flag is an administrative switch; date-range
// availability is the booking domain's concern.
type Room struct {
	id               uuid.UUID
	hotelID          uuid.UUID
	roomNumber       string
	roomType         string
	nightlyRateCents int64
	maxOccupancy     int
	description      string
	available        bool
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRoom creates a new available room with validated fields.
func NewRoom(
	hotelID uuid.UUID,
	roomNumber, roomType string,
	nightlyRateCents int64,
	maxOccupancy int,
	description string,
) (*Room, error) {
	if hotelID == uuid.Nil {
		return nil, domain.NewValidationError("hotel ID is required")
	}
	if roomNumber == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if roomType == "" {
		return nil, domain.NewValidationError("room type is required")
	}
	if nightlyRateCents <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}
	if maxOccupancy <= 0 {
		return nil, domain.NewValidationError("max occupancy must be positive")
	}

	now := time.Now().UTC()
	return &Room{
		id:               uuid.New(),
		hotelID:          hotelID,
		roomNumber:       roomNumber,
		roomType:         roomType,
		nightlyRateCents: nightlyRateCents,
		maxOccupancy:     maxOccupancy,
		description:      description,
		available:        true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructRoom rebuilds a Room from persistence data (no validation).
func ReconstructRoom(
	id, hotelID uuid.UUID,
	roomNumber, roomType string,
	nightlyRateCents int64,
	maxOccupancy int,
	description string,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:               id,
		hotelID:          hotelID,
		roomNumber:       roomNumber,
		roomType:         roomType,
		nightlyRateCents: nightlyRateCents,
		maxOccupancy:     maxOccupancy,
		description:      description,
		available:        available,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ID returns the room's unique identifier.
func (r *Room) ID() uuid.UUID { return r.id }

// HotelID returns the owning hotel's identifier.
func (r *Room) HotelID() uuid.UUID { return r.hotelID }

// RoomNumber returns the room number within the hotel.
func (r *Room) RoomNumber() string { return r.roomNumber }

// RoomType returns the room category (single, double, suite...).
func (r *Room) RoomType() string { return r.roomType }

// NightlyRateCents returns the per-night price in cents.
func (r *Room) NightlyRateCents() int64 { return r.nightlyRateCents }

// MaxOccupancy returns the maximum number of guests the room holds.
func (r *Room) MaxOccupancy() int { return r.maxOccupancy }

// Description returns the free-text description.
func (r *Room) Description() string { return r.description }

// IsAvailable reports whether the room is administratively open for booking.
func (r *Room) IsAvailable() bool { return r.available }

// Version returns the entity version for optimistic locking.
func (r *Room) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// ApplyUpdate applies the non-nil fields of patch. Absent fields are left
// untouched.
func (r *Room) ApplyUpdate(patch UpdatePatch) error {
	if patch.RoomNumber != nil {
		if *patch.RoomNumber == "" {
			return domain.NewValidationError("room number cannot be empty")
		}
		r.roomNumber = *patch.RoomNumber
	}
	if patch.RoomType != nil {
		r.roomType = *patch.RoomType
	}
	if patch.NightlyRateCents != nil {
		if *patch.NightlyRateCents <= 0 {
			return domain.NewValidationError("nightly rate must be positive")
		}
		r.nightlyRateCents = *patch.NightlyRateCents
	}
	if patch.MaxOccupancy != nil {
		if *patch.MaxOccupancy <= 0 {
			return domain.NewValidationError("max occupancy must be positive")
		}
		r.maxOccupancy = *patch.MaxOccupancy
	}
	if patch.Description != nil {
		r.description = *patch.Description
	}
	if patch.Available != nil {
		r.available = *patch.Available
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Room) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}

// UpdatePatch carries the optional fields of a partial room update. Nil
// means "not provided".
type UpdatePatch struct {
	RoomNumber       *string
	RoomType         *string
	NightlyRateCents *int64
	MaxOccupancy     *int
	Description      *string
	Available        *bool
}
