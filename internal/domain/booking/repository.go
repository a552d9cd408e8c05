package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
//
// CreateConfirmed and Reschedule are atomic check-then-write operations: each
// serializes against concurrent writers for the same room (row lock on the
// room plus a commit-time exclusion constraint) so that the availability
// check and the write cannot be interleaved by another request. A lost race
// surfaces as a conflict error.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByRoomID retrieves bookings for a specific room with pagination.
	FindByRoomID(ctx context.Context, roomID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByGuestEmail retrieves bookings made under a guest email with pagination.
	FindByGuestEmail(ctx context.Context, email string, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// FindOverlapping reports whether any non-cancelled booking for roomID
	// overlaps the half-open stay interval. When excludeID is non-nil that
	// booking is ignored, so an update can check availability against its
	// own reservation.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, stay StayDates, excludeID *uuid.UUID) (bool, error)

	// CreateConfirmed persists a new booking, re-checking availability
	// inside the same transaction that performs the insert.
	CreateConfirmed(ctx context.Context, booking *Booking) error

	// Reschedule persists a date change, re-checking availability (with the
	// booking's own id excluded) inside the same transaction as the update.
	Reschedule(ctx context.Context, booking *Booking) error

	// Update persists non-date changes with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking unconditionally. Returns false if no such
	// booking exists.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
