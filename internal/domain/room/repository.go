package room

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for rooms.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByHotelID(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]*Room, int64, error)
	Save(ctx context.Context, r *Room) error
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AmenityIDs returns the amenities attached to a room.
	AmenityIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
	// AssignAmenity links an amenity to a room; idempotent.
	AssignAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error
	// RemoveAmenity unlinks an amenity from a room.
	RemoveAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error
}

// AmenityRepository defines the persistence contract for amenities.
type AmenityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Amenity, error)
	ListAll(ctx context.Context) ([]*Amenity, error)
	Save(ctx context.Context, a *Amenity) error
	Update(ctx context.Context, a *Amenity) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
