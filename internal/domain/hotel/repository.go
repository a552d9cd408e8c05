package hotel

import (
	"context"

	"github.com/google/uuid"
)

// Query filters a paged hotel listing. Zero values mean "no filter".
type Query struct {
	Page          int
	Limit         int
	Search        string
	City          string
	Country       string
	MinStarRating int
}

// Repository defines the persistence contract for hotels.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	Search(ctx context.Context, q Query) ([]*Hotel, int64, error)
	Save(ctx context.Context, h *Hotel) error
	Update(ctx context.Context, h *Hotel) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// FacilityIDs returns the facilities attached to a hotel.
	FacilityIDs(ctx context.Context, hotelID uuid.UUID) ([]uuid.UUID, error)
	// AssignFacility links a facility to a hotel; idempotent.
	AssignFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error
	// RemoveFacility unlinks a facility from a hotel.
	RemoveFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error
}

// FacilityRepository defines the persistence contract for facilities.
type FacilityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	ListAll(ctx context.Context) ([]*Facility, error)
	Save(ctx context.Context, f *Facility) error
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
