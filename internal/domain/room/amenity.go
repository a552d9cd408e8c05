package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Amenity is a room-level feature (wifi, minibar, balcony) that can be
// attached to any number of rooms.
type Amenity struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
}

// NewAmenity creates an amenity with validated fields.
func NewAmenity(name, description, icon string) (*Amenity, error) {
	if name == "" {
		return nil, domain.NewValidationError("amenity name is required")
	}
	return &Amenity{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
