package hotel

import (
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Facility is a property-level feature (pool, gym, parking) that can be
// attached to any number of hotels.
type Facility struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
}

// NewFacility creates a facility with validated fields.
func NewFacility(name, description, icon string) (*Facility, error) {
	if name == "" {
		return nil, domain.NewValidationError("facility name is required")
	}
	return &Facility{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
