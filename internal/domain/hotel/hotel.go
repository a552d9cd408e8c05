package hotel

import (
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Hotel is the aggregate root for a property in the inventory.
type Hotel struct {
	id          uuid.UUID
	name        string
	address     string
	city        string
	country     string
	description string
	starRating  int
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewHotel creates a new hotel with validated fields.
func NewHotel(name, address, city, country, description string, starRating int) (*Hotel, error) {
	if name == "" {
		return nil, domain.NewValidationError("hotel name is required")
	}
	if address == "" {
		return nil, domain.NewValidationError("hotel address is required")
	}
	if city == "" || country == "" {
		return nil, domain.NewValidationError("hotel city and country are required")
	}
	if starRating < 1 || starRating > 5 {
		return nil, domain.NewValidationError("star rating must be between 1 and 5")
	}

	now := time.Now().UTC()
	return &Hotel{
		id:          uuid.New(),
		name:        name,
		address:     address,
		city:        city,
		country:     country,
		description: description,
		starRating:  starRating,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructHotel rebuilds a Hotel from persistence data (no validation).
func ReconstructHotel(
	id uuid.UUID,
	name, address, city, country, description string,
	starRating int,
	version int64,
	createdAt, updatedAt time.Time,
) *Hotel {
	return &Hotel{
		id:          id,
		name:        name,
		address:     address,
		city:        city,
		country:     country,
		description: description,
		starRating:  starRating,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the hotel's unique identifier.
func (h *Hotel) ID() uuid.UUID { return h.id }

// Name returns the hotel name.
func (h *Hotel) Name() string { return h.name }

// Address returns the street address.
func (h *Hotel) Address() string { return h.address }

// City returns the city.
func (h *Hotel) City() string { return h.city }

// Country returns the country.
func (h *Hotel) Country() string { return h.country }

// Description returns the free-text description.
func (h *Hotel) Description() string { return h.description }

// StarRating returns the star rating (1-5).
func (h *Hotel) StarRating() int { return h.starRating }

// Version returns the entity version for optimistic locking.
func (h *Hotel) Version() int64 { return h.version }

// CreatedAt returns the creation timestamp.
func (h *Hotel) CreatedAt() time.Time { return h.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (h *Hotel) UpdatedAt() time.Time { return h.updatedAt }

// ApplyUpdate applies the non-nil fields of patch. Absent fields are left
// untouched.
func (h *Hotel) ApplyUpdate(patch UpdatePatch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.NewValidationError("hotel name cannot be empty")
		}
		h.name = *patch.Name
	}
	if patch.Address != nil {
		h.address = *patch.Address
	}
	if patch.City != nil {
		h.city = *patch.City
	}
	if patch.Country != nil {
		h.country = *patch.Country
	}
	if patch.Description != nil {
		h.description = *patch.Description
	}
	if patch.StarRating != nil {
		if *patch.StarRating < 1 || *patch.StarRating > 5 {
			return domain.NewValidationError("star rating must be between 1 and 5")
		}
		h.starRating = *patch.StarRating
	}
	h.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (h *Hotel) IncrementVersion() {
	h.version++
	h.updatedAt = time.Now().UTC()
}

// UpdatePatch carries the optional fields of a partial hotel update. Nil
// means "not provided".
type UpdatePatch struct {
	Name        *string
	Address     *string
	City        *string
	Country     *string
	Description *string
	StarRating  *int
}
