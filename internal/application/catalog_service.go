package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"go.uber.org/zap"
)

// CatalogItemRequest is the request DTO for creating or updating a facility
// or amenity.
type CatalogItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CatalogItemDTO is the API response representation of a facility or amenity.
type CatalogItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FacilityService manages the hotel facility catalog.
type FacilityService struct {
	repo   hotelDomain.FacilityRepository
	logger *zap.Logger
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(repo hotelDomain.FacilityRepository, logger *zap.Logger) *FacilityService {
	return &FacilityService{repo: repo, logger: logger}
}

// CreateFacility adds a facility to the catalog.
func (s *FacilityService) CreateFacility(ctx context.Context, req CatalogItemRequest) (*CatalogItemDTO, error) {
	f, err := hotelDomain.NewFacility(req.Name, req.Description, req.Icon)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("facility created", zap.String("facility_id", f.ID.String()), zap.String("name", f.Name))
	result := facilityDTO(f)
	return &result, nil
}

// GetFacility returns a single facility.
func (s *FacilityService) GetFacility(ctx context.Context, id uuid.UUID) (*CatalogItemDTO, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := facilityDTO(f)
	return &result, nil
}

// ListFacilities returns the full facility catalog.
func (s *FacilityService) ListFacilities(ctx context.Context) ([]CatalogItemDTO, error) {
	facilities, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CatalogItemDTO, len(facilities))
	for i, f := range facilities {
		dtos[i] = facilityDTO(f)
	}
	return dtos, nil
}

// UpdateFacility replaces a facility's fields.
func (s *FacilityService) UpdateFacility(ctx context.Context, id uuid.UUID, req CatalogItemRequest) (*CatalogItemDTO, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Name = req.Name
	f.Description = req.Description
	f.Icon = req.Icon
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	result := facilityDTO(f)
	return &result, nil
}

// DeleteFacility removes a facility from the catalog.
func (s *FacilityService) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("facility", id.String())
	}
	return nil
}

// AmenityService manages the room amenity catalog.
type AmenityService struct {
	repo   roomDomain.AmenityRepository
	logger *zap.Logger
}

// NewAmenityService creates a new AmenityService.
func NewAmenityService(repo roomDomain.AmenityRepository, logger *zap.Logger) *AmenityService {
	return &AmenityService{repo: repo, logger: logger}
}

// CreateAmenity adds an amenity to the catalog.
func (s *AmenityService) CreateAmenity(ctx context.Context, req CatalogItemRequest) (*CatalogItemDTO, error) {
	a, err := roomDomain.NewAmenity(req.Name, req.Description, req.Icon)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("amenity created", zap.String("amenity_id", a.ID.String()), zap.String("name", a.Name))
	result := amenityDTO(a)
	return &result, nil
}

// GetAmenity returns a single amenity.
func (s *AmenityService) GetAmenity(ctx context.Context, id uuid.UUID) (*CatalogItemDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := amenityDTO(a)
	return &result, nil
}

// ListAmenities returns the full amenity catalog.
func (s *AmenityService) ListAmenities(ctx context.Context) ([]CatalogItemDTO, error) {
	amenities, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CatalogItemDTO, len(amenities))
	for i, a := range amenities {
		dtos[i] = amenityDTO(a)
	}
	return dtos, nil
}

// UpdateAmenity replaces an amenity's fields.
func (s *AmenityService) UpdateAmenity(ctx context.Context, id uuid.UUID, req CatalogItemRequest) (*CatalogItemDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = req.Name
	a.Description = req.Description
	a.Icon = req.Icon
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	result := amenityDTO(a)
	return &result, nil
}

// DeleteAmenity removes an amenity from the catalog.
func (s *AmenityService) DeleteAmenity(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("amenity", id.String())
	}
	return nil
}

func facilityDTO(f *hotelDomain.Facility) CatalogItemDTO {
	return CatalogItemDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Icon:        f.Icon,
		CreatedAt:   f.CreatedAt,
	}
}

func amenityDTO(a *roomDomain.Amenity) CatalogItemDTO {
	return CatalogItemDTO{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		CreatedAt:   a.CreatedAt,
	}
}
