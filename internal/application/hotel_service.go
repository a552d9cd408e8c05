package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/domain"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	"go.uber.org/zap"
)

// CreateHotelRequest is the request DTO for creating a hotel.
type CreateHotelRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Description string `json:"description"`
	StarRating  int    `json:"star_rating" binding:"required"`
}

// UpdateHotelRequest carries a partial hotel update. Nil fields are untouched.
type UpdateHotelRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Description *string `json:"description"`
	StarRating  *int    `json:"star_rating"`
}

// HotelQuery holds the filters of a paged hotel search.
type HotelQuery struct {
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=20"`
	Search        string `form:"search"`
	City          string `form:"city"`
	Country       string `form:"country"`
	MinStarRating int    `form:"min_star_rating"`
}

// HotelDTO is the API response representation of a hotel.
type HotelDTO struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Description string      `json:"description,omitempty"`
	StarRating  int         `json:"star_rating"`
	FacilityIDs []uuid.UUID `json:"facility_ids,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HotelService implements use cases for hotel catalog management.
type HotelService struct {
	hotels     hotelDomain.Repository
	facilities hotelDomain.FacilityRepository
	cache      *cache.Service
	logger     *zap.Logger
}

// NewHotelService creates a new HotelService.
func NewHotelService(
	hotels hotelDomain.Repository,
	facilities hotelDomain.FacilityRepository,
	cacheSvc *cache.Service,
	logger *zap.Logger,
) *HotelService {
	return &HotelService{
		hotels:     hotels,
		facilities: facilities,
		cache:      cacheSvc,
		logger:     logger,
	}
}

// CreateHotel registers a new hotel.
func (s *HotelService) CreateHotel(ctx context.Context, req CreateHotelRequest) (*HotelDTO, error) {
	h, err := hotelDomain.NewHotel(req.Name, req.Address, req.City, req.Country, req.Description, req.StarRating)
	if err != nil {
		return nil, err
	}

	if err := s.hotels.Save(ctx, h); err != nil {
		s.logger.Error("failed to create hotel", zap.Error(err))
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	s.logger.Info("hotel created", zap.String("hotel_id", h.ID().String()), zap.String("name", h.Name()))
	result := toHotelDTO(h, nil)
	return &result, nil
}

// GetHotel returns a single hotel with its facility links.
func (s *HotelService) GetHotel(ctx context.Context, id uuid.UUID) (*HotelDTO, error) {
	key := cache.HotelKey(id)
	var cached HotelDTO
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	h, err := s.hotels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	facilityIDs, err := s.hotels.FacilityIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toHotelDTO(h, facilityIDs)
	s.cache.Set(ctx, key, result)
	return &result, nil
}

// SearchHotels returns a filtered, paginated hotel listing.
func (s *HotelService) SearchHotels(ctx context.Context, q HotelQuery) (*domain.PaginatedResult[HotelDTO], error) {
	hotels, total, err := s.hotels.Search(ctx, hotelDomain.Query{
		Page:          q.Page,
		Limit:         q.Limit,
		Search:        q.Search,
		City:          q.City,
		Country:       q.Country,
		MinStarRating: q.MinStarRating,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]HotelDTO, len(hotels))
	for i, h := range hotels {
		dtos[i] = toHotelDTO(h, nil)
	}
	result := domain.NewPaginatedResult(dtos, total, q.Page, q.Limit)
	return &result, nil
}

// UpdateHotel applies a partial hotel update.
func (s *HotelService) UpdateHotel(ctx context.Context, id uuid.UUID, req UpdateHotelRequest) (*HotelDTO, error) {
	h, err := s.hotels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := hotelDomain.UpdatePatch{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Description: req.Description,
		StarRating:  req.StarRating,
	}
	if err := h.ApplyUpdate(patch); err != nil {
		return nil, err
	}

	h.IncrementVersion()
	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, cache.HotelKey(id))

	s.logger.Info("hotel updated", zap.String("hotel_id", id.String()))
	result := toHotelDTO(h, nil)
	return &result, nil
}

// DeleteHotel removes a hotel and, through the schema's cascade, its rooms.
func (s *HotelService) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.hotels.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("hotel", id.String())
	}
	s.cache.Delete(ctx, cache.HotelKey(id))

	s.logger.Info("hotel deleted", zap.String("hotel_id", id.String()))
	return nil
}

// AssignFacility links a facility to a hotel. Linking twice is a no-op.
func (s *HotelService) AssignFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error {
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		return err
	}
	if _, err := s.facilities.FindByID(ctx, facilityID); err != nil {
		return err
	}
	if err := s.hotels.AssignFacility(ctx, hotelID, facilityID); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.HotelKey(hotelID))
	return nil
}

// RemoveFacility unlinks a facility from a hotel.
func (s *HotelService) RemoveFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error {
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		return err
	}
	if err := s.hotels.RemoveFacility(ctx, hotelID, facilityID); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.HotelKey(hotelID))
	return nil
}

func toHotelDTO(h *hotelDomain.Hotel, facilityIDs []uuid.UUID) HotelDTO {
	return HotelDTO{
		ID:          h.ID(),
		Name:        h.Name(),
		Address:     h.Address(),
		City:        h.City(),
		Country:     h.Country(),
		Description: h.Description(),
		StarRating:  h.StarRating(),
		FacilityIDs: facilityIDs,
		CreatedAt:   h.CreatedAt(),
		UpdatedAt:   h.UpdatedAt(),
	}
}
