package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/domain"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"go.uber.org/zap"
)

// CreateRoomRequest is the request DTO for creating a room.
type CreateRoomRequest struct {
	HotelID          uuid.UUID `json:"hotel_id" binding:"required"`
	RoomNumber       string    `json:"room_number" binding:"required"`
	RoomType         string    `json:"room_type" binding:"required"`
	NightlyRateCents int64     `json:"nightly_rate_cents" binding:"required"`
	MaxOccupancy     int       `json:"max_occupancy" binding:"required"`
	Description      string    `json:"description"`
}

// UpdateRoomRequest carries a partial room update. Nil fields are untouched.
type UpdateRoomRequest struct {
	RoomNumber       *string `json:"room_number"`
	RoomType         *string `json:"room_type"`
	NightlyRateCents *int64  `json:"nightly_rate_cents"`
	MaxOccupancy     *int    `json:"max_occupancy"`
	Description      *string `json:"description"`
	Available        *bool   `json:"available"`
}

// RoomDTO is the API response representation of a room.
type RoomDTO struct {
	ID               uuid.UUID   `json:"id"`
	HotelID          uuid.UUID   `json:"hotel_id"`
	RoomNumber       string      `json:"room_number"`
	RoomType         string      `json:"room_type"`
	NightlyRateCents int64       `json:"nightly_rate_cents"`
	MaxOccupancy     int         `json:"max_occupancy"`
	Description      string      `json:"description,omitempty"`
	Available        bool        `json:"available"`
	AmenityIDs       []uuid.UUID `json:"amenity_ids,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// RoomService implements use cases for room inventory management.
type RoomService struct {
	rooms     roomDomain.Repository
	hotels    hotelDomain.Repository
	amenities roomDomain.AmenityRepository
	cache     *cache.Service
	logger    *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(
	rooms roomDomain.Repository,
	hotels hotelDomain.Repository,
	amenities roomDomain.AmenityRepository,
	cacheSvc *cache.Service,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		rooms:     rooms,
		hotels:    hotels,
		amenities: amenities,
		cache:     cacheSvc,
		logger:    logger,
	}
}

// CreateRoom adds a room to an existing hotel.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomDTO, error) {
	if _, err := s.hotels.FindByID(ctx, req.HotelID); err != nil {
		return nil, err
	}

	rm, err := roomDomain.NewRoom(
		req.HotelID,
		req.RoomNumber, req.RoomType,
		req.NightlyRateCents,
		req.MaxOccupancy,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rooms.Save(ctx, rm); err != nil {
		s.logger.Error("failed to create room", zap.Error(err))
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.logger.Info("room created",
		zap.String("room_id", rm.ID().String()),
		zap.String("hotel_id", req.HotelID.String()),
	)
	result := toRoomDTO(rm, nil)
	return &result, nil
}

// GetRoom returns a single room with its amenity links.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	key := cache.RoomKey(id)
	var cached RoomDTO
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	rm, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amenityIDs, err := s.rooms.AmenityIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toRoomDTO(rm, amenityIDs)
	s.cache.Set(ctx, key, result)
	return &result, nil
}

// ListRoomsByHotel returns paginated rooms for a hotel.
func (s *RoomService) ListRoomsByHotel(ctx context.Context, hotelID uuid.UUID, page, limit int) (*domain.PaginatedResult[RoomDTO], error) {
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		return nil, err
	}

	rooms, total, err := s.rooms.FindByHotelID(ctx, hotelID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm, nil)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// UpdateRoom applies a partial room update.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := roomDomain.UpdatePatch{
		RoomNumber:       req.RoomNumber,
		RoomType:         req.RoomType,
		NightlyRateCents: req.NightlyRateCents,
		MaxOccupancy:     req.MaxOccupancy,
		Description:      req.Description,
		Available:        req.Available,
	}
	if err := rm.ApplyUpdate(patch); err != nil {
		return nil, err
	}

	rm.IncrementVersion()
	if err := s.rooms.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	s.logger.Info("room updated", zap.String("room_id", id.String()))
	result := toRoomDTO(rm, nil)
	return &result, nil
}

// DeleteRoom removes a room from inventory.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.rooms.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("room", id.String())
	}
	s.invalidate(ctx, id)

	s.logger.Info("room deleted", zap.String("room_id", id.String()))
	return nil
}

// AssignAmenity links an amenity to a room. Linking twice is a no-op.
func (s *RoomService) AssignAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return err
	}
	if _, err := s.amenities.FindByID(ctx, amenityID); err != nil {
		return err
	}
	if err := s.rooms.AssignAmenity(ctx, roomID, amenityID); err != nil {
		return err
	}
	s.invalidate(ctx, roomID)
	return nil
}

// RemoveAmenity unlinks an amenity from a room.
func (s *RoomService) RemoveAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return err
	}
	if err := s.rooms.RemoveAmenity(ctx, roomID, amenityID); err != nil {
		return err
	}
	s.invalidate(ctx, roomID)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context, roomID uuid.UUID) {
	s.cache.Delete(ctx, cache.RoomKey(roomID))
	s.cache.DeletePattern(ctx, cache.RoomAvailabilityPattern(roomID))
}

func toRoomDTO(rm *roomDomain.Room, amenityIDs []uuid.UUID) RoomDTO {
	return RoomDTO{
		ID:               rm.ID(),
		HotelID:          rm.HotelID(),
		RoomNumber:       rm.RoomNumber(),
		RoomType:         rm.RoomType(),
		NightlyRateCents: rm.NightlyRateCents(),
		MaxOccupancy:     rm.MaxOccupancy(),
		Description:      rm.Description(),
		Available:        rm.IsAvailable(),
		AmenityIDs:       amenityIDs,
		CreatedAt:        rm.CreatedAt(),
		UpdatedAt:        rm.UpdatedAt(),
	}
}
