package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	HotelID          uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomNumber       string    `gorm:"type:varchar(20);not null"`
	RoomType         string    `gorm:"type:varchar(50);not null"`
	NightlyRateCents int64     `gorm:"not null"`
	MaxOccupancy     int       `gorm:"not null"`
	Description      string    `gorm:"type:text"`
	Available        bool      `gorm:"not null;default:true"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time `gorm:"type:timestamptz;not null"`
}

func (RoomModel) TableName() string { return "rooms" }

// RoomAmenityModel is the join table between rooms and amenities.
type RoomAmenityModel struct {
	RoomID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AmenityID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (RoomAmenityModel) TableName() string { return "room_amenities" }

// GormRoomRepository implements the room Repository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("room", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return toRoomDomain(&model), nil
}

func (r *GormRoomRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateStoreError(err, "")
	}
	return count > 0, nil
}

func (r *GormRoomRepository) FindByHotelID(ctx context.Context, hotelID uuid.UUID, page, limit int) ([]*roomDomain.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&RoomModel{}).Where("hotel_id = ?", hotelID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError(err, "")
	}

	var models []RoomModel
	offset := (page - 1) * limit
	if err := q.Order("room_number ASC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, translateStoreError(err, "")
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rooms[i] = toRoomDomain(&m)
	}
	return rooms, total, nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *roomDomain.Room) error {
	return translateStoreError(r.db.WithContext(ctx).Create(toRoomModel(room)).Error, "")
}

func (r *GormRoomRepository) Update(ctx context.Context, room *roomDomain.Room) error {
	model := toRoomModel(room)
	previousVersion := room.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"room_number":        model.RoomNumber,
			"room_type":          model.RoomType,
			"nightly_rate_cents": model.NightlyRateCents,
			"max_occupancy":      model.MaxOccupancy,
			"description":        model.Description,
			"available":          model.Available,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RoomModel{})
	if result.Error != nil {
		return false, translateStoreError(result.Error, "")
	}
	return result.RowsAffected > 0, nil
}

func (r *GormRoomRepository) AmenityIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&RoomAmenityModel{}).
		Where("room_id = ?", roomID).
		Pluck("amenity_id", &ids).Error; err != nil {
		return nil, translateStoreError(err, "")
	}
	return ids, nil
}

func (r *GormRoomRepository) AssignAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error {
	link := RoomAmenityModel{RoomID: roomID, AmenityID: amenityID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	return translateStoreError(err, "")
}

func (r *GormRoomRepository) RemoveAmenity(ctx context.Context, roomID, amenityID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND amenity_id = ?", roomID, amenityID).
		Delete(&RoomAmenityModel{}).Error
	return translateStoreError(err, "")
}

func toRoomModel(room *roomDomain.Room) *RoomModel {
	return &RoomModel{
		ID:               room.ID(),
		HotelID:          room.HotelID(),
		RoomNumber:       room.RoomNumber(),
		RoomType:         room.RoomType(),
		NightlyRateCents: room.NightlyRateCents(),
		MaxOccupancy:     room.MaxOccupancy(),
		Description:      room.Description(),
		Available:        room.IsAvailable(),
		Version:          room.Version(),
		CreatedAt:        room.CreatedAt(),
		UpdatedAt:        room.UpdatedAt(),
	}
}

func toRoomDomain(m *RoomModel) *roomDomain.Room {
	return roomDomain.ReconstructRoom(
		m.ID,
		m.HotelID,
		m.RoomNumber,
		m.RoomType,
		m.NightlyRateCents,
		m.MaxOccupancy,
		m.Description,
		m.Available,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
