package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HotelModel is the GORM model for the hotels table.
type HotelModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null;index"`
	Address     string    `gorm:"type:varchar(300);not null"`
	City        string    `gorm:"type:varchar(100);not null;index"`
	Country     string    `gorm:"type:varchar(100);not null;index"`
	Description string    `gorm:"type:text"`
	StarRating  int       `gorm:"not null"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (HotelModel) TableName() string { return "hotels" }

// HotelFacilityModel is the join table between hotels and facilities.
type HotelFacilityModel struct {
	HotelID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FacilityID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (HotelFacilityModel) TableName() string { return "hotel_facilities" }

// GormHotelRepository implements the hotel Repository using GORM.
type GormHotelRepository struct {
	db *gorm.DB
}

func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

func (r *GormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Hotel, error) {
	var model HotelModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("hotel", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return toHotelDomain(&model), nil
}

// Search returns a filtered, paginated hotel listing.
func (r *GormHotelRepository) Search(ctx context.Context, query hotelDomain.Query) ([]*hotelDomain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&HotelModel{})
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.City != "" {
		q = q.Where("city ILIKE ?", query.City)
	}
	if query.Country != "" {
		q = q.Where("country ILIKE ?", query.Country)
	}
	if query.MinStarRating > 0 {
		q = q.Where("star_rating >= ?", query.MinStarRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateStoreError(err, "")
	}

	var models []HotelModel
	offset := (query.Page - 1) * query.Limit
	if err := q.Order("name ASC").Offset(offset).Limit(query.Limit).Find(&models).Error; err != nil {
		return nil, 0, translateStoreError(err, "")
	}

	hotels := make([]*hotelDomain.Hotel, len(models))
	for i, m := range models {
		hotels[i] = toHotelDomain(&m)
	}
	return hotels, total, nil
}

func (r *GormHotelRepository) Save(ctx context.Context, h *hotelDomain.Hotel) error {
	return translateStoreError(r.db.WithContext(ctx).Create(toHotelModel(h)).Error, "")
}

func (r *GormHotelRepository) Update(ctx context.Context, h *hotelDomain.Hotel) error {
	model := toHotelModel(h)
	previousVersion := h.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&HotelModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"address":     model.Address,
			"city":        model.City,
			"country":     model.Country,
			"description": model.Description,
			"star_rating": model.StarRating,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("hotel was modified by another transaction")
	}
	return nil
}

func (r *GormHotelRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&HotelModel{})
	if result.Error != nil {
		return false, translateStoreError(result.Error, "")
	}
	return result.RowsAffected > 0, nil
}

func (r *GormHotelRepository) FacilityIDs(ctx context.Context, hotelID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&HotelFacilityModel{}).
		Where("hotel_id = ?", hotelID).
		Pluck("facility_id", &ids).Error; err != nil {
		return nil, translateStoreError(err, "")
	}
	return ids, nil
}

func (r *GormHotelRepository) AssignFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error {
	link := HotelFacilityModel{HotelID: hotelID, FacilityID: facilityID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	return translateStoreError(err, "")
}

func (r *GormHotelRepository) RemoveFacility(ctx context.Context, hotelID, facilityID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND facility_id = ?", hotelID, facilityID).
		Delete(&HotelFacilityModel{}).Error
	return translateStoreError(err, "")
}

func toHotelModel(h *hotelDomain.Hotel) *HotelModel {
	return &HotelModel{
		ID:          h.ID(),
		Name:        h.Name(),
		Address:     h.Address(),
		City:        h.City(),
		Country:     h.Country(),
		Description: h.Description(),
		StarRating:  h.StarRating(),
		Version:     h.Version(),
		CreatedAt:   h.CreatedAt(),
		UpdatedAt:   h.UpdatedAt(),
	}
}

func toHotelDomain(m *HotelModel) *hotelDomain.Hotel {
	return hotelDomain.ReconstructHotel(
		m.ID,
		m.Name,
		m.Address,
		m.City,
		m.Country,
		m.Description,
		m.StarRating,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
