package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"gorm.io/gorm"
)

// FacilityModel is the GORM model for the facilities table.
type FacilityModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Icon        string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (FacilityModel) TableName() string { return "facilities" }

// AmenityModel is the GORM model for the amenities table.
type AmenityModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Icon        string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (AmenityModel) TableName() string { return "amenities" }

// GormFacilityRepository implements hotel.FacilityRepository using GORM.
type GormFacilityRepository struct {
	db *gorm.DB
}

func NewGormFacilityRepository(db *gorm.DB) *GormFacilityRepository {
	return &GormFacilityRepository{db: db}
}

func (r *GormFacilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Facility, error) {
	var model FacilityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("facility", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return &hotelDomain.Facility{
		ID: model.ID, Name: model.Name, Description: model.Description,
		Icon: model.Icon, CreatedAt: model.CreatedAt,
	}, nil
}

func (r *GormFacilityRepository) ListAll(ctx context.Context) ([]*hotelDomain.Facility, error) {
	var models []FacilityModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateStoreError(err, "")
	}
	out := make([]*hotelDomain.Facility, len(models))
	for i, m := range models {
		out[i] = &hotelDomain.Facility{
			ID: m.ID, Name: m.Name, Description: m.Description,
			Icon: m.Icon, CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (r *GormFacilityRepository) Save(ctx context.Context, f *hotelDomain.Facility) error {
	model := FacilityModel{
		ID: f.ID, Name: f.Name, Description: f.Description,
		Icon: f.Icon, CreatedAt: f.CreatedAt,
	}
	return translateStoreError(r.db.WithContext(ctx).Create(&model).Error, "")
}

func (r *GormFacilityRepository) Update(ctx context.Context, f *hotelDomain.Facility) error {
	result := r.db.WithContext(ctx).Model(&FacilityModel{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"name":        f.Name,
			"description": f.Description,
			"icon":        f.Icon,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("facility", f.ID.String())
	}
	return nil
}

func (r *GormFacilityRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FacilityModel{})
	if result.Error != nil {
		return false, translateStoreError(result.Error, "")
	}
	return result.RowsAffected > 0, nil
}

// GormAmenityRepository implements room.AmenityRepository using GORM.
type GormAmenityRepository struct {
	db *gorm.DB
}

func NewGormAmenityRepository(db *gorm.DB) *GormAmenityRepository {
	return &GormAmenityRepository{db: db}
}

func (r *GormAmenityRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Amenity, error) {
	var model AmenityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("amenity", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return &roomDomain.Amenity{
		ID: model.ID, Name: model.Name, Description: model.Description,
		Icon: model.Icon, CreatedAt: model.CreatedAt,
	}, nil
}

func (r *GormAmenityRepository) ListAll(ctx context.Context) ([]*roomDomain.Amenity, error) {
	var models []AmenityModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateStoreError(err, "")
	}
	out := make([]*roomDomain.Amenity, len(models))
	for i, m := range models {
		out[i] = &roomDomain.Amenity{
			ID: m.ID, Name: m.Name, Description: m.Description,
			Icon: m.Icon, CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

func (r *GormAmenityRepository) Save(ctx context.Context, a *roomDomain.Amenity) error {
	model := AmenityModel{
		ID: a.ID, Name: a.Name, Description: a.Description,
		Icon: a.Icon, CreatedAt: a.CreatedAt,
	}
	return translateStoreError(r.db.WithContext(ctx).Create(&model).Error, "")
}

func (r *GormAmenityRepository) Update(ctx context.Context, a *roomDomain.Amenity) error {
	result := r.db.WithContext(ctx).Model(&AmenityModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":        a.Name,
			"description": a.Description,
			"icon":        a.Icon,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("amenity", a.ID.String())
	}
	return nil
}

func (r *GormAmenityRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AmenityModel{})
	if result.Error != nil {
		return false, translateStoreError(result.Error, "")
	}
	return result.RowsAffected > 0, nil
}
