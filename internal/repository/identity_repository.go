package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	Active       bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:""`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;not null"`
}

func (UserModel) TableName() string { return "users" }

// APIKeyModel is the GORM model for the api_keys table.
type APIKeyModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Key         string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	Active      bool       `gorm:"not null;default:true"`
	ExpiresAt   time.Time  `gorm:"type:timestamptz;not null"`
	LastUsedAt  *time.Time `gorm:""`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;not null"`
}

func (APIKeyModel) TableName() string { return "api_keys" }

// GormUserRepository implements identity.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*identity.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", login)
		}
		return nil, translateStoreError(err, "")
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, translateStoreError(err, "")
	}
	return count > 0, nil
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, translateStoreError(err, "")
	}
	return count > 0, nil
}

func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	return translateStoreError(r.db.WithContext(ctx).Create(toUserModel(u)).Error, "")
}

func (r *GormUserRepository) Update(ctx context.Context, u *identity.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"email":         model.Email,
			"password_hash": model.PasswordHash,
			"role":          model.Role,
			"active":        model.Active,
			"last_login_at": model.LastLoginAt,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", model.ID.String())
	}
	return nil
}

// GormAPIKeyRepository implements identity.APIKeyRepository using GORM.
type GormAPIKeyRepository struct {
	db *gorm.DB
}

func NewGormAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

func (r *GormAPIKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.APIKey, error) {
	var model APIKeyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("api key", id.String())
		}
		return nil, translateStoreError(err, "")
	}
	return toAPIKeyDomain(&model), nil
}

func (r *GormAPIKeyRepository) FindByKey(ctx context.Context, key string) (*identity.APIKey, error) {
	var model APIKeyModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("api key", "by value")
		}
		return nil, translateStoreError(err, "")
	}
	return toAPIKeyDomain(&model), nil
}

func (r *GormAPIKeyRepository) ListAll(ctx context.Context) ([]*identity.APIKey, error) {
	var models []APIKeyModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, translateStoreError(err, "")
	}
	keys := make([]*identity.APIKey, len(models))
	for i, m := range models {
		keys[i] = toAPIKeyDomain(&m)
	}
	return keys, nil
}

func (r *GormAPIKeyRepository) Save(ctx context.Context, k *identity.APIKey) error {
	return translateStoreError(r.db.WithContext(ctx).Create(toAPIKeyModel(k)).Error, "")
}

func (r *GormAPIKeyRepository) Update(ctx context.Context, k *identity.APIKey) error {
	model := toAPIKeyModel(k)
	result := r.db.WithContext(ctx).Model(&APIKeyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"active":      model.Active,
			"expires_at":  model.ExpiresAt,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return translateStoreError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("api key", model.ID.String())
	}
	return nil
}

func (r *GormAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&APIKeyModel{})
	if result.Error != nil {
		return false, translateStoreError(result.Error, "")
	}
	return result.RowsAffected > 0, nil
}

// TouchLastUsed stamps last_used_at directly; concurrent touches overwrite
// each other harmlessly.
func (r *GormAPIKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&APIKeyModel{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now().UTC()).Error
	return translateStoreError(err, "")
}

func toUserModel(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		Active:       u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *identity.User {
	return identity.ReconstructUser(
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		identity.Role(m.Role),
		m.Active,
		m.LastLoginAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toAPIKeyModel(k *identity.APIKey) *APIKeyModel {
	return &APIKeyModel{
		ID:          k.ID(),
		Key:         k.Key(),
		Name:        k.Name(),
		Description: k.Description(),
		Active:      k.IsActive(),
		ExpiresAt:   k.ExpiresAt(),
		LastUsedAt:  k.LastUsedAt(),
		CreatedAt:   k.CreatedAt(),
		UpdatedAt:   k.UpdatedAt(),
	}
}

func toAPIKeyDomain(m *APIKeyModel) *identity.APIKey {
	return identity.ReconstructAPIKey(
		m.ID,
		m.Key,
		m.Name,
		m.Description,
		m.Active,
		m.ExpiresAt,
		m.LastUsedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
