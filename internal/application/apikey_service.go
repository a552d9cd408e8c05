package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"go.uber.org/zap"
)

// CreateAPIKeyRequest is the request DTO for minting a service key.
type CreateAPIKeyRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at" binding:"required"`
}

// UpdateAPIKeyRequest carries a partial api-key update. Nil fields are
// untouched.
type UpdateAPIKeyRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Active      *bool      `json:"active"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// APIKeyDTO is the API response representation of a key. The key value itself
// appears only in the creation response.
type APIKeyDTO struct {
	ID          uuid.UUID  `json:"id"`
	Key         string     `json:"key,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	ExpiresAt   time.Time  `json:"expires_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// APIKeyService manages service-account keys and verifies them for the
// authentication middleware.
type APIKeyService struct {
	keys   identity.APIKeyRepository
	logger *zap.Logger
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(keys identity.APIKeyRepository, logger *zap.Logger) *APIKeyService {
	return &APIKeyService{keys: keys, logger: logger}
}

// CreateAPIKey mints a new key. This is the only time the key value is
// returned.
func (s *APIKeyService) CreateAPIKey(ctx context.Context, req CreateAPIKeyRequest) (*APIKeyDTO, error) {
	k, err := identity.NewAPIKey(req.Name, req.Description, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(ctx, k); err != nil {
		return nil, err
	}

	s.logger.Info("api key created", zap.String("key_id", k.ID().String()), zap.String("name", k.Name()))
	result := toAPIKeyDTO(k, true)
	return &result, nil
}

// GetAPIKey returns a single key's metadata.
func (s *APIKeyService) GetAPIKey(ctx context.Context, id uuid.UUID) (*APIKeyDTO, error) {
	k, err := s.keys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIKeyDTO(k, false)
	return &result, nil
}

// ListAPIKeys returns metadata for every key.
func (s *APIKeyService) ListAPIKeys(ctx context.Context) ([]APIKeyDTO, error) {
	keys, err := s.keys.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]APIKeyDTO, len(keys))
	for i, k := range keys {
		dtos[i] = toAPIKeyDTO(k, false)
	}
	return dtos, nil
}

// UpdateAPIKey applies a partial update to a key's metadata.
func (s *APIKeyService) UpdateAPIKey(ctx context.Context, id uuid.UUID, req UpdateAPIKeyRequest) (*APIKeyDTO, error) {
	k, err := s.keys.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := k.ApplyUpdate(identity.APIKeyPatch{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
		ExpiresAt:   req.ExpiresAt,
	}); err != nil {
		return nil, err
	}
	if err := s.keys.Update(ctx, k); err != nil {
		return nil, err
	}
	result := toAPIKeyDTO(k, false)
	return &result, nil
}

// RevokeAPIKey deactivates a key without deleting its audit trail.
func (s *APIKeyService) RevokeAPIKey(ctx context.Context, id uuid.UUID) error {
	k, err := s.keys.FindByID(ctx, id)
	if err != nil {
		return err
	}
	k.Revoke()
	if err := s.keys.Update(ctx, k); err != nil {
		return err
	}
	s.logger.Info("api key revoked", zap.String("key_id", id.String()))
	return nil
}

// DeleteAPIKey removes a key entirely.
func (s *APIKeyService) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.keys.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("api key", id.String())
	}
	return nil
}

// VerifyKey authenticates a presented key value for the middleware. Lookups
// of unknown keys come back as Unauthorized, not NotFound, so the header
// cannot be used to probe which keys exist.
func (s *APIKeyService) VerifyKey(ctx context.Context, key string) (*identity.APIKey, error) {
	k, err := s.keys.FindByKey(ctx, key)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid api key")
		}
		return nil, err
	}
	if err := k.Authenticate(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.keys.TouchLastUsed(ctx, k.ID()); err != nil {
		s.logger.Warn("failed to stamp api key usage", zap.String("key_id", k.ID().String()), zap.Error(err))
	}
	return k, nil
}

func toAPIKeyDTO(k *identity.APIKey, includeKey bool) APIKeyDTO {
	dto := APIKeyDTO{
		ID:          k.ID(),
		Name:        k.Name(),
		Description: k.Description(),
		Active:      k.IsActive(),
		ExpiresAt:   k.ExpiresAt(),
		LastUsedAt:  k.LastUsedAt(),
		CreatedAt:   k.CreatedAt(),
	}
	if includeKey {
		dto.Key = k.Key()
	}
	return dto
}
