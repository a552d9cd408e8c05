package identity

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// APIKey is a service-account credential presented in the X-API-Key header.
type APIKey struct {
	id          uuid.UUID
	key         string
	name        string
	description string
	active      bool
	expiresAt   time.Time
	lastUsedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// GenerateKey produces a new opaque key value: "hb_" plus 32 random bytes in
// URL-safe base64.
func GenerateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return "hb_" + base64.RawURLEncoding.EncodeToString(raw), nil
}

// NewAPIKey creates an active key expiring at expiresAt.
func NewAPIKey(name, description string, expiresAt time.Time) (*APIKey, error) {
	if name == "" {
		return nil, domain.NewValidationError("api key name is required")
	}
	if !expiresAt.After(time.Now().UTC()) {
		return nil, domain.NewValidationError("api key expiry must be in the future")
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &APIKey{
		id:          uuid.New(),
		key:         key,
		name:        name,
		description: description,
		active:      true,
		expiresAt:   expiresAt,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructAPIKey rebuilds an APIKey from persistence data (no validation).
func ReconstructAPIKey(
	id uuid.UUID,
	key, name, description string,
	active bool,
	expiresAt time.Time,
	lastUsedAt *time.Time,
	createdAt, updatedAt time.Time,
) *APIKey {
	return &APIKey{
		id:          id,
		key:         key,
		name:        name,
		description: description,
		active:      active,
		expiresAt:   expiresAt,
		lastUsedAt:  lastUsedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the key's unique identifier.
func (k *APIKey) ID() uuid.UUID { return k.id }

// Key returns the opaque credential value.
func (k *APIKey) Key() string { return k.key }

// Name returns the human-readable key name.
func (k *APIKey) Name() string { return k.name }

// Description returns the free-text description.
func (k *APIKey) Description() string { return k.description }

// IsActive reports whether the key has not been revoked.
func (k *APIKey) IsActive() bool { return k.active }

// ExpiresAt returns the expiry time.
func (k *APIKey) ExpiresAt() time.Time { return k.expiresAt }

// LastUsedAt returns the most recent authentication time, or nil.
func (k *APIKey) LastUsedAt() *time.Time { return k.lastUsedAt }

// CreatedAt returns the creation timestamp.
func (k *APIKey) CreatedAt() time.Time { return k.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (k *APIKey) UpdatedAt() time.Time { return k.updatedAt }

// Authenticate verifies the key is usable at now and stamps last-used.
func (k *APIKey) Authenticate(now time.Time) error {
	if !k.active {
		return domain.NewUnauthorizedError("api key is inactive")
	}
	if k.expiresAt.Before(now) {
		return domain.NewUnauthorizedError("api key has expired")
	}
	used := now.UTC()
	k.lastUsedAt = &used
	return nil
}

// Revoke deactivates the key.
func (k *APIKey) Revoke() {
	k.active = false
	k.updatedAt = time.Now().UTC()
}

// ApplyUpdate applies the non-nil fields of patch.
func (k *APIKey) ApplyUpdate(patch APIKeyPatch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.NewValidationError("api key name cannot be empty")
		}
		k.name = *patch.Name
	}
	if patch.Description != nil {
		k.description = *patch.Description
	}
	if patch.Active != nil {
		k.active = *patch.Active
	}
	if patch.ExpiresAt != nil {
		k.expiresAt = *patch.ExpiresAt
	}
	k.updatedAt = time.Now().UTC()
	return nil
}

// APIKeyPatch carries the optional fields of a partial api-key update. Nil
// means "not provided".
type APIKeyPatch struct {
	Name        *string
	Description *string
	Active      *bool
	ExpiresAt   *time.Time
}
