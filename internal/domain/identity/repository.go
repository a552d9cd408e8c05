package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByLogin matches username or email, as login forms accept either.
	FindByLogin(ctx context.Context, login string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// APIKeyRepository defines the persistence contract for api keys.
type APIKeyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*APIKey, error)
	FindByKey(ctx context.Context, key string) (*APIKey, error)
	ListAll(ctx context.Context) ([]*APIKey, error)
	Save(ctx context.Context, k *APIKey) error
	Update(ctx context.Context, k *APIKey) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// TouchLastUsed stamps last_used_at without bumping optimistic locks;
	// it races harmlessly with itself.
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
