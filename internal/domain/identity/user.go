package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
)

// Role classifies what a user may do. Permissions per role live in the auth
// package.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User is a human account that authenticates with username/password.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	role         Role
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active user. The password hash is produced by the
// caller; this aggregate never sees the plaintext.
func NewUser(username, email, passwordHash string, role Role) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.NewValidationError("username is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email is invalid")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence data (no validation).
func ReconstructUser(
	id uuid.UUID,
	username, email, passwordHash string,
	role Role,
	active bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Username returns the login name.
func (u *User) Username() string { return u.username }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool { return u.active }

// LastLoginAt returns the time of the most recent successful login, or nil.
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// RecordLogin stamps a successful authentication.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// Deactivate blocks further authentication for this account.
func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = time.Now().UTC()
}
