package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/domain"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the request DTO for creating a user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// LoginRequest is the request DTO for authenticating. Login accepts a
// username or an email address.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of a user account.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponseDTO carries the issued tokens alongside the user.
type AuthResponseDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

// AuthService implements account registration and login.
type AuthService struct {
	users  identity.UserRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users identity.UserRepository, jwt *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, logger: logger}
}

// Register creates a user account and signs it in. Self-registration is
// always RoleUser; elevated roles are assigned by an admin caller.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, allowElevated bool) (*AuthResponseDTO, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("username is already taken")
	}
	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("email is already registered")
	}

	role := identity.RoleUser
	if req.Role != "" {
		role = identity.Role(req.Role)
		if !role.IsValid() {
			return nil, domain.NewValidationError("invalid role: " + req.Role)
		}
		if role != identity.RoleUser && !allowElevated {
			return nil, domain.NewForbiddenError("only admins can assign elevated roles")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := identity.NewUser(req.Username, req.Email, string(hash), role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("username", u.Username()),
		zap.String("role", string(u.Role())),
	)
	return s.issueTokens(u)
}

// Login verifies credentials and issues tokens. A missing user and a wrong
// password produce the same error so login probing cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponseDTO, error) {
	u, err := s.users.FindByLogin(ctx, req.Login)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, domain.NewUnauthorizedError("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)) != nil {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	u.RecordLogin()
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Warn("failed to record login", zap.String("user_id", u.ID().String()), zap.Error(err))
	}

	return s.issueTokens(u)
}

// GetUser returns a user's profile.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

func (s *AuthService) issueTokens(u *identity.User) (*AuthResponseDTO, error) {
	access, expiresAt, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	return &AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         toUserDTO(u),
	}, nil
}

func toUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		Role:        string(u.Role()),
		Active:      u.IsActive(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}
