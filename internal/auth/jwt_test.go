package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrnass1/hotelbooking/internal/domain/identity"
)

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser("jane", "jane@example.com", "$2a$10$hash", role)
	require.NoError(t, err)
	return u
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	u := testUser(t, identity.RoleManager)

	token, expiresAt, err := mgr.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID(), claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, identity.RoleManager, claims.Role)
	assert.Equal(t, u.ID().String(), claims.Subject)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	u := testUser(t, identity.RoleUser)
	token, _, err := NewJWTManager("secret-a", time.Hour, time.Hour).GenerateAccessToken(u)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour, time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute, time.Hour)
	token, _, err := mgr.GenerateAccessToken(testUser(t, identity.RoleUser))
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, time.Hour)
	_, err := mgr.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, time.Hour)
	a, err := mgr.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := mgr.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
