package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrnass1/hotelbooking/internal/domain"
)

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "hb_"))
	assert.Len(t, a, 3+43, "32 raw bytes in unpadded url-safe base64")
	assert.NotEqual(t, a, b)
}

func TestNewAPIKey(t *testing.T) {
	expiry := time.Now().UTC().Add(24 * time.Hour)

	k, err := NewAPIKey("ops-dashboard", "read-only reporting", expiry)
	require.NoError(t, err)
	assert.True(t, k.IsActive())
	assert.True(t, strings.HasPrefix(k.Key(), "hb_"))
	assert.Nil(t, k.LastUsedAt())

	_, err = NewAPIKey("", "", expiry)
	assert.True(t, domain.IsValidation(err))

	_, err = NewAPIKey("stale", "", time.Now().UTC().Add(-time.Hour))
	assert.True(t, domain.IsValidation(err))
}

func TestAPIKeyAuthenticate(t *testing.T) {
	now := time.Now().UTC()
	k, err := NewAPIKey("ops", "", now.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, k.Authenticate(now))
	require.NotNil(t, k.LastUsedAt())

	err = k.Authenticate(now.Add(2 * time.Hour))
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err), "expired key: %v", err)

	k.Revoke()
	err = k.Authenticate(now)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err), "revoked key: %v", err)
}

func TestAPIKeyApplyUpdate(t *testing.T) {
	k, err := NewAPIKey("ops", "old", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	name := "ops-v2"
	active := false
	require.NoError(t, k.ApplyUpdate(APIKeyPatch{Name: &name, Active: &active}))
	assert.Equal(t, "ops-v2", k.Name())
	assert.Equal(t, "old", k.Description())
	assert.False(t, k.IsActive())

	empty := ""
	err = k.ApplyUpdate(APIKeyPatch{Name: &empty})
	assert.True(t, domain.IsValidation(err))
}
