package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrnass1/hotelbooking/internal/domain/identity"
)

func TestHasPermission(t *testing.T) {
	all := []Permission{
		HotelsRead, HotelsCreate, HotelsUpdate, HotelsDelete,
		RoomsRead, RoomsCreate, RoomsUpdate, RoomsDelete,
		BookingsRead, BookingsCreate, BookingsUpdate, BookingsDelete,
	}
	for _, p := range all {
		assert.True(t, HasPermission(identity.RoleAdmin, p), "admin lacks %s", p)
	}

	assert.True(t, HasPermission(identity.RoleManager, HotelsCreate))
	assert.True(t, HasPermission(identity.RoleManager, BookingsUpdate))
	assert.False(t, HasPermission(identity.RoleManager, HotelsDelete))
	assert.False(t, HasPermission(identity.RoleManager, RoomsDelete))
	assert.False(t, HasPermission(identity.RoleManager, BookingsDelete))

	assert.True(t, HasPermission(identity.RoleUser, HotelsRead))
	assert.True(t, HasPermission(identity.RoleUser, BookingsCreate))
	assert.False(t, HasPermission(identity.RoleUser, RoomsCreate))
	assert.False(t, HasPermission(identity.RoleUser, BookingsUpdate))

	assert.False(t, HasPermission(identity.Role("ghost"), HotelsRead))
}
