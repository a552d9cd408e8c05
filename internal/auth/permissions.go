package auth

import "github.com/wrnass1/hotelbooking/internal/domain/identity"

// Permission names a single allowed action on a resource group.
type Permission string

const (
	HotelsRead     Permission = "hotels:read"
	HotelsCreate   Permission = "hotels:create"
	HotelsUpdate   Permission = "hotels:update"
	HotelsDelete   Permission = "hotels:delete"
	RoomsRead      Permission = "rooms:read"
	RoomsCreate    Permission = "rooms:create"
	RoomsUpdate    Permission = "rooms:update"
	RoomsDelete    Permission = "rooms:delete"
	BookingsRead   Permission = "bookings:read"
	BookingsCreate Permission = "bookings:create"
	BookingsUpdate Permission = "bookings:update"
	BookingsDelete Permission = "bookings:delete"
)

// rolePermissions maps each role to the actions it may perform. Admin gets
// everything, managers run inventory, plain users browse and book.
var rolePermissions = map[identity.Role][]Permission{
	identity.RoleAdmin: {
		HotelsRead, HotelsCreate, HotelsUpdate, HotelsDelete,
		RoomsRead, RoomsCreate, RoomsUpdate, RoomsDelete,
		BookingsRead, BookingsCreate, BookingsUpdate, BookingsDelete,
	},
	identity.RoleManager: {
		HotelsRead, HotelsCreate, HotelsUpdate,
		RoomsRead, RoomsCreate, RoomsUpdate,
		BookingsRead, BookingsCreate, BookingsUpdate,
	},
	identity.RoleUser: {
		HotelsRead, RoomsRead, BookingsRead, BookingsCreate,
	},
}

// HasPermission reports whether role grants perm.
func HasPermission(role identity.Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
