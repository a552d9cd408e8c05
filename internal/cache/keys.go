package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Key builders shared by the services that populate the cache and the event
// consumer that evicts entries.

// HotelKey is the cache key for a single hotel.
func HotelKey(id uuid.UUID) string {
	return fmt.Sprintf("hotel:%s", id)
}

// RoomKey is the cache key for a single room.
func RoomKey(id uuid.UUID) string {
	return fmt.Sprintf("room:%s", id)
}

// AvailabilityKey is the cache key for one room/date-range availability query.
func AvailabilityKey(roomID uuid.UUID, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("availability:%s:%s:%s",
		roomID, checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
}

// RoomAvailabilityPattern matches every availability entry for a room.
func RoomAvailabilityPattern(roomID uuid.UUID) string {
	return fmt.Sprintf("availability:%s:*", roomID)
}
