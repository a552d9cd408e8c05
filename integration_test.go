//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/domain"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
)

func futureDate(daysAhead int) time.Time {
	return time.Now().UTC().AddDate(0, 0, daysAhead)
}

// TestCreateBooking_PersistsAndPrices walks a booking through the real
// store: create, read back, reschedule with a reprice, cancel.
func TestCreateBooking_PersistsAndPrices(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)
	ctx := context.Background()

	rm := seedRoom(t, infra.DB, 12500, 3)

	created, err := stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(14), 2))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), created.TotalPriceCents)
	assert.Equal(t, string(bookingDomain.StatusConfirmed), created.Status)

	fetched, err := stack.Bookings.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TotalPriceCents, fetched.TotalPriceCents)
	assert.Equal(t, created.CheckIn, fetched.CheckIn)

	newOut := futureDate(12)
	updated, err := stack.Bookings.UpdateBooking(ctx, created.ID, application.UpdateBookingRequest{CheckOut: &newOut})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Nights)
	assert.Equal(t, int64(25000), updated.TotalPriceCents)
	assert.Equal(t, created.Version+1, updated.Version)

	cancelled, err := stack.Bookings.CancelBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(bookingDomain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
}

// TestCreateBooking_OverlapRejectedByStore verifies the store-level overlap
// guard, including the cancelled-bookings carve-out.
func TestCreateBooking_OverlapRejectedByStore(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)
	ctx := context.Background()

	rm := seedRoom(t, infra.DB, 10000, 2)

	first, err := stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(14), 2))
	require.NoError(t, err)

	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(12), futureDate(16), 2))
	assert.True(t, domain.IsConflict(err), "overlapping stay must be rejected: %v", err)

	// Back-to-back is allowed: [10,14) then [14,16).
	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(14), futureDate(16), 2))
	require.NoError(t, err)

	// Cancelling frees the range.
	_, err = stack.Bookings.CancelBooking(ctx, first.ID)
	require.NoError(t, err)
	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(14), 2))
	require.NoError(t, err)
}

// TestCreateBooking_ConcurrentWritersOneWinner hammers the same date range
// from many goroutines; the room row lock plus the exclusion constraint must
// let exactly one through.
func TestCreateBooking_ConcurrentWritersOneWinner(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)

	rm := seedRoom(t, infra.DB, 10000, 2)

	const n = 12
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = stack.Bookings.CreateBooking(context.Background(),
				bookingRequest(rm.ID(), futureDate(20), futureDate(24), 2))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, domain.IsConflict(err), "loser must see a conflict: %v", err)
		}
	}
	assert.Equal(t, 1, winners)

	list, err := stack.Bookings.ListBookingsByRoom(context.Background(), rm.ID(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

// TestUpdateBooking_RescheduleExcludesOwnReservation checks that a date
// change does not collide with the booking's own row, but does collide with
// a neighbour.
func TestUpdateBooking_RescheduleExcludesOwnReservation(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)
	ctx := context.Background()

	rm := seedRoom(t, infra.DB, 10000, 2)

	first, err := stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(14), 2))
	require.NoError(t, err)
	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(14), futureDate(18), 2))
	require.NoError(t, err)

	newIn := futureDate(11)
	_, err = stack.Bookings.UpdateBooking(ctx, first.ID, application.UpdateBookingRequest{CheckIn: &newIn})
	require.NoError(t, err, "shifting within its own range must not self-conflict")

	newOut := futureDate(16)
	_, err = stack.Bookings.UpdateBooking(ctx, first.ID, application.UpdateBookingRequest{CheckOut: &newOut})
	assert.True(t, domain.IsConflict(err))
}

// TestHotelStatistics_Report runs the reporting queries against real data.
func TestHotelStatistics_Report(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)
	ctx := context.Background()

	rm := seedRoom(t, infra.DB, 10000, 2)

	a, err := stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(12), 2))
	require.NoError(t, err)
	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(12), futureDate(15), 2))
	require.NoError(t, err)
	_, err = stack.Bookings.CancelBooking(ctx, a.ID)
	require.NoError(t, err)

	stats, err := stack.Bookings.GetHotelStatistics(ctx, rm.HotelID(),
		futureDate(0), futureDate(30))
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.ConfirmedBookings)
	assert.Equal(t, int64(1), stats.CancelledBookings)
	assert.Equal(t, int64(1), stats.BookingsByStatus[bookingDomain.StatusConfirmed.String()])
	assert.Equal(t, int64(50000), stats.TotalRevenueCents)

	// Monthly revenue excludes cancelled bookings.
	var monthly int64
	for _, cents := range stats.RevenueByMonthCents {
		monthly += cents
	}
	assert.Equal(t, int64(30000), monthly)
}

// TestRoomAvailability_Endpoint exercises the read-only availability query
// against the store.
func TestRoomAvailability_Endpoint(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupStack(t, infra.DB)
	ctx := context.Background()

	rm := seedRoom(t, infra.DB, 10000, 2)

	free, err := stack.Bookings.CheckAvailability(ctx, rm.ID(), futureDate(10), futureDate(14))
	require.NoError(t, err)
	assert.True(t, free.Available)

	_, err = stack.Bookings.CreateBooking(ctx, bookingRequest(rm.ID(), futureDate(10), futureDate(14), 2))
	require.NoError(t, err)

	taken, err := stack.Bookings.CheckAvailability(ctx, rm.ID(), futureDate(13), futureDate(15))
	require.NoError(t, err)
	assert.False(t, taken.Available)
}
