package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/domain"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
)

// fakeBookingRepo is an in-memory booking store. CreateConfirmed and
// Reschedule hold the mutex across the overlap re-check and the write,
// mirroring the transactional guarantee of the real store.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByRoomID(_ context.Context, roomID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.RoomID() == roomID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindByGuestEmail(_ context.Context, email string, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Guest().Email == email {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for _, bk := range r.bookings {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) overlapsLocked(roomID uuid.UUID, stay bookingDomain.StayDates, excludeID *uuid.UUID) bool {
	for _, bk := range r.bookings {
		if bk.RoomID() != roomID || bk.IsCancelled() {
			continue
		}
		if excludeID != nil && bk.ID() == *excludeID {
			continue
		}
		if bk.Stay().Overlaps(stay) {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, roomID uuid.UUID, stay bookingDomain.StayDates, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapsLocked(roomID, stay, excludeID), nil
}

func (r *fakeBookingRepo) CreateConfirmed(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overlapsLocked(bk.RoomID(), bk.Stay(), nil) {
		return domain.NewConflictError("room is already booked for the requested dates")
	}
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := bk.ID()
	if r.overlapsLocked(bk.RoomID(), bk.Stay(), &id) {
		return domain.NewConflictError("room is already booked for the requested dates")
	}
	r.bookings[id] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("booking", bk.ID().String())
	}
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*roomDomain.Room
}

func newFakeRoomRepo(rooms ...*roomDomain.Room) *fakeRoomRepo {
	r := &fakeRoomRepo{rooms: make(map[uuid.UUID]*roomDomain.Room)}
	for _, rm := range rooms {
		r.rooms[rm.ID()] = rm
	}
	return r
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, domain.NewNotFoundError("room", id.String())
	}
	return rm, nil
}

func (r *fakeRoomRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rooms[id]
	return ok, nil
}

func (r *fakeRoomRepo) FindByHotelID(_ context.Context, hotelID uuid.UUID, page, limit int) ([]*roomDomain.Room, int64, error) {
	return nil, 0, nil
}

func (r *fakeRoomRepo) Save(_ context.Context, rm *roomDomain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID()] = rm
	return nil
}

func (r *fakeRoomRepo) Update(_ context.Context, rm *roomDomain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID()] = rm
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return false, nil
	}
	delete(r.rooms, id)
	return true, nil
}

func (r *fakeRoomRepo) AmenityIDs(_ context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (r *fakeRoomRepo) AssignAmenity(_ context.Context, roomID, amenityID uuid.UUID) error { return nil }

func (r *fakeRoomRepo) RemoveAmenity(_ context.Context, roomID, amenityID uuid.UUID) error { return nil }

// --- Helpers ---

func testRoom(t *testing.T, rateCents int64, maxOccupancy int) *roomDomain.Room {
	t.Helper()
	rm, err := roomDomain.NewRoom(uuid.New(), "101", "double", rateCents, maxOccupancy, "")
	require.NoError(t, err)
	return rm
}

func newTestService(bookings bookingDomain.Repository, rooms roomDomain.Repository) *BookingService {
	cacheSvc := cache.NewService(nil, time.Minute, zap.NewNop())
	return NewBookingService(
		bookings, rooms, nil,
		bookingDomain.NewNightlyPricingCalculator(),
		nil, cacheSvc, zap.NewNop(),
	)
}

func futureDate(daysAhead int) time.Time {
	return time.Now().UTC().AddDate(0, 0, daysAhead)
}

func createReq(roomID uuid.UUID, inDays, outDays, guests int) CreateBookingRequest {
	return CreateBookingRequest{
		RoomID:     roomID,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		CheckIn:    futureDate(inDays),
		CheckOut:   futureDate(outDays),
		GuestCount: guests,
	}
}

// --- Tests ---

func TestCreateBooking(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))

	dto, err := svc.CreateBooking(context.Background(), createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)

	assert.Equal(t, rm.ID(), dto.RoomID)
	assert.Equal(t, 3, dto.Nights)
	assert.Equal(t, int64(30000), dto.TotalPriceCents)
	assert.Equal(t, domain.CurrencyUSD, dto.Currency)
	assert.Equal(t, string(bookingDomain.StatusConfirmed), dto.Status)
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo())

	_, err := svc.CreateBooking(context.Background(), createReq(uuid.New(), 10, 13, 2))
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateBookingRoomMarkedUnavailable(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	unavailable := false
	require.NoError(t, rm.ApplyUpdate(roomDomain.UpdatePatch{Available: &unavailable}))
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))

	_, err := svc.CreateBooking(context.Background(), createReq(rm.ID(), 10, 13, 2))
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBookingDateValidation(t *testing.T) {
	rm := testRoom(t, 10000, 4)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))

	_, err := svc.CreateBooking(context.Background(), createReq(rm.ID(), 13, 10, 2))
	assert.True(t, domain.IsValidation(err), "check-out before check-in: %v", err)

	_, err = svc.CreateBooking(context.Background(), createReq(rm.ID(), 13, 13, 2))
	assert.True(t, domain.IsValidation(err), "check-out equal to check-in: %v", err)

	_, err = svc.CreateBooking(context.Background(), createReq(rm.ID(), -2, 3, 2))
	assert.True(t, domain.IsValidation(err), "check-in in the past: %v", err)
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))

	_, err := svc.CreateBooking(context.Background(), createReq(rm.ID(), 10, 13, 5))
	assert.True(t, domain.IsValidation(err))
}

func TestCreateBookingOverlapConflict(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeRoomRepo(rm))
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 14, 2))
	require.NoError(t, err)

	// [10,14) vs [12,16) share nights 12 and 13.
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 12, 16, 2))
	assert.True(t, domain.IsConflict(err))

	// Back-to-back stays do not conflict.
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 14, 16, 2))
	assert.NoError(t, err)
}

// Conflict precedence: with several defects in one request, the range
// conflict is reported only after dates validate, and capacity only after
// availability.
func TestCreateBookingValidationOrder(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeRoomRepo(rm))
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 14, 2))
	require.NoError(t, err)

	// Bad ordering and excessive guests: date error wins.
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 14, 10, 9))
	assert.True(t, domain.IsValidation(err))

	// Overlapping dates and excessive guests: overlap conflict wins.
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 11, 13, 9))
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBookingConcurrentSameRange(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeRoomRepo(rm))

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), createReq(rm.ID(), 20, 23, 2))
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
}

func TestUpdateBookingGuestFields(t *testing.T) {
	rm := testRoom(t, 10000, 3)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)

	name := "John Smith"
	guests := 3
	updated, err := svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{
		GuestName:  &name,
		GuestCount: &guests,
	})
	require.NoError(t, err)

	assert.Equal(t, "John Smith", updated.GuestName)
	assert.Equal(t, "jane@example.com", updated.GuestEmail, "unset fields stay untouched")
	assert.Equal(t, 3, updated.GuestCount)
	assert.Equal(t, created.TotalPriceCents, updated.TotalPriceCents, "price unchanged without a date change")
	assert.Equal(t, created.Version+1, updated.Version)
}

func TestUpdateBookingReschedulesAndReprices(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	rooms := newFakeRoomRepo(rm)
	svc := newTestService(newFakeBookingRepo(), rooms)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)
	require.Equal(t, int64(30000), created.TotalPriceCents)

	// Rate change applies on reschedule.
	repriced := roomDomain.ReconstructRoom(
		rm.ID(), rm.HotelID(), rm.RoomNumber(), rm.RoomType(),
		15000, rm.MaxOccupancy(), rm.Description(), true,
		rm.Version(), rm.CreatedAt(), rm.UpdatedAt(),
	)
	require.NoError(t, rooms.Update(ctx, repriced))

	newOut := futureDate(15)
	updated, err := svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{CheckOut: &newOut})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Nights)
	assert.Equal(t, int64(75000), updated.TotalPriceCents)
}

func TestUpdateBookingOverlapExcludesOwnReservation(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 14, 2))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 14, 18, 2))
	require.NoError(t, err)

	// Shrinking within its own range is fine.
	newOut := futureDate(12)
	_, err = svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{CheckOut: &newOut})
	assert.NoError(t, err)

	// Stretching into the neighbour is not.
	newOut = futureDate(16)
	_, err = svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{CheckOut: &newOut})
	assert.True(t, domain.IsConflict(err))
}

func TestUpdateBookingRejectedWhenCancelled(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, created.ID)
	require.NoError(t, err)

	name := "John"
	_, err = svc.UpdateBooking(ctx, created.ID, UpdateBookingRequest{GuestName: &name})
	assert.True(t, domain.IsConflict(err))
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	repo := newFakeBookingRepo()
	svc := newTestService(repo, newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)

	first, err := svc.CancelBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(bookingDomain.StatusCancelled), first.Status)
	require.NotNil(t, first.CancelledAt)

	second, err := svc.CancelBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Version, second.Version, "second cancel writes nothing")
	assert.Equal(t, *first.CancelledAt, *second.CancelledAt)
}

func TestCancelFreesTheDates(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	assert.NoError(t, err)
}

func TestDeleteBooking(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBooking(ctx, created.ID))

	err = svc.DeleteBooking(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.GetBooking(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCheckAvailability(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	free, err := svc.CheckAvailability(ctx, rm.ID(), futureDate(10), futureDate(13))
	require.NoError(t, err)
	assert.True(t, free.Available)

	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 10, 13, 2))
	require.NoError(t, err)

	taken, err := svc.CheckAvailability(ctx, rm.ID(), futureDate(12), futureDate(14))
	require.NoError(t, err)
	assert.False(t, taken.Available)

	_, err = svc.CheckAvailability(ctx, rm.ID(), futureDate(13), futureDate(13))
	assert.True(t, domain.IsValidation(err))
}

func TestGetBookingStats(t *testing.T) {
	rm := testRoom(t, 10000, 2)
	svc := newTestService(newFakeBookingRepo(), newFakeRoomRepo(rm))
	ctx := context.Background()

	a, err := svc.CreateBooking(ctx, createReq(rm.ID(), 10, 12, 2))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, createReq(rm.ID(), 12, 14, 2))
	require.NoError(t, err)
	_, err = svc.CancelBooking(ctx, a.ID)
	require.NoError(t, err)

	stats, err := svc.GetBookingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.ByStatus[string(bookingDomain.StatusConfirmed)])
	assert.Equal(t, int64(1), stats.ByStatus[string(bookingDomain.StatusCancelled)])
}
