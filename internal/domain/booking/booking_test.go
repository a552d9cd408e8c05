package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrnass1/hotelbooking/internal/domain"
)

func validGuest() Guest {
	return Guest{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1-555-0100"}
}

func validStay() StayDates {
	return NewStayDates(date(2025, 6, 1), date(2025, 6, 4))
}

func TestNewBooking(t *testing.T) {
	roomID := uuid.New()

	bk, err := NewBooking(roomID, validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, bk.ID())
	assert.Equal(t, roomID, bk.RoomID())
	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.Equal(t, int64(30000), bk.TotalPriceCents())
	assert.Equal(t, domain.CurrencyUSD, bk.Currency())
	assert.Equal(t, int64(1), bk.Version())
	assert.Nil(t, bk.CancelledAt())
}

func TestNewBookingValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Booking, error)
	}{
		{"nil room", func() (*Booking, error) {
			return NewBooking(uuid.Nil, validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
		}},
		{"empty guest name", func() (*Booking, error) {
			return NewBooking(uuid.New(), Guest{Name: " ", Email: "a@b.com"}, validStay(), 2, 30000, domain.CurrencyUSD)
		}},
		{"bad guest email", func() (*Booking, error) {
			return NewBooking(uuid.New(), Guest{Name: "Jane", Email: "not-an-email"}, validStay(), 2, 30000, domain.CurrencyUSD)
		}},
		{"unordered stay", func() (*Booking, error) {
			stay := NewStayDates(date(2025, 6, 4), date(2025, 6, 4))
			return NewBooking(uuid.New(), validGuest(), stay, 2, 30000, domain.CurrencyUSD)
		}},
		{"zero guests", func() (*Booking, error) {
			return NewBooking(uuid.New(), validGuest(), validStay(), 0, 30000, domain.CurrencyUSD)
		}},
		{"zero price", func() (*Booking, error) {
			return NewBooking(uuid.New(), validGuest(), validStay(), 2, 0, domain.CurrencyUSD)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
}

func TestBookingCancelIsIdempotent(t *testing.T) {
	bk, err := NewBooking(uuid.New(), validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)

	changed, err := bk.Cancel()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCancelled, bk.Status())
	require.NotNil(t, bk.CancelledAt())
	firstCancelledAt := *bk.CancelledAt()

	changed, err = bk.Cancel()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, firstCancelledAt, *bk.CancelledAt())
}

func TestBookingMutationsRejectedWhenCancelled(t *testing.T) {
	bk, err := NewBooking(uuid.New(), validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)
	_, err = bk.Cancel()
	require.NoError(t, err)

	err = bk.ChangeGuest(Guest{Name: "John", Email: "john@example.com"})
	assert.True(t, domain.IsConflict(err))

	err = bk.ChangeGuestCount(3)
	assert.True(t, domain.IsConflict(err))

	err = bk.Reschedule(NewStayDates(date(2025, 7, 1), date(2025, 7, 3)), 20000)
	assert.True(t, domain.IsConflict(err))
}

func TestBookingChangeStatus(t *testing.T) {
	bk, err := NewBooking(uuid.New(), validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)

	// Same status is a no-op.
	require.NoError(t, bk.ChangeStatus(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, bk.Status())

	err = bk.ChangeStatus(StatusPending)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, bk.ChangeStatus(StatusCancelled))
	assert.NotNil(t, bk.CancelledAt())
}

func TestBookingReschedule(t *testing.T) {
	bk, err := NewBooking(uuid.New(), validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)

	newStay := NewStayDates(date(2025, 7, 1), date(2025, 7, 6))
	require.NoError(t, bk.Reschedule(newStay, 50000))
	assert.Equal(t, newStay, bk.Stay())
	assert.Equal(t, int64(50000), bk.TotalPriceCents())

	err = bk.Reschedule(NewStayDates(date(2025, 7, 6), date(2025, 7, 6)), 0)
	assert.True(t, domain.IsValidation(err))
}

func TestBookingIncrementVersion(t *testing.T) {
	bk, err := NewBooking(uuid.New(), validGuest(), validStay(), 2, 30000, domain.CurrencyUSD)
	require.NoError(t, err)

	bk.IncrementVersion()
	bk.IncrementVersion()
	assert.Equal(t, int64(3), bk.Version())
}
