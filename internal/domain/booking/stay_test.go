package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayDatesNormalizesToMidnightUTC(t *testing.T) {
	in := time.Date(2025, 6, 1, 14, 30, 45, 0, time.UTC)
	out := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	stay := NewStayDates(in, out)
	assert.Equal(t, date(2025, 6, 1), stay.CheckIn())
	assert.Equal(t, date(2025, 6, 4), stay.CheckOut())
	assert.Equal(t, 3, stay.Nights())
}

func TestStayDatesIsOrdered(t *testing.T) {
	assert.True(t, NewStayDates(date(2025, 6, 1), date(2025, 6, 2)).IsOrdered())
	assert.False(t, NewStayDates(date(2025, 6, 2), date(2025, 6, 2)).IsOrdered())
	assert.False(t, NewStayDates(date(2025, 6, 3), date(2025, 6, 2)).IsOrdered())
}

func TestStayDatesOverlaps(t *testing.T) {
	a := NewStayDates(date(2025, 6, 1), date(2025, 6, 5))

	tests := []struct {
		name     string
		other    StayDates
		overlaps bool
	}{
		{"identical", NewStayDates(date(2025, 6, 1), date(2025, 6, 5)), true},
		{"starts inside", NewStayDates(date(2025, 6, 3), date(2025, 6, 7)), true},
		{"ends inside", NewStayDates(date(2025, 5, 30), date(2025, 6, 2)), true},
		{"contains", NewStayDates(date(2025, 5, 30), date(2025, 6, 7)), true},
		{"contained", NewStayDates(date(2025, 6, 2), date(2025, 6, 3)), true},
		{"back to back before", NewStayDates(date(2025, 5, 28), date(2025, 6, 1)), false},
		{"back to back after", NewStayDates(date(2025, 6, 5), date(2025, 6, 9)), false},
		{"fully before", NewStayDates(date(2025, 5, 20), date(2025, 5, 25)), false},
		{"fully after", NewStayDates(date(2025, 6, 10), date(2025, 6, 12)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, a.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(a), "overlap must be symmetric")
		})
	}
}

// Randomized check that Overlaps agrees with a night-by-night comparison of
// the two half-open intervals.
func TestStayDatesOverlapsMatchesNightSets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date(2025, 1, 1)

	for i := 0; i < 500; i++ {
		aStart := rng.Intn(60)
		aLen := 1 + rng.Intn(14)
		bStart := rng.Intn(60)
		bLen := 1 + rng.Intn(14)

		a := NewStayDates(base.AddDate(0, 0, aStart), base.AddDate(0, 0, aStart+aLen))
		b := NewStayDates(base.AddDate(0, 0, bStart), base.AddDate(0, 0, bStart+bLen))

		shareNight := false
		for n := aStart; n < aStart+aLen; n++ {
			if n >= bStart && n < bStart+bLen {
				shareNight = true
				break
			}
		}
		assert.Equal(t, shareNight, a.Overlaps(b),
			"a=[%d,%d) b=[%d,%d)", aStart, aStart+aLen, bStart, bStart+bLen)
	}
}
