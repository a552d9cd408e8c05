package booking

import "time"

// StayDates is an immutable value object for a half-open [checkIn, checkOut)
// date interval. Both endpoints are normalized to midnight UTC.
type StayDates struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayDates builds a StayDates after normalizing both endpoints to their
// date parts. The checkOut > checkIn invariant is validated by callers so
// they can attach their own error kinds.
func NewStayDates(checkIn, checkOut time.Time) StayDates {
	return StayDates{checkIn: TruncateToDate(checkIn), checkOut: TruncateToDate(checkOut)}
}

// CheckIn returns the inclusive start of the stay.
func (s StayDates) CheckIn() time.Time { return s.checkIn }

// CheckOut returns the exclusive end of the stay.
func (s StayDates) CheckOut() time.Time { return s.checkOut }

// Nights returns the number of whole nights between check-in and check-out.
func (s StayDates) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

// IsOrdered reports whether check-out is strictly after check-in.
func (s StayDates) IsOrdered() bool {
	return s.checkOut.After(s.checkIn)
}

// Overlaps reports whether two half-open intervals share at least one night:
// [a1,a2) and [b1,b2) overlap iff a1 < b2 && b1 < a2.
func (s StayDates) Overlaps(other StayDates) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// TruncateToDate drops the time-of-day component, keeping the calendar date
// in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
