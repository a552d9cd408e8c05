package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Statistics aggregates bookings for one hotel over a check-in date window.
// Monetary figures are integer cents.
type Statistics struct {
	HotelID              uuid.UUID        `json:"hotelId"`
	StartDate            time.Time        `json:"startDate"`
	EndDate              time.Time        `json:"endDate"`
	TotalBookings        int64            `json:"totalBookings"`
	TotalRevenueCents    int64            `json:"totalRevenueCents"`
	AverageBookingCents  int64            `json:"averageBookingCents"`
	ConfirmedBookings    int64            `json:"confirmedBookings"`
	CancelledBookings    int64            `json:"cancelledBookings"`
	BookingsByStatus     map[string]int64 `json:"bookingsByStatus"`
	RevenueByMonthCents  map[string]int64 `json:"revenueByMonthCents"`
}

// ReportRepository produces aggregate booking statistics.
type ReportRepository interface {
	Statistics(ctx context.Context, hotelID uuid.UUID, startDate, endDate time.Time) (*Statistics, error)
}
