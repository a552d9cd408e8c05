package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain/booking"
	"gorm.io/gorm"
)

// GormReportRepository computes booking statistics with raw SQL. Aggregations
// over the bookings/rooms join are cheaper in the database than in Go.
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Statistics reports totals, per-status counts, and monthly revenue for the
// hotel's bookings whose check-in falls inside [startDate, endDate].
// Cancelled bookings count toward totals and the status breakdown but are
// excluded from monthly revenue.
func (r *GormReportRepository) Statistics(ctx context.Context, hotelID uuid.UUID, startDate, endDate time.Time) (*booking.Statistics, error) {
	stats := &booking.Statistics{
		HotelID:             hotelID,
		StartDate:           startDate,
		EndDate:             endDate,
		BookingsByStatus:    map[string]int64{},
		RevenueByMonthCents: map[string]int64{},
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var totals struct {
			TotalBookings       int64
			TotalRevenueCents   int64
			AverageBookingCents int64
			ConfirmedBookings   int64
			CancelledBookings   int64
		}
		if err := tx.Raw(`
			SELECT
				COUNT(*) AS total_bookings,
				COALESCE(SUM(b.total_price_cents), 0) AS total_revenue_cents,
				COALESCE(CAST(AVG(b.total_price_cents) AS bigint), 0) AS average_booking_cents,
				COUNT(*) FILTER (WHERE b.status = 'confirmed') AS confirmed_bookings,
				COUNT(*) FILTER (WHERE b.status = 'cancelled') AS cancelled_bookings
			FROM bookings b
			INNER JOIN rooms r ON b.room_id = r.id
			WHERE r.hotel_id = ?
			  AND b.check_in >= ?
			  AND b.check_in <= ?`,
			hotelID, startDate, endDate,
		).Scan(&totals).Error; err != nil {
			return err
		}
		stats.TotalBookings = totals.TotalBookings
		stats.TotalRevenueCents = totals.TotalRevenueCents
		stats.AverageBookingCents = totals.AverageBookingCents
		stats.ConfirmedBookings = totals.ConfirmedBookings
		stats.CancelledBookings = totals.CancelledBookings

		var byStatus []struct {
			Status string
			Count  int64
		}
		if err := tx.Raw(`
			SELECT b.status AS status, COUNT(*) AS count
			FROM bookings b
			INNER JOIN rooms r ON b.room_id = r.id
			WHERE r.hotel_id = ?
			  AND b.check_in >= ?
			  AND b.check_in <= ?
			GROUP BY b.status`,
			hotelID, startDate, endDate,
		).Scan(&byStatus).Error; err != nil {
			return err
		}
		for _, row := range byStatus {
			stats.BookingsByStatus[row.Status] = row.Count
		}

		var byMonth []struct {
			Month        string
			RevenueCents int64
		}
		if err := tx.Raw(`
			SELECT
				TO_CHAR(b.check_in, 'YYYY-MM') AS month,
				COALESCE(SUM(b.total_price_cents), 0) AS revenue_cents
			FROM bookings b
			INNER JOIN rooms r ON b.room_id = r.id
			WHERE r.hotel_id = ?
			  AND b.check_in >= ?
			  AND b.check_in <= ?
			  AND b.status <> 'cancelled'
			GROUP BY TO_CHAR(b.check_in, 'YYYY-MM')
			ORDER BY month`,
			hotelID, startDate, endDate,
		).Scan(&byMonth).Error; err != nil {
			return err
		}
		for _, row := range byMonth {
			stats.RevenueByMonthCents[row.Month] = row.RevenueCents
		}
		return nil
	})
	if err != nil {
		return nil, translateStoreError(err, "")
	}
	return stats, nil
}
