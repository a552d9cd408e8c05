package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/domain"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	GuestName       string     `gorm:"not null;size:200"`
	GuestEmail      string     `gorm:"not null;size:254;index"`
	GuestPhone      string     `gorm:"size:40"`
	CheckIn         time.Time  `gorm:"type:date;not null"`
	CheckOut        time.Time  `gorm:"type:date;not null"`
	Guests          int        `gorm:"not null"`
	TotalPriceCents int64      `gorm:"not null"`
	Currency        string     `gorm:"not null;size:3;default:'USD'"`
	Status          string     `gorm:"not null;size:20;index"`
	CancelledAt     *time.Time `gorm:""`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository. Availability-sensitive writes serialize per room with a row
// lock on the room, and the bookings table carries an exclusion constraint
// on (room_id, daterange(check_in, check_out)) as a commit-time backstop.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", translateStoreError(err, ""))
	}
	return toDomainBooking(&model)
}

// FindByRoomID retrieves bookings for a specific room with pagination.
func (r *GormBookingRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "room_id = ?", []interface{}{roomID}, page, limit)
}

// FindByGuestEmail retrieves bookings made under a guest email with pagination.
func (r *GormBookingRepository) FindByGuestEmail(ctx context.Context, email string, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "guest_email = ?", []interface{}{email}, page, limit)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return r.findPage(ctx, "", nil, page, limit)
}

func (r *GormBookingRepository) findPage(ctx context.Context, cond string, args []interface{}, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{})
	if cond != "" {
		q = q.Where(cond, args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", translateStoreError(err, ""))
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", translateStoreError(err, ""))
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// overlapQuery builds the canonical half-open overlap predicate: an existing
// non-cancelled booking overlaps [in, out) iff check_in < out AND check_out > in.
func overlapQuery(tx *gorm.DB, roomID uuid.UUID, stay bookingDomain.StayDates, excludeID *uuid.UUID) *gorm.DB {
	q := tx.Model(&BookingModel{}).
		Where("room_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			roomID, bookingDomain.StatusCancelled.String(), stay.CheckOut(), stay.CheckIn())
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	return q
}

// FindOverlapping reports whether any non-cancelled booking for roomID
// overlaps the stay interval. Pure read, no locks taken.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, stay bookingDomain.StayDates, excludeID *uuid.UUID) (bool, error) {
	var count int64
	if err := overlapQuery(r.db.WithContext(ctx), roomID, stay, excludeID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", translateStoreError(err, ""))
	}
	return count > 0, nil
}

// lockRoom takes a FOR UPDATE row lock on the room, serializing all
// availability-sensitive writers for that room until commit.
func lockRoom(tx *gorm.DB, roomID uuid.UUID) error {
	var locked RoomModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", roomID).
		First(&locked).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("room", roomID.String())
		}
		return fmt.Errorf("failed to lock room: %w", err)
	}
	return nil
}

// CreateConfirmed inserts a new booking, re-running the availability check
// under the room lock in the same transaction as the insert.
func (r *GormBookingRepository) CreateConfirmed(ctx context.Context, bk *bookingDomain.Booking) error {
	const conflictMsg = "room is not available for the selected dates"

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, bk.RoomID()); err != nil {
			return err
		}

		var count int64
		if err := overlapQuery(tx, bk.RoomID(), bk.Stay(), nil).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if count > 0 {
			return domain.NewConflictError(conflictMsg)
		}

		return tx.Create(toBookingModel(bk)).Error
	})
	return translateStoreError(err, conflictMsg)
}

// Reschedule persists a date change, re-running the availability check with
// the booking's own reservation excluded, under the room lock.
func (r *GormBookingRepository) Reschedule(ctx context.Context, bk *bookingDomain.Booking) error {
	const conflictMsg = "room is not available for the selected dates"

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, bk.RoomID()); err != nil {
			return err
		}

		id := bk.ID()
		var count int64
		if err := overlapQuery(tx, bk.RoomID(), bk.Stay(), &id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if count > 0 {
			return domain.NewConflictError(conflictMsg)
		}

		return applyUpdate(tx, bk)
	})
	return translateStoreError(err, conflictMsg)
}

// Update persists non-date changes with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	err := applyUpdate(r.db.WithContext(ctx), bk)
	return translateStoreError(err, "room is not available for the selected dates")
}

// applyUpdate writes all mutable columns guarded by the version check:
// RowsAffected == 0 means another transaction got there first.
func applyUpdate(tx *gorm.DB, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	expectedVersion := bk.Version() - 1

	result := tx.Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"guest_name":        model.GuestName,
			"guest_email":       model.GuestEmail,
			"guest_phone":       model.GuestPhone,
			"check_in":          model.CheckIn,
			"check_out":         model.CheckOut,
			"guests":            model.Guests,
			"total_price_cents": model.TotalPriceCents,
			"currency":          model.Currency,
			"status":            model.Status,
			"cancelled_at":      model.CancelledAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Delete removes a booking unconditionally (administrative escape hatch).
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete booking: %w", translateStoreError(result.Error, ""))
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", translateStoreError(err, ""))
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:              bk.ID(),
		RoomID:          bk.RoomID(),
		GuestName:       bk.Guest().Name,
		GuestEmail:      bk.Guest().Email,
		GuestPhone:      bk.Guest().Phone,
		CheckIn:         bk.Stay().CheckIn(),
		CheckOut:        bk.Stay().CheckOut(),
		Guests:          bk.GuestCount(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		Status:          bk.Status().String(),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.RoomID,
		bookingDomain.Guest{Name: m.GuestName, Email: m.GuestEmail, Phone: m.GuestPhone},
		bookingDomain.NewStayDates(m.CheckIn, m.CheckOut),
		m.Guests,
		m.TotalPriceCents,
		m.Currency,
		status,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
