package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/domain"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"github.com/wrnass1/hotelbooking/internal/events"
	"github.com/wrnass1/hotelbooking/internal/kafka"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestEmail string    `json:"guest_email" binding:"required,email"`
	GuestPhone string    `json:"guest_phone"`
	CheckIn    time.Time `json:"check_in" binding:"required" time_format:"2006-01-02"`
	CheckOut   time.Time `json:"check_out" binding:"required" time_format:"2006-01-02"`
	GuestCount int       `json:"guest_count" binding:"required"`
}

// UpdateBookingRequest carries a partial booking update. Nil fields are left
// untouched; provided fields are applied.
type UpdateBookingRequest struct {
	GuestName  *string    `json:"guest_name"`
	GuestEmail *string    `json:"guest_email"`
	GuestPhone *string    `json:"guest_phone"`
	CheckIn    *time.Time `json:"check_in" time_format:"2006-01-02"`
	CheckOut   *time.Time `json:"check_out" time_format:"2006-01-02"`
	GuestCount *int       `json:"guest_count"`
	Status     *string    `json:"status"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	RoomID          uuid.UUID  `json:"room_id"`
	GuestName       string     `json:"guest_name"`
	GuestEmail      string     `json:"guest_email"`
	GuestPhone      string     `json:"guest_phone,omitempty"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	Nights          int        `json:"nights"`
	GuestCount      int        `json:"guest_count"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.Repository
	rooms    roomDomain.Repository
	reports  bookingDomain.ReportRepository
	pricing  bookingDomain.PricingCalculator
	producer *kafka.Producer
	cache    *cache.Service
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	rooms roomDomain.Repository,
	reports bookingDomain.ReportRepository,
	pricing bookingDomain.PricingCalculator,
	producer *kafka.Producer,
	cacheSvc *cache.Service,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		reports:  reports,
		pricing:  pricing,
		producer: producer,
		cache:    cacheSvc,
		logger:   logger,
	}
}

// CreateBooking validates the request against the room and existing bookings,
// prices the stay, and persists the booking as confirmed. The checks run in a
// fixed order so the first failure wins: room existence, room availability
// flag, date ordering, past check-in, date-range availability, capacity.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	rm, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !rm.IsAvailable() {
		return nil, domain.NewConflictError("room is not available for booking")
	}

	stay := bookingDomain.NewStayDates(req.CheckIn, req.CheckOut)
	if !stay.IsOrdered() {
		return nil, domain.NewValidationError("check-out date must be after check-in date")
	}
	today := bookingDomain.TruncateToDate(time.Now().UTC())
	if stay.CheckIn().Before(today) {
		return nil, domain.NewValidationError("check-in date cannot be in the past")
	}

	taken, err := s.bookings.FindOverlapping(ctx, rm.ID(), stay, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("room is already booked for the requested dates")
	}

	if req.GuestCount > rm.MaxOccupancy() {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"guest count %d exceeds room capacity of %d", req.GuestCount, rm.MaxOccupancy()))
	}

	total, err := s.pricing.Quote(rm.NightlyRateCents(), stay)
	if err != nil {
		return nil, err
	}

	guest := bookingDomain.Guest{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone}
	bk, err := bookingDomain.NewBooking(rm.ID(), guest, stay, req.GuestCount, total, domain.CurrencyUSD)
	if err != nil {
		return nil, err
	}

	// CreateConfirmed re-runs the overlap check inside the insert transaction;
	// a lost race comes back as a conflict and the whole call is retryable.
	if err := s.bookings.CreateConfirmed(ctx, bk); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), events.BookingCreatedEvent{
		BookingID:       bk.ID(),
		RoomID:          bk.RoomID(),
		HotelID:         rm.HotelID(),
		GuestEmail:      bk.Guest().Email,
		CheckIn:         bk.Stay().CheckIn(),
		CheckOut:        bk.Stay().CheckOut(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBooking applies a partial update. Fields left nil in the request are
// untouched. When either date changes, availability is re-checked excluding
// this booking's own reservation and the total is re-priced from the room's
// current nightly rate.
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bk.IsCancelled() {
		return nil, domain.NewConflictError("cannot update a cancelled booking")
	}

	if req.GuestName != nil || req.GuestEmail != nil || req.GuestPhone != nil {
		guest := bk.Guest()
		if req.GuestName != nil {
			guest.Name = *req.GuestName
		}
		if req.GuestEmail != nil {
			guest.Email = *req.GuestEmail
		}
		if req.GuestPhone != nil {
			guest.Phone = *req.GuestPhone
		}
		if err := bk.ChangeGuest(guest); err != nil {
			return nil, err
		}
	}

	if req.GuestCount != nil {
		rm, err := s.rooms.FindByID(ctx, bk.RoomID())
		if err != nil {
			return nil, err
		}
		if *req.GuestCount > rm.MaxOccupancy() {
			return nil, domain.NewValidationError(fmt.Sprintf(
				"guest count %d exceeds room capacity of %d", *req.GuestCount, rm.MaxOccupancy()))
		}
		if err := bk.ChangeGuestCount(*req.GuestCount); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		target, err := bookingDomain.ParseBookingStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if err := bk.ChangeStatus(target); err != nil {
			return nil, err
		}
	}

	datesChanged := req.CheckIn != nil || req.CheckOut != nil
	if datesChanged {
		checkIn := bk.Stay().CheckIn()
		checkOut := bk.Stay().CheckOut()
		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}
		stay := bookingDomain.NewStayDates(checkIn, checkOut)
		if !stay.IsOrdered() {
			return nil, domain.NewValidationError("check-out date must be after check-in date")
		}

		excludeID := bk.ID()
		taken, err := s.bookings.FindOverlapping(ctx, bk.RoomID(), stay, &excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewConflictError("room is already booked for the requested dates")
		}

		rm, err := s.rooms.FindByID(ctx, bk.RoomID())
		if err != nil {
			return nil, err
		}
		total, err := s.pricing.Quote(rm.NightlyRateCents(), stay)
		if err != nil {
			return nil, err
		}
		if err := bk.Reschedule(stay, total); err != nil {
			return nil, err
		}
	}

	bk.IncrementVersion()
	if datesChanged {
		err = s.bookings.Reschedule(ctx, bk)
	} else {
		err = s.bookings.Update(ctx, bk)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingUpdated, bk.ID().String(), events.BookingUpdatedEvent{
		BookingID:  bk.ID(),
		RoomID:     bk.RoomID(),
		CheckIn:    bk.Stay().CheckIn(),
		CheckOut:   bk.Stay().CheckOut(),
		Status:     string(bk.Status()),
		OccurredAt: time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking moves the booking to cancelled. Cancelling a booking that is
// already cancelled succeeds without writing anything.
func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := bk.Cancel()
	if err != nil {
		return nil, err
	}
	if changed {
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			return nil, err
		}
		s.publishEvent(ctx, events.BookingCancelled, bk.ID().String(), events.BookingCancelledEvent{
			BookingID:   bk.ID(),
			RoomID:      bk.RoomID(),
			CancelledAt: *bk.CancelledAt(),
			OccurredAt:  time.Now().UTC(),
		})
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// DeleteBooking hard-deletes a booking regardless of its status. This is an
// administrative escape hatch, distinct from cancellation.
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("booking", id.String())
	}

	s.publishEvent(ctx, events.BookingDeleted, id.String(), events.BookingDeletedEvent{
		BookingID:  id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// AvailabilityDTO is the response of a read-only availability query.
type AvailabilityDTO struct {
	RoomID    uuid.UUID `json:"room_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Available bool      `json:"available"`
}

// CheckAvailability answers whether a room is free for a date range without
// taking any locks. The result is cached; booking events evict the room's
// availability entries. Write paths never consult this, they re-check inside
// their own transactions.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityDTO, error) {
	stay := bookingDomain.NewStayDates(checkIn, checkOut)
	if !stay.IsOrdered() {
		return nil, domain.NewValidationError("check-out date must be after check-in date")
	}

	key := cache.AvailabilityKey(roomID, stay.CheckIn(), stay.CheckOut())
	var cached AvailabilityDTO
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	rm, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	available := rm.IsAvailable()
	if available {
		taken, err := s.bookings.FindOverlapping(ctx, roomID, stay, nil)
		if err != nil {
			return nil, err
		}
		available = !taken
	}

	result := AvailabilityDTO{
		RoomID:    roomID,
		CheckIn:   stay.CheckIn(),
		CheckOut:  stay.CheckOut(),
		Available: available,
	}
	s.cache.Set(ctx, key, result)
	return &result, nil
}

// ListBookingsByRoom retrieves paginated bookings for a specific room.
func (s *BookingService) ListBookingsByRoom(ctx context.Context, roomID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByRoomID(ctx, roomID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// ListBookingsByGuestEmail retrieves paginated bookings made under an email.
func (s *BookingService) ListBookingsByGuestEmail(ctx context.Context, email string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByGuestEmail(ctx, email, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking counts for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking counts by status (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// GetHotelStatistics reports booking statistics for one hotel over a check-in
// date window (admin).
func (s *BookingService) GetHotelStatistics(ctx context.Context, hotelID uuid.UUID, startDate, endDate time.Time) (*bookingDomain.Statistics, error) {
	if !endDate.After(startDate) {
		return nil, domain.NewValidationError("end date must be after start date")
	}
	return s.reports.Statistics(ctx, hotelID, startDate, endDate)
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		RoomID:          bk.RoomID(),
		GuestName:       bk.Guest().Name,
		GuestEmail:      bk.Guest().Email,
		GuestPhone:      bk.Guest().Phone,
		CheckIn:         bk.Stay().CheckIn(),
		CheckOut:        bk.Stay().CheckOut(),
		Nights:          bk.Stay().Nights(),
		GuestCount:      bk.GuestCount(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		Status:          string(bk.Status()),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("hotelbooking-api", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
