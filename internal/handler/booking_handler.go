package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequirePermission(auth.BookingsCreate), h.CreateBooking)
		bookings.GET("", middleware.RequirePermission(auth.BookingsRead), h.ListBookings)
		bookings.GET("/:id", middleware.RequirePermission(auth.BookingsRead), h.GetBooking)
		bookings.PUT("/:id", middleware.RequirePermission(auth.BookingsUpdate), h.UpdateBooking)
		bookings.POST("/:id/cancel", middleware.RequirePermission(auth.BookingsUpdate), h.CancelBooking)
		bookings.DELETE("/:id", middleware.RequirePermission(auth.BookingsDelete), h.DeleteBooking)
	}

	availability := r.Group("/rooms/:id/availability")
	availability.Use(authMW)
	{
		availability.GET("", middleware.RequirePermission(auth.RoomsRead), h.CheckAvailability)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. Filters by room_id or
// guest_email query parameter; without a filter it lists everything, which
// requires the delete permission as an admin-level view.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	if roomParam := c.Query("room_id"); roomParam != "" {
		roomID, err := uuid.Parse(roomParam)
		if err != nil {
			response.BadRequest(c, "invalid room ID")
			return
		}
		result, err := h.service.ListBookingsByRoom(c.Request.Context(), roomID, page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
		return
	}

	if email := c.Query("guest_email"); email != "" {
		result, err := h.service.ListBookingsByGuestEmail(c.Request.Context(), email, page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if !auth.HasPermission(role, auth.BookingsDelete) {
		response.BadRequest(c, "room_id or guest_email filter is required")
		return
	}
	result, err := h.service.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBooking handles PUT /api/v1/bookings/:id with partial semantics:
// absent fields are untouched.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel. Cancelling twice
// succeeds both times.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id (hard delete).
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckAvailability handles GET /api/v1/rooms/:id/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		response.BadRequest(c, "check_in must be a YYYY-MM-DD date")
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		response.BadRequest(c, "check_out must be a YYYY-MM-DD date")
		return
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
