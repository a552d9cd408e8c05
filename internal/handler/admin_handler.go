package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// AdminHandler handles admin HTTP requests: booking oversight and reports.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authMW, middleware.RequireRole(identity.RoleAdmin))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/stats/bookings", h.BookingStats)
		admin.GET("/reports/hotels/:id/bookings", h.HotelReport)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// BookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminHandler) BookingStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// HotelReport handles GET /api/v1/admin/reports/hotels/:id/bookings with
// start_date and end_date query parameters (YYYY-MM-DD).
func (h *AdminHandler) HotelReport(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		response.BadRequest(c, "start_date must be a YYYY-MM-DD date")
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		response.BadRequest(c, "end_date must be a YYYY-MM-DD date")
		return
	}

	stats, err := h.bookings.GetHotelStatistics(c.Request.Context(), hotelID, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
