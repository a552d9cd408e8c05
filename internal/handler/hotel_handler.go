package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// HotelHandler handles HTTP requests for the hotel catalog.
type HotelHandler struct {
	service *application.HotelService
}

// NewHotelHandler creates a new HotelHandler.
func NewHotelHandler(service *application.HotelService) *HotelHandler {
	return &HotelHandler{service: service}
}

// RegisterRoutes registers all hotel routes on the given router group.
func (h *HotelHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	hotels := r.Group("/hotels")
	hotels.Use(authMW)
	{
		hotels.POST("", middleware.RequirePermission(auth.HotelsCreate), h.CreateHotel)
		hotels.GET("", middleware.RequirePermission(auth.HotelsRead), h.SearchHotels)
		hotels.GET("/:id", middleware.RequirePermission(auth.HotelsRead), h.GetHotel)
		hotels.PUT("/:id", middleware.RequirePermission(auth.HotelsUpdate), h.UpdateHotel)
		hotels.DELETE("/:id", middleware.RequirePermission(auth.HotelsDelete), h.DeleteHotel)
		hotels.POST("/:id/facilities/:facilityId", middleware.RequirePermission(auth.HotelsUpdate), h.AssignFacility)
		hotels.DELETE("/:id/facilities/:facilityId", middleware.RequirePermission(auth.HotelsUpdate), h.RemoveFacility)
	}
}

// CreateHotel handles POST /api/v1/hotels.
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var req application.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// SearchHotels handles GET /api/v1/hotels with optional search, city,
// country, and min_star_rating filters.
func (h *HotelHandler) SearchHotels(c *gin.Context) {
	var q application.HotelQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SearchHotels(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetHotel handles GET /api/v1/hotels/:id.
func (h *HotelHandler) GetHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	result, err := h.service.GetHotel(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateHotel handles PUT /api/v1/hotels/:id with partial semantics.
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	var req application.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateHotel(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteHotel handles DELETE /api/v1/hotels/:id.
func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	if err := h.service.DeleteHotel(c.Request.Context(), hotelID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignFacility handles POST /api/v1/hotels/:id/facilities/:facilityId.
func (h *HotelHandler) AssignFacility(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}
	facilityID, err := uuid.Parse(c.Param("facilityId"))
	if err != nil {
		response.BadRequest(c, "invalid facility ID")
		return
	}

	if err := h.service.AssignFacility(c.Request.Context(), hotelID, facilityID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveFacility handles DELETE /api/v1/hotels/:id/facilities/:facilityId.
func (h *HotelHandler) RemoveFacility(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}
	facilityID, err := uuid.Parse(c.Param("facilityId"))
	if err != nil {
		response.BadRequest(c, "invalid facility ID")
		return
	}

	if err := h.service.RemoveFacility(c.Request.Context(), hotelID, facilityID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
