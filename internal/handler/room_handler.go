package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// RoomHandler handles HTTP requests for room inventory.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes registers all room routes on the given router group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	rooms := r.Group("/rooms")
	rooms.Use(authMW)
	{
		rooms.POST("", middleware.RequirePermission(auth.RoomsCreate), h.CreateRoom)
		rooms.GET("/:id", middleware.RequirePermission(auth.RoomsRead), h.GetRoom)
		rooms.PUT("/:id", middleware.RequirePermission(auth.RoomsUpdate), h.UpdateRoom)
		rooms.DELETE("/:id", middleware.RequirePermission(auth.RoomsDelete), h.DeleteRoom)
		rooms.POST("/:id/amenities/:amenityId", middleware.RequirePermission(auth.RoomsUpdate), h.AssignAmenity)
		rooms.DELETE("/:id/amenities/:amenityId", middleware.RequirePermission(auth.RoomsUpdate), h.RemoveAmenity)
	}

	hotelRooms := r.Group("/hotels/:id/rooms")
	hotelRooms.Use(authMW)
	{
		hotelRooms.GET("", middleware.RequirePermission(auth.RoomsRead), h.ListRoomsByHotel)
	}
}

// CreateRoom handles POST /api/v1/rooms.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	result, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListRoomsByHotel handles GET /api/v1/hotels/:id/rooms.
func (h *RoomHandler) ListRoomsByHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListRoomsByHotel(c.Request.Context(), hotelID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// UpdateRoom handles PUT /api/v1/rooms/:id with partial semantics.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	var req application.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), roomID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignAmenity handles POST /api/v1/rooms/:id/amenities/:amenityId.
func (h *RoomHandler) AssignAmenity(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}
	amenityID, err := uuid.Parse(c.Param("amenityId"))
	if err != nil {
		response.BadRequest(c, "invalid amenity ID")
		return
	}

	if err := h.service.AssignAmenity(c.Request.Context(), roomID, amenityID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveAmenity handles DELETE /api/v1/rooms/:id/amenities/:amenityId.
func (h *RoomHandler) RemoveAmenity(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}
	amenityID, err := uuid.Parse(c.Param("amenityId"))
	if err != nil {
		response.BadRequest(c, "invalid amenity ID")
		return
	}

	if err := h.service.RemoveAmenity(c.Request.Context(), roomID, amenityID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
