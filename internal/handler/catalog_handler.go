package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// FacilityHandler handles HTTP requests for the facility catalog.
type FacilityHandler struct {
	service *application.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(service *application.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// RegisterRoutes registers facility routes. The catalog is hotel inventory,
// so it shares the hotel permissions.
func (h *FacilityHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	facilities := r.Group("/facilities")
	facilities.Use(authMW)
	{
		facilities.POST("", middleware.RequirePermission(auth.HotelsCreate), h.Create)
		facilities.GET("", middleware.RequirePermission(auth.HotelsRead), h.List)
		facilities.GET("/:id", middleware.RequirePermission(auth.HotelsRead), h.Get)
		facilities.PUT("/:id", middleware.RequirePermission(auth.HotelsUpdate), h.Update)
		facilities.DELETE("/:id", middleware.RequirePermission(auth.HotelsDelete), h.Delete)
	}
}

func (h *FacilityHandler) Create(c *gin.Context) {
	var req application.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.CreateFacility(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *FacilityHandler) List(c *gin.Context) {
	result, err := h.service.ListFacilities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *FacilityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid facility ID")
		return
	}
	result, err := h.service.GetFacility(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *FacilityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid facility ID")
		return
	}
	var req application.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.UpdateFacility(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *FacilityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid facility ID")
		return
	}
	if err := h.service.DeleteFacility(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AmenityHandler handles HTTP requests for the amenity catalog.
type AmenityHandler struct {
	service *application.AmenityService
}

// NewAmenityHandler creates a new AmenityHandler.
func NewAmenityHandler(service *application.AmenityService) *AmenityHandler {
	return &AmenityHandler{service: service}
}

// RegisterRoutes registers amenity routes. The catalog is room inventory, so
// it shares the room permissions.
func (h *AmenityHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	amenities := r.Group("/amenities")
	amenities.Use(authMW)
	{
		amenities.POST("", middleware.RequirePermission(auth.RoomsCreate), h.Create)
		amenities.GET("", middleware.RequirePermission(auth.RoomsRead), h.List)
		amenities.GET("/:id", middleware.RequirePermission(auth.RoomsRead), h.Get)
		amenities.PUT("/:id", middleware.RequirePermission(auth.RoomsUpdate), h.Update)
		amenities.DELETE("/:id", middleware.RequirePermission(auth.RoomsDelete), h.Delete)
	}
}

func (h *AmenityHandler) Create(c *gin.Context) {
	var req application.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.CreateAmenity(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *AmenityHandler) List(c *gin.Context) {
	result, err := h.service.ListAmenities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AmenityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid amenity ID")
		return
	}
	result, err := h.service.GetAmenity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AmenityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid amenity ID")
		return
	}
	var req application.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.UpdateAmenity(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AmenityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid amenity ID")
		return
	}
	if err := h.service.DeleteAmenity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
