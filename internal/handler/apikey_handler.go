package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// APIKeyHandler handles HTTP requests for service-account key management.
// All routes are admin-only.
type APIKeyHandler struct {
	service *application.APIKeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(service *application.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{service: service}
}

// RegisterRoutes registers api-key routes.
func (h *APIKeyHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	keys := r.Group("/apikeys")
	keys.Use(authMW, middleware.RequireRole(identity.RoleAdmin))
	{
		keys.POST("", h.Create)
		keys.GET("", h.List)
		keys.GET("/:id", h.Get)
		keys.PUT("/:id", h.Update)
		keys.POST("/:id/revoke", h.Revoke)
		keys.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /api/v1/apikeys. The response is the only place the
// key value is ever shown.
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req application.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateAPIKey(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List handles GET /api/v1/apikeys.
func (h *APIKeyHandler) List(c *gin.Context) {
	result, err := h.service.ListAPIKeys(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /api/v1/apikeys/:id.
func (h *APIKeyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid api key ID")
		return
	}

	result, err := h.service.GetAPIKey(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update handles PUT /api/v1/apikeys/:id with partial semantics.
func (h *APIKeyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid api key ID")
		return
	}

	var req application.UpdateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateAPIKey(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Revoke handles POST /api/v1/apikeys/:id/revoke.
func (h *APIKeyHandler) Revoke(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid api key ID")
		return
	}

	if err := h.service.RevokeAPIKey(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /api/v1/apikeys/:id.
func (h *APIKeyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid api key ID")
		return
	}

	if err := h.service.DeleteAPIKey(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
