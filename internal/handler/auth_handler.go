package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/response"
)

// AuthHandler handles registration, login, and profile retrieval.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers auth routes. Register and login are public; the
// profile endpoint requires a token.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.Me)

		// Admin-only user creation, for assigning elevated roles.
		authGroup.POST("/users", authMW, middleware.RequireRole(identity.RoleAdmin), h.Register)
	}
}

// Register handles POST /api/v1/auth/register. Unauthenticated callers can
// only create plain user accounts; an authenticated admin may set a role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role, _ := middleware.GetUserRole(c)
	result, err := h.service.Register(c.Request.Context(), req, role == identity.RoleAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
