package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitalconnect/scheduler/internal/middleware"
	"github.com/vitalconnect/scheduler/internal/services/auth"
)

// AuthHandler exposes the login/refresh/logout/me endpoints over AuthService.
type AuthHandler struct {
	authService *auth.AuthService
}

// NewAuthHandler builds an AuthHandler bound to authService. Callers wire
// its methods directly into the router (e.g. authRoutes.POST("/login",
// authHandler.Login)) rather than through package-level functions.
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// RefreshRequest is the refresh-token request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest is the logout request body.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

var loginErrorResponses = map[error]struct {
	status int
	body   gin.H
}{
	auth.ErrInvalidCredentials: {http.StatusUnauthorized, gin.H{"error": "invalid email or password"}},
	auth.ErrUserInactive:       {http.StatusForbidden, gin.H{"error": "user account is inactive"}},
}

// Login authenticates a user.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if resp, known := loginErrorResponses[err]; known {
			c.JSON(resp.status, resp.body)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshToken rotates a refresh token into a new token pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token has expired", "code": "TOKEN_EXPIRED"})
		case auth.ErrInvalidToken, auth.ErrInvalidClaims:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token", "code": "INVALID_TOKEN"})
		case auth.ErrTokenRevoked:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token has been revoked", "code": "TOKEN_REVOKED"})
		case auth.ErrUserInactive:
			c.JSON(http.StatusForbidden, gin.H{"error": "user account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout revokes a refresh token. It always reports success, even for an
// already-invalid token, to avoid leaking token validity to the caller.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !bindJSON(c, &req) {
		return
	}

	_ = h.authService.Logout(c.Request.Context(), req.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me returns the currently authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetUserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if err == auth.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user information"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// bindJSON binds the request body into dst, writing a 400 response and
// returning false on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}
