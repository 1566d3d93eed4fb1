package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vitalconnect/scheduler/internal/services/auth"
)

// UserClaims is the subset of JWT claims a handler needs once a request
// has been authenticated.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
}

const (
	jwtServiceContextKey = "jwt_service"
	userClaimsContextKey = "user_claims"
)

// SetJWTService stores the JWT service in the Gin context so downstream
// middleware (AuthRequired, OptionalAuth) can reach it without a global.
func SetJWTService(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtServiceContextKey, jwtService)
		c.Next()
	}
}

// GetJWTService retrieves the JWT service stashed by SetJWTService.
func GetJWTService(c *gin.Context) (*auth.JWTService, bool) {
	value, exists := c.Get(jwtServiceContextKey)
	if !exists {
		return nil, false
	}
	jwtService, ok := value.(*auth.JWTService)
	return jwtService, ok
}

// bearerToken extracts the token from a "Bearer <token>" Authorization
// header, reporting whether one was present at all.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		token, ok = strings.CutPrefix(header, "bearer ")
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// authenticate resolves the bearer token on the request into claims,
// classifying failures so AuthRequired and OptionalAuth can each decide
// what to do with them.
func authenticate(c *gin.Context) (*UserClaims, error) {
	jwtService, ok := GetJWTService(c)
	if !ok {
		return nil, errAuthNotConfigured
	}

	token, ok := bearerToken(c)
	if !ok {
		return nil, errNoBearerToken
	}

	claims, err := jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &UserClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		TeamID: claims.TeamID,
	}, nil
}

var (
	errAuthNotConfigured = authConfigError{}
	errNoBearerToken     = bearerMissingError{}
)

type authConfigError struct{}

func (authConfigError) Error() string { return "authentication service not configured" }

type bearerMissingError struct{}

func (bearerMissingError) Error() string { return "bearer token required" }

// AuthRequired rejects any request that doesn't carry a valid access
// token, and otherwise stores its claims for downstream handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c)
		if err != nil {
			respondUnauthenticated(c, err)
			return
		}

		c.Set(userClaimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims to the context when a valid token is
// present, but never blocks the request when one isn't.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := authenticate(c); err == nil {
			c.Set(userClaimsContextKey, claims)
		}
		c.Next()
	}
}

func respondUnauthenticated(c *gin.Context, err error) {
	switch {
	case err == errAuthNotConfigured:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "authentication service not configured",
		})
	case err == errNoBearerToken:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authorization header required",
		})
	case err == auth.ErrExpiredToken:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "token has expired",
			"code":  "TOKEN_EXPIRED",
		})
	case err == auth.ErrInvalidToken, err == auth.ErrInvalidClaims:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid token",
			"code":  "INVALID_TOKEN",
		})
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
	}
}

// RequireRole rejects any authenticated request whose role isn't in the
// allowed set. AuthRequired must run first to populate claims.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		claims, ok := GetUserClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		if !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":         "insufficient permissions",
				"required_role": roles,
				"user_role":     claims.Role,
			})
			return
		}

		c.Next()
	}
}

// GetUserClaims extracts the authenticated user's claims from context.
func GetUserClaims(c *gin.Context) (*UserClaims, bool) {
	value, exists := c.Get(userClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*UserClaims)
	return claims, ok
}
