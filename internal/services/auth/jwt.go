package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTokenDuration is the default expiration for access tokens.
	DefaultAccessTokenDuration = 15 * time.Minute

	// DefaultRefreshTokenDuration is the default expiration for refresh tokens.
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour

	defaultIssuer          = "scheduler"
	defaultClockSkewLeeway = 5 * time.Second
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidClaims is returned when token claims are invalid.
	ErrInvalidClaims = errors.New("invalid token claims")

	// ErrMissingSecret is returned when a JWT secret is not configured.
	ErrMissingSecret = errors.New("JWT secret is not configured")
)

// TokenType distinguishes access tokens from refresh tokens, both as the
// embedded claim and as the key into a JWTService's per-type secret and
// duration maps.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents the JWT claims carried by both token types.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TeamID    string `json:"team_id,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates access/refresh token pairs.
type JWTService struct {
	secrets   map[TokenType][]byte
	durations map[TokenType]time.Duration
	issuer    string
	leeway    time.Duration
}

// JWTServiceOption configures optional JWTService behavior beyond the
// required secrets and durations.
type JWTServiceOption func(*JWTService)

// WithIssuer overrides the issuer claim embedded in and checked against
// generated tokens.
func WithIssuer(issuer string) JWTServiceOption {
	return func(s *JWTService) { s.issuer = issuer }
}

// WithClockSkewLeeway overrides how much clock drift between issuer and
// validator is tolerated around expiry/not-before checks.
func WithClockSkewLeeway(d time.Duration) JWTServiceOption {
	return func(s *JWTService) { s.leeway = d }
}

// NewJWTService creates a JWT service instance for the given access and
// refresh secrets and durations.
func NewJWTService(accessSecret, refreshSecret string, accessDuration, refreshDuration time.Duration, opts ...JWTServiceOption) (*JWTService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSecret
	}

	if accessDuration == 0 {
		accessDuration = DefaultAccessTokenDuration
	}
	if refreshDuration == 0 {
		refreshDuration = DefaultRefreshTokenDuration
	}

	s := &JWTService{
		secrets: map[TokenType][]byte{
			AccessToken:  []byte(accessSecret),
			RefreshToken: []byte(refreshSecret),
		},
		durations: map[TokenType]time.Duration{
			AccessToken:  accessDuration,
			RefreshToken: refreshDuration,
		},
		issuer: defaultIssuer,
		leeway: defaultClockSkewLeeway,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// GenerateTokenPair generates both an access and a refresh token for the
// same principal.
func (s *JWTService) GenerateTokenPair(userID, email, role, teamID string) (accessToken, refreshToken string, err error) {
	accessToken, err = s.generate(AccessToken, userID, email, role, teamID)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generate(RefreshToken, userID, email, role, teamID)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GenerateAccessToken generates a new access token.
func (s *JWTService) GenerateAccessToken(userID, email, role, teamID string) (string, error) {
	return s.generate(AccessToken, userID, email, role, teamID)
}

// GenerateRefreshToken generates a new refresh token.
func (s *JWTService) GenerateRefreshToken(userID, email, role, teamID string) (string, error) {
	return s.generate(RefreshToken, userID, email, role, teamID)
}

func (s *JWTService) generate(tokenType TokenType, userID, email, role, teamID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TeamID:    teamID,
		TokenType: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.durations[tokenType])),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secrets[tokenType])
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, AccessToken)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, RefreshToken)
}

// validate parses tokenString with a parser constrained to HMAC, the
// configured issuer and clock-skew leeway, then checks that the embedded
// token_type claim matches what the caller asked to validate against.
func (s *JWTService) validate(tokenString string, expected TokenType) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(s.leeway),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secrets[expected], nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != string(expected) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetAccessTokenDuration returns the configured access token duration.
func (s *JWTService) GetAccessTokenDuration() time.Duration {
	return s.durations[AccessToken]
}

// GetRefreshTokenDuration returns the configured refresh token duration.
func (s *JWTService) GetRefreshTokenDuration() time.Duration {
	return s.durations[RefreshToken]
}
