package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserInactive is returned when a user account is inactive.
	ErrUserInactive = errors.New("user account is inactive")

	// ErrInvalidCredentials is returned for an invalid email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenRevoked is returned when a refresh token has been revoked.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// User represents the account data needed for authentication.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string
	TeamID       *uuid.UUID
	Active       bool
}

// UserRepository is the data-access interface AuthService needs from the
// persistence layer.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// TokenRevocationStore tracks refresh-token IDs that have been revoked
// (via logout or rotation) ahead of their natural expiry. AuthService
// depends on this interface rather than a concrete Redis client so the
// revocation backend can be swapped or stubbed independently of the rest
// of the auth flow.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// redisRevocationStore implements TokenRevocationStore on top of Redis. A
// nil client makes it a no-op, so auth still works (without revocation)
// when Redis isn't wired up.
type redisRevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationStore builds a Redis-backed TokenRevocationStore.
func NewRedisRevocationStore(client *redis.Client) TokenRevocationStore {
	return &redisRevocationStore{client: client, prefix: "revoked_token"}
}

func (r *redisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, r.key(tokenID), "revoked", ttl).Err()
}

func (r *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	count, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *redisRevocationStore) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, tokenID)
}

// AuthService handles login, refresh, logout and current-user lookups.
type AuthService struct {
	jwtService *JWTService
	userRepo   UserRepository
	revocation TokenRevocationStore
}

// NewAuthService wires the JWT service, the user repository and a
// Redis-backed revocation store into an AuthService.
func NewAuthService(jwtService *JWTService, userRepo UserRepository, redisClient *redis.Client) *AuthService {
	return &AuthService{
		jwtService: jwtService,
		userRepo:   userRepo,
		revocation: NewRedisRevocationStore(redisClient),
	}
}

// LoginResult contains the result of a successful login.
type LoginResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *UserInfo `json:"user"`
}

// UserInfo is the user data returned alongside a login/refresh result.
type UserInfo struct {
	ID     uuid.UUID  `json:"id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   string     `json:"role"`
	TeamID *uuid.UUID `json:"team_id,omitempty"`
}

// Login authenticates a user by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserInactive
	}

	if err := CheckPasswordHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtService.GetAccessTokenDuration().Seconds()),
		User:         userInfoFrom(user),
	}, nil
}

// RefreshResult contains the result of a successful token refresh.
type RefreshResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Refresh rotates a valid, unrevoked refresh token into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserInactive
	}

	// Token rotation is best-effort: a failure to revoke the old token
	// shouldn't block issuing the new pair.
	_ = s.revocation.Revoke(ctx, claims.ID, s.jwtService.GetRefreshTokenDuration())

	newAccessToken, newRefreshToken, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtService.GetAccessTokenDuration().Seconds()),
	}, nil
}

// Logout revokes a refresh token. An invalid or already-expired token is
// treated as a successful logout to avoid leaking token validity to the
// caller.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	return s.revocation.Revoke(ctx, claims.ID, s.jwtService.GetRefreshTokenDuration())
}

// GetCurrentUser resolves a user ID (as carried in token claims) into the
// public UserInfo projection.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return userInfoFrom(user), nil
}

func (s *AuthService) issueTokenPair(user *User) (accessToken, refreshToken string, err error) {
	teamID := ""
	if user.TeamID != nil {
		teamID = user.TeamID.String()
	}
	return s.jwtService.GenerateTokenPair(user.ID.String(), user.Email, user.Role, teamID)
}

func userInfoFrom(user *User) *UserInfo {
	return &UserInfo{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		TeamID: user.TeamID,
	}
}
