package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// stubUserRepo is an in-memory UserRepository for service-level tests.
type stubUserRepo struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newStubUserRepo(users ...*User) *stubUserRepo {
	r := &stubUserRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// memRevocationStore is an in-memory TokenRevocationStore, standing in
// for the Redis-backed one so rotation and logout can be asserted on
// without a Redis instance.
type memRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemRevocationStore() *memRevocationStore {
	return &memRevocationStore{revoked: make(map[string]bool)}
}

func (s *memRevocationStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = true
	return nil
}

func (s *memRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[tokenID], nil
}

// cheapHash hashes at bcrypt's minimum cost so the test suite doesn't
// spend seconds on the default production cost.
func cheapHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewPasswordHasher(4).Hash(password)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	return hash
}

func newTestAuthService(t *testing.T, users ...*User) (*AuthService, *memRevocationStore) {
	t.Helper()
	jwtService, err := NewJWTService(
		"test-access-secret-key-32-chars!",
		"test-refresh-secret-key-32chars!",
		15*time.Minute,
		7*24*time.Hour,
	)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	svc := NewAuthService(jwtService, newStubUserRepo(users...), nil)
	store := newMemRevocationStore()
	svc.revocation = store
	return svc, store
}

func activeUser(t *testing.T, email, password, role string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: cheapHash(t, password),
		Name:         "Dr. " + role,
		Role:         role,
		Active:       true,
	}
}

func TestAuthService_Login(t *testing.T) {
	scheduler := activeUser(t, "scheduler@example.com", "demo12345", "scheduler")
	inactive := activeUser(t, "inactive@example.com", "demo12345", "scheduler")
	inactive.Active = false

	svc, _ := newTestAuthService(t, scheduler, inactive)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "scheduler@example.com", "demo12345", nil},
		{"wrong password", "scheduler@example.com", "wrong-password", ErrInvalidCredentials},
		{"unknown email maps to invalid credentials", "nobody@example.com", "demo12345", ErrInvalidCredentials},
		{"inactive account", "inactive@example.com", "demo12345", ErrUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.email, tt.password)
			if err != tt.wantErr {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if result.AccessToken == "" || result.RefreshToken == "" {
				t.Error("expected a non-empty token pair on successful login")
			}
			if result.TokenType != "Bearer" {
				t.Errorf("TokenType = %q, want Bearer", result.TokenType)
			}
			if result.User == nil || result.User.Email != tt.email {
				t.Errorf("expected user info for %s in the login result, got %+v", tt.email, result.User)
			}
		})
	}
}

func TestAuthService_Refresh_RotatesAndRevokesOldToken(t *testing.T) {
	user := activeUser(t, "scheduler@example.com", "demo12345", "scheduler")
	svc, _ := newTestAuthService(t, user)
	ctx := context.Background()

	login, err := svc.Login(ctx, user.Email, "demo12345")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Error("expected a new token pair from Refresh")
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("rotation must issue a different refresh token")
	}

	// The rotated-out token is revoked and cannot be replayed.
	if _, err := svc.Refresh(ctx, login.RefreshToken); err != ErrTokenRevoked {
		t.Errorf("replaying a rotated refresh token: error = %v, want ErrTokenRevoked", err)
	}
}

func TestAuthService_Refresh_RejectsInactiveUser(t *testing.T) {
	user := activeUser(t, "scheduler@example.com", "demo12345", "scheduler")
	svc, _ := newTestAuthService(t, user)
	ctx := context.Background()

	login, err := svc.Login(ctx, user.Email, "demo12345")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Deactivated between login and refresh.
	user.Active = false

	if _, err := svc.Refresh(ctx, login.RefreshToken); err != ErrUserInactive {
		t.Errorf("Refresh for a deactivated user: error = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	user := activeUser(t, "scheduler@example.com", "demo12345", "scheduler")
	svc, store := newTestAuthService(t, user)
	ctx := context.Background()

	login, err := svc.Login(ctx, user.Email, "demo12345")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(store.revoked) != 1 {
		t.Errorf("expected exactly one revoked token after logout, got %d", len(store.revoked))
	}
	if _, err := svc.Refresh(ctx, login.RefreshToken); err != ErrTokenRevoked {
		t.Errorf("refresh after logout: error = %v, want ErrTokenRevoked", err)
	}

	// An invalid token still logs out cleanly: validity is not leaked.
	if err := svc.Logout(ctx, "not-a-token"); err != nil {
		t.Errorf("Logout with a garbage token: error = %v, want nil", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	user := activeUser(t, "scheduler@example.com", "demo12345", "scheduler")
	svc, _ := newTestAuthService(t, user)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"known user", user.ID.String(), nil},
		{"unknown user", uuid.New().String(), ErrUserNotFound},
		{"malformed id", "not-a-uuid", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.GetCurrentUser(ctx, tt.userID)
			if err != tt.wantErr {
				t.Fatalf("GetCurrentUser() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && info.Email != user.Email {
				t.Errorf("GetCurrentUser() email = %q, want %q", info.Email, user.Email)
			}
		})
	}
}

func TestPasswordHasher_HashAndCheck(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("securePassword123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "securePassword123" {
		t.Fatalf("expected a non-empty bcrypt hash, got %q", hash)
	}

	if err := CheckPasswordHash("securePassword123", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPasswordHash("wrongPassword456", hash); err != ErrInvalidPassword {
		t.Errorf("wrong password: error = %v, want ErrInvalidPassword", err)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "validPass123", nil},
		{"exactly minimum length", "12345678", nil},
		{"too short", "short", ErrPasswordTooShort},
		{"over bcrypt's input limit", string(make([]byte, 80)), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePasswordStrength(tt.password); err != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
