package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the cost factor used when no hasher is built
	// explicitly with a different one.
	DefaultBcryptCost = 12

	// MaxPasswordLength is the maximum password length (bcrypt's own limit is 72 bytes).
	MaxPasswordLength = 72

	// MinPasswordLength is the minimum password length accepted at all.
	MinPasswordLength = 8
)

var (
	// ErrPasswordTooShort is returned when the password is too short.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's limit.
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 characters")

	// ErrInvalidPassword is returned when password verification fails.
	ErrInvalidPassword = errors.New("invalid password")
)

// PasswordHasher wraps bcrypt with a configurable cost factor, so tests
// can run with a cheap cost while production runs with a stronger one
// without either side touching a package-level constant.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher at the given bcrypt cost. A cost
// outside bcrypt's valid range falls back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash validates password strength and returns its bcrypt hash.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

var defaultHasher = NewPasswordHasher(DefaultBcryptCost)

// HashPassword hashes password at the default cost. Call sites that want
// a non-default cost (e.g. a faster one in tests) should build their own
// PasswordHasher instead.
func HashPassword(password string) (string, error) {
	return defaultHasher.Hash(password)
}

// CheckPasswordHash compares a password with a bcrypt hash.
func CheckPasswordHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// ValidatePasswordStrength checks that a password falls within the
// accepted length bounds.
func ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	default:
		return nil
	}
}
