package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks field-level constraint violations. Wrap it with
	// the offending field message: fmt.Errorf("%w: name too short", ErrValidation).
	ErrValidation = errors.New("validation failed")

	ErrEmailTaken          = errors.New("email already registered")
	ErrCategoryNameTaken   = errors.New("category name already in use")
	ErrCategoryHasProducts = errors.New("category has active products")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrNoToken      = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid token")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

// ErrTokenExpired is distinguishable internally for logging but satisfies
// errors.Is(err, ErrInvalidToken), so the outward signal stays uniform
// between expired and tampered tokens.
var ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
