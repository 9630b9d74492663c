package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = fmt.Errorf("%w: unknown role", ErrInvalidInput)
	ErrRoleNotAllowed     = errors.New("role not available for self registration")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")

	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrJobNotFound  = fmt.Errorf("job %w", ErrNotFound)

	ErrDuplicateApplication = errors.New("application already exists")

	// ErrUnauthorized is the common parent of every gate denial.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	ErrWrongRole        = fmt.Errorf("%w: wrong role", ErrUnauthorized)
)
