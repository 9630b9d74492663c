package ports

import (
	"context"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// RegisterInput carries the self-service registration form.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// PasswordHasher is the credential manager.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext produced hash. Malformed hashes
	// verify as false.
	Verify(plaintext, hash string) bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// RegisterTrusted skips the registration policy; only operator tooling
	// should call it.
	RegisterTrusted(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	SelectableRoles() []domain.Role
}
