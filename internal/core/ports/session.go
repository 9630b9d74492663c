package ports

import (
	"context"
	"time"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// SessionStore keeps server-side session state keyed by session ID.
type SessionStore interface {
	// Save stores identity under id. A zero ttl means no expiry.
	Save(ctx context.Context, id string, identity domain.Identity, ttl time.Duration) error
	// Load returns domain.ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

// SessionManager issues and resolves the opaque tokens handed to browsers.
type SessionManager interface {
	// Start opens a session for user and discards the one named by
	// previousToken, if any.
	Start(ctx context.Context, user *domain.User, previousToken string) (string, error)
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
	End(ctx context.Context, token string) error
	TTL() time.Duration
}
