package domain

import "context"

// Identity is the authenticated principal carried by a session.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id for the rest of the request.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity, or nil for
// anonymous requests.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// Authorize is the authorization gate for role-bound operations.
func Authorize(id *Identity, required Role) error {
	if id == nil || id.Username == "" {
		return ErrNotAuthenticated
	}
	if id.Role != required {
		return ErrWrongRole
	}
	return nil
}
