package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// SessionService implements ports.SessionManager. Session state lives in the
// store; the browser only holds a signed token naming the session ID.
type SessionService struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

// NewSessionService returns a SessionService. A zero ttl keeps sessions alive
// until logout.
func NewSessionService(store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl < 0 {
		ttl = 0
	}
	return &SessionService{store: store, secret: []byte(secret), ttl: ttl, log: log, now: time.Now}
}

func (s *SessionService) TTL() time.Duration { return s.ttl }

func (s *SessionService) Start(ctx context.Context, user *domain.User, previousToken string) (string, error) {
	if previousToken != "" {
		if err := s.End(ctx, previousToken); err != nil {
			s.log.Warn().Err(err).Msg("failed to discard previous session")
		}
	}

	id := uuid.NewString()
	identity := domain.Identity{Username: user.Username, Role: user.Role}
	if err := s.store.Save(ctx, id, identity, s.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	token, err := s.sign(id, user.Username)
	if err != nil {
		_ = s.store.Delete(ctx, id)
		return "", fmt.Errorf("sign session: %w", err)
	}

	s.log.Debug().Str("username", user.Username).Msg("session started")
	return token, nil
}

// Resolve maps a token back to its identity. Any invalid, expired or revoked
// token yields domain.ErrSessionNotFound.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	identity, err := s.store.Load(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return identity, nil
}

// End deletes the session named by token. Tokens that fail to parse have no
// server state to clear, so they are ignored.
func (s *SessionService) End(ctx context.Context, token string) error {
	claims, err := s.parse(token, false)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) sign(id, username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:       id,
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SessionService) parse(token string, validate bool) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid || claims.ID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
