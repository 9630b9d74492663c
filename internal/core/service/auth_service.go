package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	policy domain.RegistrationPolicy
	log    zerolog.Logger

	// decoy is compared against when the username is unknown so a miss costs
	// the same as a wrong password.
	decoy string
}

// fallbackDecoy is a well-formed cost-10 bcrypt hash used when the hasher
// cannot produce a decoy of its own.
const fallbackDecoy = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, policy domain.RegistrationPolicy, log zerolog.Logger) *AuthService {
	decoy, err := hasher.Hash("decoy-password")
	if err != nil {
		log.Warn().Err(err).Msg("decoy hash failed, using fallback")
		decoy = fallbackDecoy
	}
	return &AuthService{repo: repo, hasher: hasher, policy: policy, log: log, decoy: decoy}
}

// Register creates an account whose role must be allowed by the policy.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !s.policy.Allows(role) {
		return nil, domain.ErrRoleNotAllowed
	}
	return s.create(ctx, in.Username, in.Password, role)
}

func (s *AuthService) RegisterTrusted(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in.Username, in.Password, role)
}

func (s *AuthService) create(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateUsername) {
			s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role.String()).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials. Unknown users and wrong passwords both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.decoy)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) SelectableRoles() []domain.Role {
	return s.policy.SelectableRoles()
}
