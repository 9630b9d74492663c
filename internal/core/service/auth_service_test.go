package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

func newAuthSvc(repo *stubUserRepo, roles ...domain.Role) *AuthService {
	if len(roles) == 0 {
		roles = domain.Roles
	}
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), domain.NewRegistrationPolicy(roles...), discardLogger)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw1", Role: "employer"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected store-issued id")
	}
	if user.Role != domain.RoleEmployer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "a", Role: "jobseeker"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "b", Role: "employer"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	users, _ := repo.List(context.Background())
	count := 0
	for _, u := range users {
		if u.Username == "bob" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one bob, got %d", count)
	}
	if users[0].Role != domain.RoleJobSeeker {
		t.Fatalf("first registration must be kept, got role %s", users[0].Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	cases := []struct {
		name string
		in   ports.RegisterInput
		want error
	}{
		{"empty username", ports.RegisterInput{Username: "  ", Password: "pw", Role: "jobseeker"}, domain.ErrInvalidInput},
		{"empty password", ports.RegisterInput{Username: "carol", Role: "jobseeker"}, domain.ErrInvalidInput},
		{"unknown role", ports.RegisterInput{Username: "carol", Password: "pw", Role: "owner"}, domain.ErrInvalidRole},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAuthService_Register_PolicyRejectsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, domain.RoleJobSeeker, domain.RoleEmployer)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "mallory", Password: "pw", Role: "admin"})
	if !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
	if len(repo.order) != 0 {
		t.Fatalf("no user should be stored")
	}
}

func TestAuthService_RegisterTrusted_BypassesPolicy(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, domain.RoleJobSeeker)

	user, err := svc.RegisterTrusted(context.Background(), ports.RegisterInput{Username: "root", Password: "pw", Role: "admin"})
	if err != nil {
		t.Fatalf("trusted register failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", user.Role)
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("mongo unavailable")
	svc := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "dan", Password: "pw", Role: "jobseeker"}); err == nil {
		t.Fatalf("expected error when repo fails")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret", Role: "admin"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "carol" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Password: "goodpass", Role: "jobseeker"})
	for _, pw := range []string{"badpass", "goodpass ", "GOODPASS", ""} {
		if _, err := svc.Login(context.Background(), "dave", pw); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("password %q: expected ErrInvalidCredentials, got %v", pw, err)
		}
	}
}

func TestAuthService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SelectableRoles(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), domain.RoleEmployer)

	roles := svc.SelectableRoles()
	if len(roles) != 1 || roles[0] != domain.RoleEmployer {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestAuthService_Register_ConcurrentSameUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	const workers = 16
	var wg sync.WaitGroup
	var ok, dup atomic.Int32
	unexpected := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "pw", Role: "jobseeker"})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrDuplicateUsername):
				dup.Add(1)
			default:
				unexpected <- err
			}
		}()
	}
	wg.Wait()
	close(unexpected)

	for err := range unexpected {
		t.Errorf("unexpected error: %v", err)
	}
	if ok.Load() != 1 {
		t.Fatalf("expected exactly one success, got %d", ok.Load())
	}
	if dup.Load() != workers-1 {
		t.Fatalf("expected %d duplicates, got %d", workers-1, dup.Load())
	}
	users, _ := repo.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(users))
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Password: strings.Repeat("x", 73), Role: "jobseeker"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if users, _ := repo.List(context.Background()); len(users) != 0 {
		t.Fatalf("expected no stored user, got %d", len(users))
	}
}

// failingHasher cannot hash and records what Verify was asked to compare.
type failingHasher struct {
	verified []string
}

func (h *failingHasher) Hash(string) (string, error) { return "", errors.New("hasher unavailable") }

func (h *failingHasher) Verify(_, hash string) bool {
	h.verified = append(h.verified, hash)
	return false
}

func TestNewAuthService_DecoyFallback(t *testing.T) {
	hasher := &failingHasher{}
	svc := NewAuthService(newStubUserRepo(), hasher, domain.NewRegistrationPolicy(domain.Roles...), discardLogger)

	if svc.decoy != fallbackDecoy {
		t.Fatalf("expected fallback decoy, got %q", svc.decoy)
	}
	if cost, err := bcrypt.Cost([]byte(fallbackDecoy)); err != nil || cost != 10 {
		t.Fatalf("fallback decoy must be a cost-10 bcrypt hash, got %d %v", cost, err)
	}

	_, err := svc.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(hasher.verified) != 1 || hasher.verified[0] != fallbackDecoy {
		t.Fatalf("expected unknown user to verify against fallback decoy, got %v", hasher.verified)
	}
}
