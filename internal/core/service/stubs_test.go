package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	byName    map[string]*domain.User
	order     []*domain.User
	nextID    int64
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.byName[stored.Username] = stored
	r.order = append(r.order, stored)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, len(r.order))
	for i, u := range r.order {
		out[i] = cloneUser(u)
	}
	return out, nil
}

type stubJobRepo struct {
	jobs      []*domain.Job
	createErr error
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *job
	clone.ID = int64(len(r.jobs) + 1)
	r.jobs = append(r.jobs, &clone)
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id int64) (*domain.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id {
			clone := *j
			return &clone, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) List(_ context.Context) ([]*domain.Job, error) {
	out := make([]*domain.Job, len(r.jobs))
	copy(out, r.jobs)
	return out, nil
}

type stubAppRepo struct {
	apps   []*domain.Application
	unique bool
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	if r.unique {
		for _, a := range r.apps {
			if a.JobID == app.JobID && a.UserID == app.UserID {
				return nil, domain.ErrDuplicateApplication
			}
		}
	}
	clone := *app
	clone.ID = int64(len(r.apps) + 1)
	r.apps = append(r.apps, &clone)
	out := clone
	return &out, nil
}

func (r *stubAppRepo) List(_ context.Context) ([]*domain.Application, error) {
	out := make([]*domain.Application, len(r.apps))
	copy(out, r.apps)
	return out, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Identity
	ttls     map[string]time.Duration
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: make(map[string]domain.Identity),
		ttls:     make(map[string]time.Duration),
	}
}

func (s *stubSessionStore) Save(_ context.Context, id string, identity domain.Identity, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[id] = identity
	s.ttls[id] = ttl
	return nil
}

func (s *stubSessionStore) Load(_ context.Context, id string) (*domain.Identity, error) {
	identity, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &identity, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	delete(s.ttls, id)
	return nil
}
