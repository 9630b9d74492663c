package api

import (
	"context"
	"sync"
	"time"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// In-memory stand-ins for the MongoDB and Redis adapters.

type memUsers struct {
	mu    sync.Mutex
	users []*domain.User
}

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	cp := *u
	cp.ID = int64(len(m.users) + 1)
	m.users = append(m.users, &cp)
	out := cp
	return &out, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) List(context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.User(nil), m.users...), nil
}

type memJobs struct {
	mu   sync.Mutex
	jobs []*domain.Job
}

func (m *memJobs) Create(_ context.Context, j *domain.Job) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	cp.ID = int64(len(m.jobs) + 1)
	m.jobs = append(m.jobs, &cp)
	out := cp
	return &out, nil
}

func (m *memJobs) FindByID(_ context.Context, id int64) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (m *memJobs) List(context.Context) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Job(nil), m.jobs...), nil
}

type memApps struct {
	mu   sync.Mutex
	apps []*domain.Application
}

func (m *memApps) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.ID = int64(len(m.apps) + 1)
	m.apps = append(m.apps, &cp)
	out := cp
	return &out, nil
}

func (m *memApps) List(context.Context) ([]*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Application(nil), m.apps...), nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Identity
}

func (m *memSessions) Save(_ context.Context, id string, identity domain.Identity, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions == nil {
		m.sessions = make(map[string]domain.Identity)
	}
	m.sessions[id] = identity
	return nil
}

func (m *memSessions) Load(_ context.Context, id string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &identity, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
