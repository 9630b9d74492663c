package ports

import (
	"context"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// JobRepository defines persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// FindByID returns domain.ErrJobNotFound when no job matches.
	FindByID(ctx context.Context, id int64) (*domain.Job, error)
	// List returns all jobs in insertion order.
	List(ctx context.Context) ([]*domain.Job, error)
}

// ApplicationRepository defines persistence for job applications.
type ApplicationRepository interface {
	// Create returns domain.ErrDuplicateApplication only when the store
	// enforces one application per (job, user).
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
}
