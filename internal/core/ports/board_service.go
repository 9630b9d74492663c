package ports

import (
	"context"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// PostJobInput carries the job posting form.
type PostJobInput struct {
	Title       string
	Description string
	Salary      string
	Location    string
}

// AdminOverview is the aggregate listing shown to admins.
type AdminOverview struct {
	Users        []*domain.User
	Jobs         []*domain.Job
	Applications []*domain.Application
}

// BoardService defines the job board use cases. Every role-bound method
// runs the authorization gate against who before touching the store.
type BoardService interface {
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	PostJob(ctx context.Context, who *domain.Identity, in PostJobInput) (*domain.Job, error)
	Apply(ctx context.Context, who *domain.Identity, jobID int64) (*domain.Application, error)
	AdminOverview(ctx context.Context, who *domain.Identity) (*AdminOverview, error)
}
