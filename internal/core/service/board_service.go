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

// BoardService implements ports.BoardService.
type BoardService struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	apps  ports.ApplicationRepository
	log   zerolog.Logger
}

func NewBoardService(users ports.UserRepository, jobs ports.JobRepository, apps ports.ApplicationRepository, log zerolog.Logger) *BoardService {
	return &BoardService{users: users, jobs: jobs, apps: apps, log: log}
}

func (s *BoardService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// PostJob creates a job owned by the calling employer.
func (s *BoardService) PostJob(ctx context.Context, who *domain.Identity, in ports.PostJobInput) (*domain.Job, error) {
	if err := domain.Authorize(who, domain.RoleEmployer); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, domain.ErrInvalidInput
	}

	poster, err := s.resolveUser(ctx, who)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.Create(ctx, &domain.Job{
		Title:       title,
		Description: description,
		Salary:      strings.TrimSpace(in.Salary),
		Location:    strings.TrimSpace(in.Location),
		PostedBy:    poster.Username,
		PostedByID:  poster.ID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("username", poster.Username).Msg("failed to create job")
		return nil, fmt.Errorf("post job: %w", err)
	}

	s.log.Info().Int64("job_id", job.ID).Str("posted_by", job.PostedBy).Msg("job posted")
	return job, nil
}

// Apply records an application from the calling job seeker. The job must
// exist.
func (s *BoardService) Apply(ctx context.Context, who *domain.Identity, jobID int64) (*domain.Application, error) {
	if err := domain.Authorize(who, domain.RoleJobSeeker); err != nil {
		return nil, err
	}

	applicant, err := s.resolveUser(ctx, who)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("apply: find job: %w", err)
	}

	app, err := s.apps.Create(ctx, &domain.Application{
		JobID:     job.ID,
		UserID:    applicant.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, err
		}
		s.log.Error().Err(err).Int64("job_id", job.ID).Int64("user_id", applicant.ID).Msg("failed to create application")
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.log.Info().Int64("application_id", app.ID).Int64("job_id", app.JobID).Int64("user_id", app.UserID).Msg("application created")
	return app, nil
}

func (s *BoardService) AdminOverview(ctx context.Context, who *domain.Identity) (*ports.AdminOverview, error) {
	if err := domain.Authorize(who, domain.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin overview: users: %w", err)
	}
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin overview: jobs: %w", err)
	}
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin overview: applications: %w", err)
	}

	return &ports.AdminOverview{Users: users, Jobs: jobs, Applications: apps}, nil
}

// resolveUser loads the account behind a session. A session whose account no
// longer exists surfaces as domain.ErrUserNotFound.
func (s *BoardService) resolveUser(ctx context.Context, who *domain.Identity) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, who.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}
