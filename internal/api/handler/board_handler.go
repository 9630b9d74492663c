package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/metrics"
	"github.com/jobportal/jobboard/internal/api/view"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// Notices shown by the board pages. The three gate notices double as the
// route middleware's denial messages.
const (
	NoticeEmployersOnly   = "Only employers can post jobs"
	NoticeJobSeekersOnly  = "Only job seekers can apply"
	NoticeAdminOnly       = "Admin access only"
	NoticeJobPosted       = "Job Posted Successfully"
	NoticeApplied         = "Applied Successfully"
	NoticeJobNotFound     = "Job not found"
	NoticeAlreadyApplied  = "You have already applied to this job"
	noticeJobFormRequired = "Title and description are required"
)

type BoardHandler struct {
	board ports.BoardService
	jar   cookies.Jar
	log   zerolog.Logger
}

func NewBoardHandler(board ports.BoardService, jar cookies.Jar, log zerolog.Logger) *BoardHandler {
	return &BoardHandler{board: board, jar: jar, log: log}
}

type postJobForm struct {
	Title       string `form:"title"       validate:"required,max=120"`
	Description string `form:"description" validate:"required"`
	Salary      string `form:"salary"      validate:"max=50"`
	Location    string `form:"location"    validate:"max=50"`
}

// Index lists every job.
//
// @Summary      Job listings
// @Tags         jobs
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *BoardHandler) Index(c echo.Context) error {
	jobs, err := h.board.ListJobs(c.Request().Context())
	if err != nil {
		return err
	}
	p := page(c, h.jar, "")
	p.Jobs = jobs
	return c.Render(http.StatusOK, view.PageIndex, p)
}

// ShowPostJob renders the job form. Employers only.
//
// @Summary      Job posting form
// @Tags         jobs
// @Produce      html
// @Success      200
// @Success      302  "Redirect to /login when the viewer is not an employer"
// @Router       /post_job [get]
func (h *BoardHandler) ShowPostJob(c echo.Context) error {
	return c.Render(http.StatusOK, view.PagePostJob, page(c, h.jar, "Post Job"))
}

// PostJob creates a job owned by the logged-in employer.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       x-www-form-urlencoded
// @Param        title        formData  string  true   "Job title"
// @Param        description  formData  string  true   "Job description"
// @Param        salary       formData  string  false  "Salary"
// @Param        location     formData  string  false  "Location"
// @Success      302  "Redirect to / on success"
// @Router       /post_job [post]
func (h *BoardHandler) PostJob(c echo.Context) error {
	var form postJobForm
	if err := c.Bind(&form); err != nil {
		return h.redirectWith(c, "/post_job", noticeJobFormRequired)
	}
	if err := c.Validate(&form); err != nil {
		return h.redirectWith(c, "/post_job", err.Error())
	}

	job, err := h.board.PostJob(c.Request().Context(), identity(c), ports.PostJobInput{
		Title:       form.Title,
		Description: form.Description,
		Salary:      form.Salary,
		Location:    form.Location,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnauthorized):
		return h.redirectWith(c, "/login", NoticeEmployersOnly)
	case errors.Is(err, domain.ErrInvalidInput):
		return h.redirectWith(c, "/post_job", noticeJobFormRequired)
	default:
		return err
	}

	metrics.JobsPostedTotal.Inc()
	h.log.Debug().Int64("job_id", job.ID).Str("posted_by", job.PostedBy).Msg("job posted")
	return h.redirectWith(c, "/", NoticeJobPosted)
}

// Apply records an application by the logged-in job seeker.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Param        jobId  path  int  true  "Job ID"
// @Success      302  "Redirect to / with the outcome as a notice"
// @Failure      404
// @Router       /apply/{jobId} [get]
func (h *BoardHandler) Apply(c echo.Context) error {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || jobID <= 0 {
		return echo.ErrNotFound
	}

	app, err := h.board.Apply(c.Request().Context(), identity(c), jobID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnauthorized):
		return h.redirectWith(c, "/login", NoticeJobSeekersOnly)
	case errors.Is(err, domain.ErrJobNotFound):
		metrics.ApplicationsTotal.WithLabelValues("job_not_found").Inc()
		return h.redirectWith(c, "/", NoticeJobNotFound)
	case errors.Is(err, domain.ErrDuplicateApplication):
		metrics.ApplicationsTotal.WithLabelValues("duplicate").Inc()
		return h.redirectWith(c, "/", NoticeAlreadyApplied)
	default:
		metrics.ApplicationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	metrics.ApplicationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.log.Debug().Int64("application_id", app.ID).Int64("job_id", app.JobID).Msg("application recorded")
	return h.redirectWith(c, "/", NoticeApplied)
}

// Admin shows every user, job and application.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      html
// @Success      200
// @Success      302  "Redirect to /login when the viewer is not an admin"
// @Router       /admin [get]
func (h *BoardHandler) Admin(c echo.Context) error {
	overview, err := h.board.AdminOverview(c.Request().Context(), identity(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return h.redirectWith(c, "/login", NoticeAdminOnly)
		}
		return err
	}
	p := page(c, h.jar, "Admin Panel")
	p.Overview = overview
	return c.Render(http.StatusOK, view.PageAdmin, p)
}

func (h *BoardHandler) redirectWith(c echo.Context, to, notice string) error {
	h.jar.SetNotice(c, notice)
	return c.Redirect(http.StatusFound, to)
}
