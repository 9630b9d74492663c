package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/view"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// captureRenderer records the last render instead of producing HTML.
type captureRenderer struct {
	name string
	page view.Page
}

func (r *captureRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	_, err := io.WriteString(w, name)
	return err
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, error)
	roles      []domain.Role
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) RegisterTrusted(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) SelectableRoles() []domain.Role { return s.roles }

type stubSessions struct {
	started  []string
	previous []string
	ended    []string
	startErr error
}

func (s *stubSessions) Start(_ context.Context, user *domain.User, previousToken string) (string, error) {
	if s.startErr != nil {
		return "", s.startErr
	}
	s.started = append(s.started, user.Username)
	s.previous = append(s.previous, previousToken)
	return "token-" + user.Username, nil
}

func (s *stubSessions) Resolve(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) End(_ context.Context, token string) error {
	s.ended = append(s.ended, token)
	return nil
}

func (s *stubSessions) TTL() time.Duration { return time.Hour }

type stubBoardService struct {
	jobs      []*domain.Job
	postFn    func(who *domain.Identity, in ports.PostJobInput) (*domain.Job, error)
	applyFn   func(who *domain.Identity, jobID int64) (*domain.Application, error)
	overview  *ports.AdminOverview
	listErr   error
	lastApply int64
}

func (s *stubBoardService) ListJobs(context.Context) ([]*domain.Job, error) {
	return s.jobs, s.listErr
}

func (s *stubBoardService) PostJob(_ context.Context, who *domain.Identity, in ports.PostJobInput) (*domain.Job, error) {
	return s.postFn(who, in)
}

func (s *stubBoardService) Apply(_ context.Context, who *domain.Identity, jobID int64) (*domain.Application, error) {
	s.lastApply = jobID
	return s.applyFn(who, jobID)
}

func (s *stubBoardService) AdminOverview(_ context.Context, who *domain.Identity) (*ports.AdminOverview, error) {
	if err := domain.Authorize(who, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.overview, nil
}

func newEcho(r echo.Renderer) *echo.Echo {
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func asUser(req *http.Request, id *domain.Identity) *http.Request {
	return req.WithContext(domain.WithIdentity(req.Context(), id))
}

// noticeOf returns the decoded notice set on the response, or "".
func noticeOf(e *echo.Echo, rec *httptest.ResponseRecorder) string {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != cookies.NoticeName {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		return cookies.Jar{}.PopNotice(e.NewContext(req, httptest.NewRecorder()))
	}
	return ""
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}
