package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/metrics"
	"github.com/jobportal/jobboard/internal/core/domain"
)

// LoginPath is where denied requests are sent.
const LoginPath = "/login"

// RequireRole runs the authorization gate for a route. Denied requests are
// redirected to the login page carrying notice.
func RequireRole(role domain.Role, notice string, jar cookies.Jar, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := domain.Authorize(domain.IdentityFrom(c.Request().Context()), role)
			if err == nil {
				return next(c)
			}

			reason := "wrong_role"
			if errors.Is(err, domain.ErrNotAuthenticated) {
				reason = "not_authenticated"
			}
			metrics.AuthorizationDenialsTotal.WithLabelValues(reason, role.String()).Inc()
			log.Debug().
				Str("path", c.Path()).
				Str("required_role", role.String()).
				Str("reason", reason).
				Msg("authorization denied")

			jar.SetNotice(c, notice)
			return c.Redirect(http.StatusFound, LoginPath)
		}
	}
}
