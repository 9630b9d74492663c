package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// Session resolves the session cookie and, when it names a live session,
// stores the identity in the request context. Requests without a usable
// cookie continue anonymously; a stale cookie is cleared.
func Session(sessions ports.SessionManager, jar cookies.Jar, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := jar.SessionToken(c)
			if token == "" {
				return next(c)
			}

			req := c.Request()
			identity, err := sessions.Resolve(req.Context(), token)
			switch {
			case err == nil:
				c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), identity)))
			case errors.Is(err, domain.ErrSessionNotFound):
				jar.ClearSession(c)
			default:
				log.Warn().Err(err).Str("path", c.Path()).Msg("session lookup failed, continuing anonymously")
			}
			return next(c)
		}
	}
}
