package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/metrics"
	"github.com/jobportal/jobboard/internal/api/view"
	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// Notices shown by the account pages.
const (
	NoticeRegistered         = "Registration successful. Please login."
	NoticeUsernameTaken      = "Username already exists"
	NoticeInvalidRole        = "Please choose a valid role"
	NoticeRoleNotAllowed     = "That role cannot be chosen at sign-up"
	NoticeInvalidCredentials = "Invalid Credentials"
	NoticeInvalidAccount     = "Username and password (at most 72 bytes) are required"
)

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionManager
	jar      cookies.Jar
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager, jar cookies.Jar, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, jar: jar, log: log}
}

type registerForm struct {
	Username string `form:"username" validate:"required,max=80"`
	Password string `form:"password" validate:"required,max=72"`
	Role     string `form:"role"     validate:"required"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// ShowRegister renders the sign-up form with the roles open to self-service.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	p := page(c, h.jar, "Register")
	p.Roles = h.auth.SelectableRoles()
	return c.Render(http.StatusOK, view.PageRegister, p)
}

// Register creates an account and sends the visitor to the login page.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Param        role      formData  string  true  "jobseeker, employer or admin"
// @Success      302  "Redirect to /login on success, /register on failure"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.registerFailed(c, "invalid", "rejected", "Invalid registration form")
	}
	if err := c.Validate(&form); err != nil {
		return h.registerFailed(c, "invalid", "rejected", err.Error())
	}

	roleLabel := "invalid"
	if role, err := domain.ParseRole(form.Role); err == nil {
		roleLabel = role.String()
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateUsername):
		return h.registerFailed(c, roleLabel, "duplicate", NoticeUsernameTaken)
	case errors.Is(err, domain.ErrInvalidRole):
		return h.registerFailed(c, roleLabel, "rejected", NoticeInvalidRole)
	case errors.Is(err, domain.ErrRoleNotAllowed):
		return h.registerFailed(c, roleLabel, "rejected", NoticeRoleNotAllowed)
	case errors.Is(err, domain.ErrInvalidInput):
		return h.registerFailed(c, roleLabel, "rejected", NoticeInvalidAccount)
	default:
		metrics.RegistrationsTotal.WithLabelValues(roleLabel, metrics.ResultFailure).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role.String(), metrics.ResultSuccess).Inc()
	h.jar.SetNotice(c, NoticeRegistered)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) registerFailed(c echo.Context, role, result, notice string) error {
	metrics.RegistrationsTotal.WithLabelValues(role, result).Inc()
	h.jar.SetNotice(c, notice)
	return c.Redirect(http.StatusFound, "/register")
}

// ShowLogin renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, page(c, h.jar, "Login"))
}

// Login verifies credentials and opens a session, replacing any session the
// browser already holds.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302  "Redirect to / on success, /login on failure"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	_ = c.Bind(&form)

	ctx := c.Request().Context()
	user, err := h.auth.Login(ctx, form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return err
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		h.jar.SetNotice(c, NoticeInvalidCredentials)
		return c.Redirect(http.StatusFound, "/login")
	}

	token, err := h.sessions.Start(ctx, user, h.jar.SessionToken(c))
	if err != nil {
		return err
	}
	h.jar.SetSession(c, token, h.sessions.TTL())
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	h.log.Info().Str("username", user.Username).Str("role", user.Role.String()).Msg("user logged in")
	return c.Redirect(http.StatusFound, "/")
}

// Logout ends the session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      302  "Redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.jar.SessionToken(c); token != "" {
		if err := h.sessions.End(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("failed to end session")
		}
	}
	h.jar.ClearSession(c)
	return c.Redirect(http.StatusFound, "/")
}
