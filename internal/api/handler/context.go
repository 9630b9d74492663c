package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard/internal/api/cookies"
	"github.com/jobportal/jobboard/internal/api/view"
	"github.com/jobportal/jobboard/internal/core/domain"
)

// identity returns the principal resolved by the session middleware, or nil.
func identity(c echo.Context) *domain.Identity {
	return domain.IdentityFrom(c.Request().Context())
}

// page starts the view data for a render, consuming any queued notice.
func page(c echo.Context, jar cookies.Jar, title string) view.Page {
	return view.Page{
		Title:    title,
		Notice:   jar.PopNotice(c),
		Identity: identity(c),
	}
}
