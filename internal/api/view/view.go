// Package view renders the board's HTML pages. Handlers hand it a Page and a
// template name; it knows nothing about sessions or storage.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard/internal/core/domain"
	"github.com/jobportal/jobboard/internal/core/ports"
)

// Template names understood by Renderer.
const (
	PageIndex    = "index"
	PageRegister = "register"
	PageLogin    = "login"
	PagePostJob  = "post_job"
	PageAdmin    = "admin"
	PageError    = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the plain data passed to every template.
type Page struct {
	Title    string
	Notice   string
	Identity *domain.Identity

	Jobs     []*domain.Job
	Roles    []domain.Role
	Overview *ports.AdminOverview

	Status  int
	Message string
}

// Can reports whether the viewer holds role. Templates use it to decide which
// links and buttons to show.
func (p Page) Can(role domain.Role) bool {
	return domain.Authorize(p.Identity, role) == nil
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"roleLabel":  roleLabel,
	"usernameOf": usernameOf,
	"jobTitleOf": jobTitleOf,
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, path := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "layout" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// MustNew is New for program start-up.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout.html", data)
}

func roleLabel(r domain.Role) string {
	switch r {
	case domain.RoleJobSeeker:
		return "Job Seeker"
	case domain.RoleEmployer:
		return "Employer"
	case domain.RoleAdmin:
		return "Admin"
	default:
		return string(r)
	}
}

// usernameOf and jobTitleOf resolve application references for the admin
// page, falling back to the raw ID.
func usernameOf(o *ports.AdminOverview, id int64) string {
	for _, u := range o.Users {
		if u.ID == id {
			return u.Username
		}
	}
	return fmt.Sprintf("#%d", id)
}

func jobTitleOf(o *ports.AdminOverview, id int64) string {
	for _, j := range o.Jobs {
		if j.ID == id {
			return j.Title
		}
	}
	return fmt.Sprintf("#%d", id)
}
