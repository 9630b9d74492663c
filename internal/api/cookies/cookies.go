// Package cookies owns the two browser cookies the board uses: the signed
// session token and the one-shot notice shown on the next rendered page.
package cookies

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	SessionName = "session"
	NoticeName  = "notice"
)

// Jar reads and writes the board's cookies with consistent attributes.
type Jar struct {
	// Secure marks cookies HTTPS-only.
	Secure bool
}

func (j Jar) base(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSession stores token. A zero ttl yields a browser-session cookie.
func (j Jar) SetSession(c echo.Context, token string, ttl time.Duration) {
	ck := j.base(SessionName, token)
	if ttl > 0 {
		ck.MaxAge = int(ttl / time.Second)
		ck.Expires = time.Now().Add(ttl)
	}
	c.SetCookie(ck)
}

// SessionToken returns the raw session cookie value, or "" when absent.
func (j Jar) SessionToken(c echo.Context) string {
	ck, err := c.Cookie(SessionName)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (j Jar) ClearSession(c echo.Context) {
	c.SetCookie(j.expired(SessionName))
}

// SetNotice queues msg for the next page render.
func (j Jar) SetNotice(c echo.Context, msg string) {
	c.SetCookie(j.base(NoticeName, url.QueryEscape(msg)))
}

// PopNotice returns the queued notice and clears it.
func (j Jar) PopNotice(c echo.Context) string {
	ck, err := c.Cookie(NoticeName)
	if err != nil || ck.Value == "" {
		return ""
	}
	c.SetCookie(j.expired(NoticeName))

	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

func (j Jar) expired(name string) *http.Cookie {
	ck := j.base(name, "")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	return ck
}
