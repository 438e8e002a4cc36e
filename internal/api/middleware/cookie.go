package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultCookieName = "AccessToken"

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name     string
	MaxAge   time.Duration
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
}

func (cfg CookieConfig) name() string {
	if cfg.Name == "" {
		return defaultCookieName
	}
	return cfg.Name
}

func (cfg CookieConfig) path() string {
	if cfg.Path == "" {
		return "/"
	}
	return cfg.Path
}

// SessionToken reads the session cookie. Missing and empty cookies both
// yield "".
func SessionToken(c echo.Context, cfg CookieConfig) string {
	ck, err := c.Cookie(cfg.name())
	if err != nil {
		return ""
	}
	return ck.Value
}

// SetSessionCookie stores token in the session cookie.
func SetSessionCookie(c echo.Context, cfg CookieConfig, token string) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.name(),
		Value:    token,
		Path:     cfg.path(),
		Domain:   cfg.Domain,
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Expires:  time.Now().Add(cfg.MaxAge),
		Secure:   cfg.Secure,
		HttpOnly: cfg.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie (Max-Age=0 on the wire).
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.name(),
		Value:    "",
		Path:     cfg.path(),
		Domain:   cfg.Domain,
		MaxAge:   -1,
		Secure:   cfg.Secure,
		HttpOnly: cfg.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	})
}
