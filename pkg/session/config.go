package session

import "github.com/sessionkit/sessionkit/pkg/cookie"

// Config is the login cookie template shared by the Manager and the
// Controller. It is read-only after pipeline construction.
type Config struct {
	// CookieName is the name of the login cookie (default: "logged_in_user")
	CookieName string `env:"LOGIN_COOKIE_NAME" envDefault:"logged_in_user"`

	CookiePath     string `env:"LOGIN_COOKIE_PATH" envDefault:"/"`
	CookieHTTPOnly bool   `env:"LOGIN_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSecure   bool   `env:"LOGIN_COOKIE_SECURE" envDefault:"false"`
}

// DefaultConfig returns the default login cookie template.
func DefaultConfig() Config {
	return Config{
		CookieName:     "logged_in_user",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   false,
	}
}

// cookieOptions translates the template into write options for pkg/cookie.
func (c Config) cookieOptions() []cookie.Option {
	return []cookie.Option{
		cookie.WithPath(c.CookiePath),
		cookie.WithHTTPOnly(c.CookieHTTPOnly),
		cookie.WithSecure(c.CookieSecure),
	}
}
