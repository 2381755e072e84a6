package session

import (
	"net/http"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// Manager owns the process-wide cookie signing keys and the login cookie
// template. Wrapping a handler with it guarantees that every later component
// sees the same verified-cookie capability and the same Config.
//
// The Manager holds no session state itself.
type Manager struct {
	config  Config
	cookies *cookie.Manager
}

// NewManager creates a login manager from the given signing keys. The first
// key signs outbound cookies; all keys are accepted during verification so
// keys can be rotated. Changing every key invalidates all previously issued
// cookies.
func NewManager(signingKeys []string, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}

	cookies, err := cookie.New(signingKeys, m.config.cookieOptions()...)
	if err != nil {
		return nil, err
	}
	m.cookies = cookies

	return m, nil
}

// Config returns the login cookie template.
func (m *Manager) Config() Config {
	return m.config
}

// Wrap installs the login environment on every request passing through it.
// It must run before Controller.Middleware and before any handler that sets
// or clears login cookies.
func (m *Manager) Wrap(next http.Handler) http.Handler {
	env := loginEnv{config: m.config, cookies: m.cookies}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(withLoginEnv(r.Context(), env)))
	})
}
