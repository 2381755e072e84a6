package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/sessionkit/sessionkit/pkg/logger"
)

// Login is the result of resolving a request's authentication state: the
// session, if any, plus the cookie template needed to build outbound cookies.
type Login struct {
	Session *Session
	Config  Config
}

// Controller is the only component translating between the cookie on the wire
// and the Session in the store, and the only writer of the per-request
// session context.
type Controller struct {
	store Store
	log   *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used by the controller middleware.
func WithLogger(log *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates a session controller over the given store.
func NewController(store Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadSessionID extracts the configured login cookie and returns the verified
// session id it carries. A missing, empty, or tampered cookie yields an empty
// id with no error; ErrNoSessionLoaded is returned only when the login
// environment itself is unavailable.
func (c *Controller) LoadSessionID(r *http.Request) (string, error) {
	env, ok := loginEnvFromContext(r.Context())
	if !ok {
		return "", ErrNoSessionLoaded
	}

	// Signature verification happens inside GetSigned; an invalid signature
	// is equivalent to no cookie at all.
	id, err := env.cookies.GetSigned(r, env.config.CookieName)
	if err != nil {
		return "", nil
	}
	return id, nil
}

// LoadSession combines LoadSessionID with a store lookup. A request without a
// cookie and a cookie naming a session no longer in the store both resolve to
// a nil session; downstream code cannot tell them apart.
func (c *Controller) LoadSession(ctx context.Context, r *http.Request) (Login, error) {
	env, ok := loginEnvFromContext(r.Context())
	if !ok {
		return Login{}, ErrNoSessionLoaded
	}

	login := Login{Config: env.config}

	id, err := c.LoadSessionID(r)
	if err != nil {
		return login, err
	}
	if id == "" {
		return login, nil
	}

	sess, err := c.store.Lookup(ctx, id)
	if err != nil {
		return login, err
	}

	login.Session = sess
	return login, nil
}

// ClearSession removes the request's current session from the store. It
// reports false, with no error, when there was nothing to clear.
func (c *Controller) ClearSession(ctx context.Context, r *http.Request) (bool, error) {
	id, err := c.LoadSessionID(r)
	if err != nil {
		return false, err
	}
	if id == "" {
		return false, nil
	}

	return c.store.Remove(ctx, id)
}

// Middleware resolves the session once, before routing, and injects it into
// the request context. Normal absence (no cookie, stale cookie) proceeds with
// a nil session; a missing login environment is a misconfiguration and fails
// the request with a generic 500.
func (c *Controller) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, err := c.LoadSession(r.Context(), r)
		if err != nil {
			c.log.ErrorContext(r.Context(), "failed to resolve session",
				logger.Error(err),
				logger.Component("session"),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), login.Session)))
	})
}

// SetLoginCookie writes the outbound login cookie, signed with the process
// keys: the session's id when sess is non-nil, an empty value otherwise.
// Re-issuing with an empty value is how a client-side cookie is cleared.
func (c *Controller) SetLoginCookie(w http.ResponseWriter, r *http.Request, sess *Session) error {
	env, ok := loginEnvFromContext(r.Context())
	if !ok {
		return ErrNoSessionLoaded
	}

	var value string
	if sess != nil {
		value = sess.ID
	}

	env.cookies.SetSigned(w, env.config.CookieName, value, env.config.cookieOptions()...)
	return nil
}
