package session

import (
	"context"

	"github.com/sessionkit/sessionkit/pkg/cookie"
)

// loginEnv is the shared state fanned out to all request-pipeline components
// by Manager.Wrap: the cookie template plus the signing-capable cookie
// manager. Handlers never see the signing keys themselves.
type loginEnv struct {
	config  Config
	cookies *cookie.Manager
}

type loginEnvContextKey struct{}

func withLoginEnv(ctx context.Context, env loginEnv) context.Context {
	return context.WithValue(ctx, loginEnvContextKey{}, env)
}

func loginEnvFromContext(ctx context.Context) (loginEnv, bool) {
	env, ok := ctx.Value(loginEnvContextKey{}).(loginEnv)
	return env, ok
}

type sessionContextKey struct{}

// WithSession attaches the resolved session to the context. The Controller's
// middleware is the only writer; the value is fixed for the remainder of the
// request.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext returns the session resolved for this request. ok reports
// whether the middleware ran at all; sess is nil for anonymous requests.
func FromContext(ctx context.Context) (sess *Session, ok bool) {
	sess, ok = ctx.Value(sessionContextKey{}).(*Session)
	return sess, ok
}

// IsAuthenticated reports whether the context carries an authenticated
// session.
func IsAuthenticated(ctx context.Context) bool {
	sess, ok := FromContext(ctx)
	return ok && sess != nil && sess.Authenticated
}
