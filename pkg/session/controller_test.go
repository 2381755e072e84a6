package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/session"
)

type pipeline struct {
	store      *session.MemoryStore
	controller *session.Controller
	manager    *session.Manager
}

func newPipeline(t *testing.T) pipeline {
	t.Helper()

	store := seedStore(t)
	manager, err := session.NewManager([]string{testSigningKey})
	require.NoError(t, err)

	return pipeline{
		store:      store,
		controller: session.NewController(store),
		manager:    manager,
	}
}

// serve runs fn inside Manager.Wrap so the login environment is installed,
// mirroring the real pipeline order.
func (p pipeline) serve(fn http.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	p.manager.Wrap(fn).ServeHTTP(w, r)
	return w
}

// login authenticates the seeded admin user and returns the session plus the
// signed cookie a client would hold.
func (p pipeline) login(t *testing.T) (*session.Session, *http.Cookie) {
	t.Helper()

	sess, err := p.store.Authenticate(context.Background(), session.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	var loginCookie *http.Cookie
	w := p.serve(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, p.controller.SetLoginCookie(w, r, sess))
	})
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	loginCookie = cookies[0]

	return sess, loginCookie
}

func TestController_LoadSessionID(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("no cookie means empty id", func(t *testing.T) {
		t.Parallel()

		p.serve(func(w http.ResponseWriter, r *http.Request) {
			id, err := p.controller.LoadSessionID(r)
			assert.NoError(t, err)
			assert.Empty(t, id)
		})
	})

	t.Run("tampered cookie means empty id", func(t *testing.T) {
		t.Parallel()

		_, loginCookie := p.login(t)
		tampered := &http.Cookie{Name: loginCookie.Name, Value: strings.Replace(loginCookie.Value, ".", ".x", 1)}

		p.serve(func(w http.ResponseWriter, r *http.Request) {
			id, err := p.controller.LoadSessionID(r)
			assert.NoError(t, err)
			assert.Empty(t, id)
		}, tampered)
	})

	t.Run("valid cookie yields the session id", func(t *testing.T) {
		t.Parallel()

		sess, loginCookie := p.login(t)
		p.serve(func(w http.ResponseWriter, r *http.Request) {
			id, err := p.controller.LoadSessionID(r)
			assert.NoError(t, err)
			assert.Equal(t, sess.ID, id)
		}, loginCookie)
	})
}

func TestController_LoadSession(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("anonymous without cookie", func(t *testing.T) {
		t.Parallel()

		p.serve(func(w http.ResponseWriter, r *http.Request) {
			login, err := p.controller.LoadSession(r.Context(), r)
			assert.NoError(t, err)
			assert.Nil(t, login.Session)
			assert.Equal(t, "logged_in_user", login.Config.CookieName)
		})
	})

	t.Run("anonymous when session left the store", func(t *testing.T) {
		t.Parallel()

		sess, loginCookie := p.login(t)
		_, err := p.store.Remove(context.Background(), sess.ID)
		require.NoError(t, err)

		p.serve(func(w http.ResponseWriter, r *http.Request) {
			login, err := p.controller.LoadSession(r.Context(), r)
			assert.NoError(t, err)
			assert.Nil(t, login.Session)
		}, loginCookie)
	})

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()

		sess, loginCookie := p.login(t)
		p.serve(func(w http.ResponseWriter, r *http.Request) {
			login, err := p.controller.LoadSession(r.Context(), r)
			assert.NoError(t, err)
			require.NotNil(t, login.Session)
			assert.Equal(t, *sess, *login.Session)
		}, loginCookie)
	})

	t.Run("missing environment", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := p.controller.LoadSession(r.Context(), r)
		assert.ErrorIs(t, err, session.ErrNoSessionLoaded)
	})
}

func TestController_ClearSession(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("nothing to clear", func(t *testing.T) {
		t.Parallel()

		p.serve(func(w http.ResponseWriter, r *http.Request) {
			cleared, err := p.controller.ClearSession(r.Context(), r)
			assert.NoError(t, err)
			assert.False(t, cleared)
		})
	})

	t.Run("clears the stored session", func(t *testing.T) {
		t.Parallel()

		sess, loginCookie := p.login(t)
		p.serve(func(w http.ResponseWriter, r *http.Request) {
			cleared, err := p.controller.ClearSession(r.Context(), r)
			assert.NoError(t, err)
			assert.True(t, cleared)
		}, loginCookie)

		found, err := p.store.Lookup(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestController_Middleware(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("injects nil session for anonymous requests", func(t *testing.T) {
		t.Parallel()

		var got *session.Session
		var ok bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = session.FromContext(r.Context())
		})

		w := httptest.NewRecorder()
		p.manager.Wrap(p.controller.Middleware(inner)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ok, "middleware must always inject")
		assert.Nil(t, got)
	})

	t.Run("injects the resolved session", func(t *testing.T) {
		t.Parallel()

		sess, loginCookie := p.login(t)

		var got *session.Session
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = session.FromContext(r.Context())
			assert.True(t, session.IsAuthenticated(r.Context()))
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(loginCookie)
		w := httptest.NewRecorder()
		p.manager.Wrap(p.controller.Middleware(inner)).ServeHTTP(w, r)

		require.NotNil(t, got)
		assert.Equal(t, sess.ID, got.ID)
	})

	t.Run("missing environment fails with a generic 500", func(t *testing.T) {
		t.Parallel()

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run on misconfiguration")
		})

		w := httptest.NewRecorder()
		// No Manager.Wrap here: the pipeline is miswired on purpose.
		p.controller.Middleware(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error\n", w.Body.String())
	})
}

func TestController_SetLoginCookie(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	t.Run("nil session clears the cookie value", func(t *testing.T) {
		t.Parallel()

		w := p.serve(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, p.controller.SetLoginCookie(w, r, nil))
		})

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "logged_in_user", cookies[0].Name)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)

		// An empty value still carries a valid signature.
		p.serve(func(w http.ResponseWriter, r *http.Request) {
			id, err := p.controller.LoadSessionID(r)
			assert.NoError(t, err)
			assert.Empty(t, id)
		}, cookies[0])
	})

	t.Run("missing environment", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		err := p.controller.SetLoginCookie(w, r, nil)
		assert.ErrorIs(t, err, session.ErrNoSessionLoaded)
	})
}
