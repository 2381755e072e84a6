package sessionapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/session"
)

// Service exposes the session lifecycle over HTTP. Handlers stay thin: they
// only touch the session Controller and Store.
type Service struct {
	store      session.Store
	controller *session.Controller
	log        *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger used by the handlers.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the session HTTP service.
func New(store session.Store, controller *session.Controller, opts ...Option) *Service {
	s := &Service{
		store:      store,
		controller: controller,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the session routes as a mountable handler. The mount prefix
// is owned by the caller's router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/session", s.getSession)
	r.Post("/session", s.postSession)
	r.Delete("/session", s.deleteSession)

	return r
}

// getSession reports the caller's current session, resolved earlier by the
// controller middleware.
func (s *Service) getSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if sess == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, sess)
}

// postSession performs a login: credentials in, session JSON plus a signed
// login cookie out.
func (s *Service) postSession(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.internalError(w, r, err)
		return
	}

	sess, err := s.store.Authenticate(r.Context(), creds)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			// Identical response for unknown user and wrong password.
			http.Error(w, "invalid username or password", http.StatusForbidden)
			return
		}
		s.internalError(w, r, err)
		return
	}

	if err := s.controller.SetLoginCookie(w, r, sess); err != nil {
		s.internalError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "login succeeded",
		logger.UserID(sess.UserID),
		logger.Component("sessionapi"),
	)

	s.writeJSON(w, r, http.StatusOK, sess)
}

// deleteSession performs a logout. It answers 200 whether or not a session
// existed, and re-issues the login cookie with an empty value so the client
// drops it.
func (s *Service) deleteSession(w http.ResponseWriter, r *http.Request) {
	cleared, err := s.controller.ClearSession(r.Context(), r)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	if err := s.controller.SetLoginCookie(w, r, nil); err != nil {
		s.internalError(w, r, err)
		return
	}

	s.log.DebugContext(r.Context(), "logout",
		slog.Bool("session_cleared", cleared),
		logger.Component("sessionapi"),
	)

	w.WriteHeader(http.StatusOK)
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already on the wire; all we can do is record it.
		s.log.ErrorContext(r.Context(), "failed to encode response",
			logger.Error(err),
			logger.Component("sessionapi"),
		)
	}
}

// internalError answers with a generic 500; error detail goes to the log,
// never to the client.
func (s *Service) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		logger.Error(err),
		logger.Component("sessionapi"),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
