package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sessionkit/sessionkit/modules/sessionapi"
	"github.com/sessionkit/sessionkit/pkg/config"
	"github.com/sessionkit/sessionkit/pkg/httpserver"
	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/session"
)

type appConfig struct {
	Addr        string `env:"SERVER_ADDR" envDefault:":8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// SigningKeys signs login cookies; newest key first. Rotating in a new
	// key keeps cookies signed with older keys valid.
	SigningKeys []string `env:"SESSION_SIGNING_KEYS,required" envSeparator:","`

	// SeedUsername/SeedPassword create a demo account at startup. Empty
	// username disables seeding.
	SeedUsername string `env:"SEED_USERNAME" envDefault:"admin"`
	SeedPassword string `env:"SEED_PASSWORD" envDefault:"admin"`

	// SessionTTL of zero keeps sessions alive until explicit logout.
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"0"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"0"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	var loginCfg session.Config
	config.MustLoad(&loginCfg)

	log := newLogger(cfg.Environment)
	logger.SetAsDefault(log)

	users := session.NewInMemoryUserRepo()
	if cfg.SeedUsername != "" {
		user, err := session.NewUser("1", cfg.SeedUsername, cfg.SeedPassword)
		if err != nil {
			log.Error("failed to seed user", logger.Error(err))
			os.Exit(1)
		}
		users.AddUser(user)
	}

	var storeOpts []session.StoreOption
	if cfg.SessionTTL > 0 {
		storeOpts = append(storeOpts,
			session.WithTTL(cfg.SessionTTL),
			session.WithCleanupInterval(cfg.SessionCleanupInterval),
		)
	}
	store := session.NewMemoryStore(users, storeOpts...)
	defer store.Close()

	manager, err := session.NewManager(cfg.SigningKeys, session.WithConfig(loginCfg))
	if err != nil {
		log.Error("failed to create login manager", logger.Error(err))
		os.Exit(1)
	}
	controller := session.NewController(store, session.WithLogger(log))
	api := sessionapi.New(store, controller, sessionapi.WithLogger(log))

	ctx := context.Background()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(manager.Wrap)
	r.Use(controller.Middleware)
	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Mount("/api", api.Handle())

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithReadTimeout(10*time.Second),
		httpserver.WithWriteTimeout(10*time.Second),
		httpserver.WithIdleTimeout(60*time.Second),
		httpserver.WithLogger(log),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.Error("http server failed", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	switch environment {
	case "production", "prod":
		return logger.New(logger.WithProduction("sessiond"))
	default:
		return logger.New(logger.WithDevelopment("sessiond"))
	}
}

// requestLogger emits one structured line per completed request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
				logger.RequestID(middleware.GetReqID(r.Context())),
			)
		})
	}
}
