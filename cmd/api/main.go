package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BradenHooton/gridboard/internal/auth"
	"github.com/BradenHooton/gridboard/internal/background"
	"github.com/BradenHooton/gridboard/internal/config"
	"github.com/BradenHooton/gridboard/internal/database"
	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/metrics"
	middlewareCustom "github.com/BradenHooton/gridboard/internal/middleware"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/routes"
	"github.com/BradenHooton/gridboard/internal/services"
	"github.com/BradenHooton/gridboard/internal/settings"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
	pkglogger "github.com/BradenHooton/gridboard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := pkglogger.New(os.Stdout, cfg.Server.LogFormat, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("settings_backend", cfg.Settings.Backend),
	)

	m := metrics.New(prometheus.DefaultRegisterer)

	// Seed the in-memory collections
	seed := repositories.SeedConfig{
		Seed:     cfg.Mock.Seed,
		Users:    cfg.Mock.Users,
		Products: cfg.Mock.Products,
		Now:      time.Now(),
	}
	store := repositories.NewStore(repositories.NewLatency(cfg.Mock.Latency, cfg.Mock.LatencyJitter))
	store.Replace(repositories.Seed(seed))

	users, roles, products := store.Counts()
	logger.Info("demo dataset seeded",
		slog.Uint64("seed", cfg.Mock.Seed),
		slog.Int("users", users),
		slog.Int("roles", roles),
		slog.Int("products", products),
	)

	// View settings backend
	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := openSettings(startCtx, cfg, logger)
	startCancel()
	if err != nil {
		logger.Error("failed to open settings store", slog.Any("error", err))
		os.Exit(1)
	}
	defer backend.close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(store)
	roleRepo := repositories.NewRoleRepository(store)
	productRepo := repositories.NewProductRepository(store)

	// Initialize services
	audit := services.NewAuditService(metrics.CountingAudit{
		Next:    pkglogger.NewAuditLogger(logger),
		Metrics: m,
	}, logger)
	userService := services.NewUserService(userRepo, audit, logger, cfg.Table.DefaultPageSize)
	roleService := services.NewRoleService(roleRepo, audit, logger)
	productService := services.NewProductService(productRepo, audit, logger, cfg.Table.DefaultPageSize)
	dashboardService := services.NewDashboardService(userRepo, roleRepo, productRepo, logger)

	// Initialize handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	sessions := auth.NewSessionStore(cfg.Session.Tokens)

	h := routes.Handlers{
		Users:     handlers.NewUserHandler(userService, logger, ipConfig),
		Roles:     handlers.NewRoleHandler(roleService, logger, ipConfig),
		Products:  handlers.NewProductHandler(productService, logger, ipConfig),
		Dashboard: handlers.NewDashboardHandler(dashboardService, services.Permissions, logger),
		Settings:  handlers.NewSettingsHandler(backend.store, logger),
		Tables:    handlers.NewTableHandler(userService, productService, backend.store, logger),
		Session: handlers.NewSessionHandler(sessions, handlers.SessionOptions{
			Delay: auth.FailureDelay{Base: 100 * time.Millisecond, Jitter: 200 * time.Millisecond},
			Cookie: auth.CookieConfig{
				Secure:   cfg.Server.Env == "production",
				SameSite: "lax",
			},
			MaxAge:   int((24 * time.Hour).Seconds()),
			Env:      cfg.Server.Env,
			IPConfig: ipConfig,
		}, logger),
	}

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(m.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, h, sessions, routes.Options{
		SessionRequired: cfg.Session.Required,
		APIRateLimit:    middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Server.RateLimit},
		SignInRateLimit: middlewareCustom.DefaultSessionRateLimit(),
	})

	router.Handle("/metrics", promhttp.Handler())

	// Health check with settings backend
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := backend.health(r.Context()); err != nil {
			pkghttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"settings": "down",
			})
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"settings": cfg.Settings.Backend,
		})
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start demo reset task
	resetCtx, resetCancel := context.WithCancel(context.Background())
	defer resetCancel()

	resetter := background.NewDemoResetter(store, seed, logger, cfg.Mock.ResetInterval, m.DemoResets)
	go resetter.Start(resetCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	resetter.Stop()
	resetCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// settingsBackend bundles the configured store with its lifecycle hooks
type settingsBackend struct {
	store  settings.Store
	health func(ctx context.Context) error
	close  func()
}

func openSettings(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*settingsBackend, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Settings.Backend {
	case config.BackendFile:
		fs, err := settings.NewFileStore(cfg.Settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("file settings store: %w", err)
		}
		return &settingsBackend{store: fs, health: noop, close: func() {}}, nil

	case config.BackendPostgres:
		db, err := database.Open(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres settings store: %w", err)
		}
		return &settingsBackend{store: settings.NewPostgresStore(db), health: db.HealthCheck, close: db.Close}, nil

	case config.BackendRedis:
		rs, err := settings.NewRedisStore(ctx, cfg.Settings.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis settings store: %w", err)
		}
		return &settingsBackend{
			store:  rs,
			health: rs.HealthCheck,
			close: func() {
				if err := rs.Close(); err != nil {
					logger.Warn("failed to close redis client", slog.Any("error", err))
				}
			},
		}, nil

	default:
		return &settingsBackend{store: settings.NewMemoryStore(), health: noop, close: func() {}}, nil
	}
}
