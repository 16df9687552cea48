package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/BradenHooton/gridboard/internal/auth"
	"github.com/BradenHooton/gridboard/internal/config"
	"github.com/BradenHooton/gridboard/internal/handlers"
	middlewareCustom "github.com/BradenHooton/gridboard/internal/middleware"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/routes"
	"github.com/BradenHooton/gridboard/internal/services"
	"github.com/BradenHooton/gridboard/internal/settings"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
	pkglogger "github.com/BradenHooton/gridboard/pkg/logger"
)

// TestServer wraps httptest.Server with a seeded store and a settings backend
type TestServer struct {
	Server   *httptest.Server
	Store    *repositories.Store
	Settings settings.Store
	Config   *config.Config

	logger *slog.Logger
}

// NewTestServer initializes the full HTTP stack over the given settings store
func NewTestServer(store settings.Store) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
			TrustedProxies: []string{},
			RateLimit:      1000,
		},
		Table: config.TableConfig{
			DefaultPageSize:  10,
			ApplyFiltersMode: config.FiltersApply,
		},
		Session: config.SessionConfig{
			Required: true,
		},
	}

	data := repositories.NewStore(repositories.NoLatency{})
	data.Replace(repositories.Seed(TestSeed()))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(data)
	roleRepo := repositories.NewRoleRepository(data)
	productRepo := repositories.NewProductRepository(data)

	// Initialize services
	audit := services.NewAuditService(pkglogger.NewAuditLogger(logger), logger)
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
		Settings:  handlers.NewSettingsHandler(store, logger),
		Tables:    handlers.NewTableHandler(userService, productService, store, logger),
		Session: handlers.NewSessionHandler(sessions, handlers.SessionOptions{
			Cookie:   auth.CookieConfig{SameSite: "lax"},
			MaxAge:   int(time.Hour.Seconds()),
			Env:      cfg.Server.Env,
			IPConfig: ipConfig,
		}, logger),
	}

	// Setup Chi router with middleware
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, h, sessions, routes.Options{
		SessionRequired: cfg.Session.Required,
		APIRateLimit:    middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Server.RateLimit},
		SignInRateLimit: middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Server.RateLimit},
	})

	return &TestServer{
		Server:   httptest.NewServer(r),
		Store:    data,
		Settings: store,
		Config:   cfg,
		logger:   logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithSession makes a request carrying the auth_token cookie
func (ts *TestServer) RequestWithSession(method, path, token string, body any) (*http.Response, error) {
	return ts.Request(method, path, body, map[string]string{
		"Cookie": auth.CookieName + "=" + token,
	})
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// GetErrorMessage extracts error message from error response
func GetErrorMessage(resp *http.Response) (string, error) {
	var errResp pkghttp.Response
	if err := ParseJSONResponse(resp, &errResp); err != nil {
		return "", err
	}
	return errResp.Message, nil
}
