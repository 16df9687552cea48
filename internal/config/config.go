package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Filter editing modes
const (
	FiltersApply     = "apply"
	FiltersImmediate = "immediate"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Mock     MockConfig
	Settings SettingsConfig
	Table    TableConfig
	Session  SessionConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	AllowedOrigins  []string
	TrustedProxies  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int
}

// MockConfig shapes the in-memory demo collections
type MockConfig struct {
	Latency       time.Duration
	LatencyJitter time.Duration
	Seed          uint64
	Users         int
	Products      int
	ResetInterval time.Duration
}

type SettingsConfig struct {
	Backend  string
	Dir      string
	RedisURL string
}

type TableConfig struct {
	DefaultPageSize  int
	ApplyFiltersMode string
}

// SessionConfig maps extra auth_token cookie values to an access level
// (admin, editor or user)
type SessionConfig struct {
	Required bool
	Tokens   map[string]string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "gridboard"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 1)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Env:             env,
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			LogFormat:       getEnv("LOG_FORMAT", "json"),
			AllowedOrigins:  parseAllowedOrigins(env),
			TrustedProxies:  parseList(getEnv("TRUSTED_PROXIES", "")),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RateLimit:       getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		},
		Mock: MockConfig{
			Latency:       getEnvAsDuration("MOCK_LATENCY", 300*time.Millisecond),
			LatencyJitter: getEnvAsDuration("MOCK_LATENCY_JITTER", 0),
			Seed:          uint64(getEnvAsInt("MOCK_SEED", 42)),
			Users:         getEnvAsInt("MOCK_USERS", 300),
			Products:      getEnvAsInt("MOCK_PRODUCTS", 150),
			ResetInterval: getEnvAsDuration("DEMO_RESET_INTERVAL", 0),
		},
		Settings: SettingsConfig{
			Backend:  strings.ToLower(getEnv("SETTINGS_BACKEND", BackendMemory)),
			Dir:      getEnv("SETTINGS_DIR", "./data/settings"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Table: TableConfig{
			DefaultPageSize:  getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
			ApplyFiltersMode: strings.ToLower(getEnv("APPLY_FILTERS_MODE", FiltersApply)),
		},
		Session: SessionConfig{
			Required: getEnvAsBool("SESSION_REQUIRED", true),
			Tokens:   parseSessionTokens(getEnv("SESSION_TOKENS", "")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Settings.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when SETTINGS_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("SETTINGS_BACKEND must be one of memory, file, postgres, redis (got %q)", c.Settings.Backend)
	}

	switch c.Table.ApplyFiltersMode {
	case FiltersApply, FiltersImmediate:
	default:
		return fmt.Errorf("APPLY_FILTERS_MODE must be apply or immediate (got %q)", c.Table.ApplyFiltersMode)
	}

	if c.Mock.Users < 1 || c.Mock.Products < 0 {
		return fmt.Errorf("MOCK_USERS must be positive and MOCK_PRODUCTS non-negative")
	}

	if c.Table.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive (got %d)", c.Table.DefaultPageSize)
	}

	return nil
}

// ImmediateFilters reports whether filter edits apply without confirmation
func (c *Config) ImmediateFilters() bool {
	return c.Table.ApplyFiltersMode == FiltersImmediate
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

// parseSessionTokens reads "token:level,token:level"
func parseSessionTokens(raw string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		token, level, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || level == "" {
			continue
		}
		tokens[token] = strings.ToLower(level)
	}
	return tokens
}

// parseList splits a comma separated value, dropping empty entries
func parseList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{}
		}
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
}
