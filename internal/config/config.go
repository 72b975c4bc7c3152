package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bounds for the runtime memory-scaling options.
const (
	DefaultSessionTTLSeconds = 30 * 60
	MinSessionTTLSeconds     = 60
	MaxSessionTTLSeconds     = 86400

	DefaultMaxSessions = 100
	MinMaxSessions     = 10
	MaxMaxSessions     = 1000
)

// Tenant is one configured account sharing the upload endpoint.
type Tenant struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Language string `yaml:"language"`
	Imperial bool   `yaml:"imperial"`
}

// Config is the process configuration, read from env with an optional yaml
// file overlay (TORQUE_CONFIG).
type Config struct {
	HTTPAddr          string   `yaml:"http_addr"`
	SessionTTLSeconds int      `yaml:"session_ttl_seconds"`
	MaxSessions       int      `yaml:"max_sessions"`
	JWTSecret         string   `yaml:"jwt_secret"`
	UploadToken       string   `yaml:"upload_token"`
	ArchiveDSN        string   `yaml:"archive_dsn"`
	Tenants           []Tenant `yaml:"tenants"`
}

// Load reads configuration from the environment and an optional yaml file.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		SessionTTLSeconds: getenvIntDefault("SESSION_TTL_SECONDS", DefaultSessionTTLSeconds),
		MaxSessions:       getenvIntDefault("MAX_SESSIONS", DefaultMaxSessions),
		JWTSecret:         getenvDefault("AUTH_JWT_SECRET", os.Getenv("JWT_SECRET")),
		UploadToken:       os.Getenv("UPLOAD_TOKEN"),
		ArchiveDSN:        getenvDefault("ARCHIVE_DSN", os.Getenv("DATABASE_URL")),
	}

	if path := os.Getenv("TORQUE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	// A single tenant may be configured from env alone.
	if len(cfg.Tenants) == 0 {
		if email := os.Getenv("TENANT_EMAIL"); email != "" {
			cfg.Tenants = []Tenant{{
				ID:       getenvDefault("TENANT_ID", "default"),
				Email:    email,
				Language: os.Getenv("TENANT_LANGUAGE"),
				Imperial: getenvBool("TENANT_IMPERIAL"),
			}}
		}
	}

	cfg.SessionTTLSeconds = ClampSessionTTLSeconds(cfg.SessionTTLSeconds)
	cfg.MaxSessions = ClampMaxSessions(cfg.MaxSessions)

	seen := make(map[string]struct{}, len(cfg.Tenants))
	for i, tenant := range cfg.Tenants {
		if tenant.ID == "" {
			return cfg, errors.New("config: tenant without id")
		}
		if _, dup := seen[tenant.ID]; dup {
			return cfg, errors.New("config: duplicate tenant id " + tenant.ID)
		}
		seen[tenant.ID] = struct{}{}
		if tenant.Email != "" && !ValidEmail(tenant.Email) {
			return cfg, errors.New("config: invalid email for tenant " + tenant.ID)
		}
		cfg.Tenants[i].Email = strings.ToLower(strings.TrimSpace(tenant.Email))
	}
	return cfg, nil
}

// ValidEmail applies the same light-touch check the original config UI used.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@") && strings.Contains(email, ".")
}

// ClampSessionTTLSeconds bounds a session TTL, at load time or when adjusted
// at runtime.
func ClampSessionTTLSeconds(value int) int {
	return clamp(value, MinSessionTTLSeconds, MaxSessionTTLSeconds)
}

// ClampMaxSessions bounds the session cap the same way.
func ClampMaxSessions(value int) int {
	return clamp(value, MinMaxSessions, MaxMaxSessions)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "1" || value == "true" || value == "yes"
}
