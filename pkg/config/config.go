package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Redis         RedisConfig
	Session       SessionConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	InFlight      InFlightConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KAIROSMIX_APP_ENV" required:"true"`
	Port         string `envconfig:"KAIROSMIX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KAIROSMIX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KAIROSMIX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the KairosMix REST API that owns all persistence.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"KAIROSMIX_UPSTREAM_BASE_URL" default:"http://localhost:3000/api"`
	Timeout time.Duration `envconfig:"KAIROSMIX_UPSTREAM_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KAIROSMIX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KAIROSMIX_REDIS_ADDR"`
	Password     string        `envconfig:"KAIROSMIX_REDIS_PASSWORD"`
	DB           int           `envconfig:"KAIROSMIX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KAIROSMIX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KAIROSMIX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KAIROSMIX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KAIROSMIX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KAIROSMIX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig bounds how long a gateway session (and its working selection) lives.
type SessionConfig struct {
	TTL time.Duration `envconfig:"KAIROSMIX_SESSION_TTL" default:"12h"`
}

// AdminConfig lists the accounts granted the admin role when the backend does not say so itself.
type AdminConfig struct {
	Emails []string `envconfig:"KAIROSMIX_ADMIN_EMAILS" default:"admin@kairozmix.com"`
}

// IsAdminEmail reports whether the email belongs to a configured admin account.
func (a AdminConfig) IsAdminEmail(email string) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return false
	}
	for _, candidate := range a.Emails {
		if strings.ToLower(strings.TrimSpace(candidate)) == normalized {
			return true
		}
	}
	return false
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"KAIROSMIX_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// InFlightConfig controls the per-action duplicate submission guard.
type InFlightConfig struct {
	TTL time.Duration `envconfig:"KAIROSMIX_INFLIGHT_TTL" default:"30s"`
}

// CORSConfig lists the browser origins allowed to call the gateway.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"KAIROSMIX_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (u *UpstreamConfig) validate() error {
	trimmed := strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if trimmed == "" {
		return fmt.Errorf("%s is required", EnvUpstreamBaseURL)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvUpstreamBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", EnvUpstreamBaseURL, parsed.Scheme)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvUpstreamTimeout)
	}
	u.BaseURL = trimmed
	return nil
}
