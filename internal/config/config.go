package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Store backend kinds
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds the service configuration, loaded from environment
// variables. The LinkedIn credentials and the frontend base URL are
// required; startup fails without them.
type Config struct {
	Addr string `env:"ADDR" envDefault:":5000"`

	LinkedInClientID     string `env:"LINKEDIN_CLIENT_ID,required,notEmpty"`
	LinkedInClientSecret string `env:"LINKEDIN_CLIENT_SECRET,required,notEmpty"`
	LinkedInRedirectURI  string `env:"LINKEDIN_REDIRECT_URI,required,notEmpty"`
	FrontendURL          string `env:"FRONTEND_URL,required,notEmpty"`

	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
}

// Load parses and validates the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the parsed configuration.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.FrontendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FRONTEND_URL must be an absolute URL, got %q", cfg.FrontendURL)
	}

	if _, err := url.Parse(cfg.LinkedInRedirectURI); err != nil {
		return fmt.Errorf("LINKEDIN_REDIRECT_URI is not a valid URL: %w", err)
	}

	switch cfg.SessionStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, cfg.SessionStore)
	}

	return nil
}

// FrontendSecure reports whether the frontend is served over HTTPS, which
// controls the Secure attribute on the session cookie.
func (c Config) FrontendSecure() bool {
	return strings.HasPrefix(c.FrontendURL, "https")
}
