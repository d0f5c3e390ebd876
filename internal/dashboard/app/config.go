package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/leaddash/pkg/httpx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIURL string `env:"API_URL" envDefault:"http://localhost:4000"` // Backend base URL

	Env       string `env:"ENV" envDefault:"dev"`         // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // Log format (json, text)

	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`     // Per-request timeout
	RefreshDedupe bool          `env:"REFRESH_DEDUPE" envDefault:"false"` // Collapse concurrent token refreshes

	// Outbound rate limit, RATELIMIT_CLIENT_REQUESTS=0 disables it
	RateLimit httpx.RateLimitConfig `envPrefix:"RATELIMIT_CLIENT_"`

	// Optional: log in before running a command. Without these the
	// dashboard relies on an existing backend session.
	Email    string `env:"DASHBOARD_EMAIL"`
	Password string `env:"DASHBOARD_PASSWORD"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_URL %q: must be an absolute URL", c.APIURL)
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("invalid HTTP_TIMEOUT: must be positive")
	}

	if (c.Email == "") != (c.Password == "") {
		return errors.New("DASHBOARD_EMAIL and DASHBOARD_PASSWORD must be set together")
	}

	return nil
}

// HasCredentials reports whether the dashboard logs in on its own.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}
