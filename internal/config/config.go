// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://veitia.xari.net/api/"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	HTTPCache bool
	RateLimit float64 // Requests per second; 0 disables limiting.
	RateBurst int
	LogLevel  slog.Level
	Username  string // Optional default for the login prompt.
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional:
// CRMCLIENT_BASE_URL (https://veitia.xari.net/api/), CRMCLIENT_TIMEOUT (30s),
// CRMCLIENT_HTTP_CACHE (false), CRMCLIENT_RATE_LIMIT (0), CRMCLIENT_RATE_BURST (1),
// CRMCLIENT_LOG_LEVEL (info), CRMCLIENT_USERNAME ("").
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   30 * time.Second,
		RateBurst: 1,
		LogLevel:  slog.LevelInfo,
		Username:  os.Getenv("CRMCLIENT_USERNAME"),
	}

	if v, ok := os.LookupEnv("CRMCLIENT_BASE_URL"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("CRMCLIENT_BASE_URL must be an absolute http(s) URL, got %q", v)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		cfg.BaseURL = u.String()
	}

	if v, ok := os.LookupEnv("CRMCLIENT_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CRMCLIENT_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("CRMCLIENT_TIMEOUT must not be negative, got %q", v)
		}
		cfg.Timeout = parsed
	}

	if v, ok := os.LookupEnv("CRMCLIENT_HTTP_CACHE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CRMCLIENT_HTTP_CACHE has invalid boolean %q: %w", v, err)
		}
		cfg.HTTPCache = parsed
	}

	if v, ok := os.LookupEnv("CRMCLIENT_RATE_LIMIT"); ok && v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("CRMCLIENT_RATE_LIMIT must be a non-negative number, got %q", v)
		}
		cfg.RateLimit = parsed
	}

	if v, ok := os.LookupEnv("CRMCLIENT_RATE_BURST"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("CRMCLIENT_RATE_BURST must be a positive integer, got %q", v)
		}
		cfg.RateBurst = parsed
	}

	if v, ok := os.LookupEnv("CRMCLIENT_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("CRMCLIENT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return cfg, nil
}
