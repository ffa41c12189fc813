package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the Vector-Insights application.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Generator GeneratorConfig
	Reports   ReportsConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	Enabled   bool
	MasterKey string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// GeneratorConfig controls the synthetic dataset built at startup.
// The window bounds are inclusive calendar dates in YYYY-MM-DD form.
type GeneratorConfig struct {
	Seed        int64
	Advertisers int
	Campaigns   int
	Impressions int
	Publishers  int
	Placements  int
	WindowStart string
	WindowEnd   string
}

// WindowDates parses the generation window.  Errors surface through
// Validate, so callers after Load can ignore them.
func (g GeneratorConfig) WindowDates() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", g.WindowStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window start: %w", err)
	}
	end, err := time.Parse("2006-01-02", g.WindowEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid window end: %w", err)
	}
	return start, end, nil
}

// ReportsConfig holds tunables for the derived reports.
type ReportsConfig struct {
	// PacingThresholdPct is the budget-vs-time gap, in percentage
	// points, beyond which a campaign is flagged ahead or behind.
	PacingThresholdPct float64
	// ReceivableTermDays and PayableTermDays are payment terms counted
	// from the end of the billing month.
	ReceivableTermDays int
	PayableTermDays    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("VECTOR_INSIGHTS_HTTP_ADDR", ":8080"),
			Env:             getEnv("VECTOR_INSIGHTS_ENV", "development"),
			ShutdownTimeout: getDurationEnv("VECTOR_INSIGHTS_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("VECTOR_INSIGHTS_AUTH_ENABLED", false),
			MasterKey: getEnv("VECTOR_INSIGHTS_API_KEY_MASTER", ""),
			SkipPaths: getSliceEnv("VECTOR_INSIGHTS_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("VECTOR_INSIGHTS_RATE_LIMIT_ENABLED", true),
			RPS:     getFloatEnv("VECTOR_INSIGHTS_RATE_LIMIT_RPS", 100),
			Burst:   getIntEnv("VECTOR_INSIGHTS_RATE_LIMIT_BURST", 20),
		},
		Log: LogConfig{
			Level:  getEnv("VECTOR_INSIGHTS_LOG_LEVEL", "info"),
			Format: getEnv("VECTOR_INSIGHTS_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("VECTOR_INSIGHTS_METRICS_ENABLED", true),
			Path:    getEnv("VECTOR_INSIGHTS_METRICS_PATH", "/metrics"),
		},
		Generator: GeneratorConfig{
			Seed:        int64(getIntEnv("VECTOR_INSIGHTS_GEN_SEED", 42)),
			Advertisers: getIntEnv("VECTOR_INSIGHTS_GEN_ADVERTISERS", 20),
			Campaigns:   getIntEnv("VECTOR_INSIGHTS_GEN_CAMPAIGNS", 50),
			Impressions: getIntEnv("VECTOR_INSIGHTS_GEN_IMPRESSIONS", 50000),
			Publishers:  getIntEnv("VECTOR_INSIGHTS_GEN_PUBLISHERS", 25),
			Placements:  getIntEnv("VECTOR_INSIGHTS_GEN_PLACEMENTS", 100),
			WindowStart: getEnv("VECTOR_INSIGHTS_GEN_WINDOW_START", "2020-01-01"),
			WindowEnd:   getEnv("VECTOR_INSIGHTS_GEN_WINDOW_END", "2024-12-31"),
		},
		Reports: ReportsConfig{
			PacingThresholdPct: getFloatEnv("VECTOR_INSIGHTS_PACING_THRESHOLD_PCT", 10),
			ReceivableTermDays: getIntEnv("VECTOR_INSIGHTS_RECEIVABLE_TERM_DAYS", 45),
			PayableTermDays:    getIntEnv("VECTOR_INSIGHTS_PAYABLE_TERM_DAYS", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.MasterKey == "" {
		return fmt.Errorf("VECTOR_INSIGHTS_API_KEY_MASTER is required when auth is enabled")
	}
	if c.Generator.Advertisers <= 0 || c.Generator.Campaigns <= 0 ||
		c.Generator.Impressions <= 0 || c.Generator.Publishers <= 0 ||
		c.Generator.Placements <= 0 {
		return fmt.Errorf("generator entity counts must be positive")
	}
	start, end, err := c.Generator.WindowDates()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("generation window end precedes start")
	}
	if c.Reports.PacingThresholdPct < 0 {
		return fmt.Errorf("pacing threshold must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
