// Package config provides configuration loading for triaged.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/triaged/internal/logging"
)

// Config is the full triaged configuration tree.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   logging.Config  `koanf:"logging"`
	Cache     CacheConfig     `koanf:"cache"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
}

// ServerConfig configures the ops HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Feedback endpoint rate limiting.
	FeedbackRPS   float64 `koanf:"feedback_rps"`
	FeedbackBurst int     `koanf:"feedback_burst"`
}

// CacheConfig configures the extraction cache.
type CacheConfig struct {
	Capacity        int           `koanf:"capacity"`
	DefaultTTL      time.Duration `koanf:"default_ttl"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// AnalyticsConfig configures the usage-learning service.
type AnalyticsConfig struct {
	Alpha    float64 `koanf:"alpha"`
	RingSize int     `koanf:"ring_size"`
}

// PipelineConfig configures extraction behavior.
type PipelineConfig struct {
	NegationWindowWords int `koanf:"negation_window_words"`
	NegationWindowChars int `koanf:"negation_window_chars"`
}

// NewDefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8087,
			ShutdownTimeout: 10 * time.Second,
			FeedbackRPS:     5,
			FeedbackBurst:   10,
		},
		Logging: *logging.NewDefaultConfig(),
		Cache: CacheConfig{
			Capacity:        1000,
			DefaultTTL:      5 * time.Minute,
			JanitorInterval: time.Minute,
		},
		Analytics: AnalyticsConfig{
			Alpha:    0.1,
			RingSize: 1000,
		},
		Pipeline: PipelineConfig{
			NegationWindowWords: 5,
			NegationWindowChars: 40,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.FeedbackRPS <= 0 {
		return fmt.Errorf("server.feedback_rps must be positive")
	}
	if c.Server.FeedbackBurst < 1 {
		return fmt.Errorf("server.feedback_burst must be at least 1")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity must be at least 1")
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive")
	}
	if c.Cache.JanitorInterval <= 0 {
		return fmt.Errorf("cache.janitor_interval must be positive")
	}
	if c.Analytics.Alpha <= 0 || c.Analytics.Alpha > 1 {
		return fmt.Errorf("analytics.alpha must be in (0, 1]: %g", c.Analytics.Alpha)
	}
	if c.Analytics.RingSize < 1 {
		return fmt.Errorf("analytics.ring_size must be at least 1")
	}
	if c.Pipeline.NegationWindowWords < 1 {
		return fmt.Errorf("pipeline.negation_window_words must be at least 1")
	}
	if c.Pipeline.NegationWindowChars < 1 {
		return fmt.Errorf("pipeline.negation_window_chars must be at least 1")
	}
	return nil
}
