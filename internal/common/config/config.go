// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Backends BackendsConfig `mapstructure:"backends"`
	Session  SessionConfig  `mapstructure:"session"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// BackendsConfig holds the external collaborator endpoints. Each
// backend call is a blocking round-trip with a fixed per-backend
// timeout; there is no caller-supplied override and no retry.
type BackendsConfig struct {
	OCR    OCRConfig    `mapstructure:"ocr"`
	GenAI  GenAIConfig  `mapstructure:"genai"`
	Search SearchConfig `mapstructure:"search"`
}

type OCRConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Engine  int    `mapstructure:"engine"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type GenAIConfig struct {
	Provider    string  `mapstructure:"provider"` // "gemini" or "openai"
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Timeout     int     `mapstructure:"timeout"` // seconds
}

type SearchConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	Timeout  int    `mapstructure:"timeout"`   // seconds
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds, 0 disables the cache
}

type SessionConfig struct {
	Store    string `mapstructure:"store"` // "memory" or "redis"
	TTLHours int    `mapstructure:"ttl_hours"`
	Redis    RedisConfig
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PipelineConfig shapes the itinerary request flow.
type PipelineConfig struct {
	DefaultTopK int `mapstructure:"default_top_k"`
	// Each category query requests int(top_k * multiplier) results.
	SearchMultiplier float64 `mapstructure:"search_multiplier"`
	AskMaxResults    int     `mapstructure:"ask_max_results"`
	HistoryLimit     int     `mapstructure:"history_limit"`
	// Optional URL-level dedup across category searches. Off by
	// default: duplicate venues across qualifier queries are
	// documented behavior.
	DedupeResults bool `mapstructure:"dedupe_results"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (o OCRConfig) TimeoutDuration() time.Duration {
	return time.Duration(o.Timeout) * time.Second
}

func (g GenAIConfig) TimeoutDuration() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

func (s SearchConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

func validateConfig(cfg *Config) error {
	if cfg.Backends.GenAI.Provider != "gemini" && cfg.Backends.GenAI.Provider != "openai" {
		return fmt.Errorf("backends.genai.provider must be gemini or openai, got %q", cfg.Backends.GenAI.Provider)
	}
	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return fmt.Errorf("session.store must be memory or redis, got %q", cfg.Session.Store)
	}
	if cfg.Session.Store == "redis" && cfg.Session.Redis.Address == "" {
		return fmt.Errorf("session.redis.address is required when session.store is redis")
	}
	if cfg.Pipeline.DefaultTopK <= 0 {
		return fmt.Errorf("pipeline.default_top_k must be positive")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "travel-assistant"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout == 0 {
		// Itinerary generation waits on OCR + search + generation.
		cfg.Server.WriteTimeout = 180
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Backends.OCR.Timeout == 0 {
		cfg.Backends.OCR.Timeout = 60
	}
	if cfg.Backends.OCR.Engine == 0 {
		cfg.Backends.OCR.Engine = 2
	}
	if cfg.Backends.GenAI.Provider == "" {
		cfg.Backends.GenAI.Provider = "gemini"
	}
	if cfg.Backends.GenAI.Timeout == 0 {
		cfg.Backends.GenAI.Timeout = 60
	}
	if cfg.Backends.GenAI.Temperature == 0 {
		cfg.Backends.GenAI.Temperature = 0.4
	}
	if cfg.Backends.GenAI.MaxTokens == 0 {
		cfg.Backends.GenAI.MaxTokens = 4000
	}
	if cfg.Backends.Search.Language == "" {
		cfg.Backends.Search.Language = "en"
	}
	if cfg.Backends.Search.Timeout == 0 {
		cfg.Backends.Search.Timeout = 10
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24
	}
	if cfg.Pipeline.DefaultTopK == 0 {
		cfg.Pipeline.DefaultTopK = 3
	}
	if cfg.Pipeline.SearchMultiplier == 0 {
		cfg.Pipeline.SearchMultiplier = 2.5
	}
	if cfg.Pipeline.AskMaxResults == 0 {
		cfg.Pipeline.AskMaxResults = 6
	}
	if cfg.Pipeline.HistoryLimit == 0 {
		cfg.Pipeline.HistoryLimit = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
