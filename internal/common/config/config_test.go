package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "gemini", cfg.Backends.GenAI.Provider)
	assert.Equal(t, 0.4, cfg.Backends.GenAI.Temperature)
	assert.Equal(t, 4000, cfg.Backends.GenAI.MaxTokens)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, 3, cfg.Pipeline.DefaultTopK)
	assert.Equal(t, 2.5, cfg.Pipeline.SearchMultiplier)
	assert.Equal(t, 6, cfg.Pipeline.AskMaxResults)
	assert.Equal(t, 5, cfg.Pipeline.HistoryLimit)
	assert.False(t, cfg.Pipeline.DedupeResults)
}

func TestValidateConfig(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)
	require.NoError(t, validateConfig(&cfg))

	bad := cfg
	bad.Backends.GenAI.Provider = "bard"
	assert.Error(t, validateConfig(&bad))

	bad = cfg
	bad.Session.Store = "cassandra"
	assert.Error(t, validateConfig(&bad))

	bad = cfg
	bad.Session.Store = "redis"
	bad.Session.Redis.Address = ""
	assert.Error(t, validateConfig(&bad))

	bad = cfg
	bad.Pipeline.DefaultTopK = 0
	assert.Error(t, validateConfig(&bad))
}

func TestTimeoutDurations(t *testing.T) {
	assert.Equal(t, 60*time.Second, OCRConfig{Timeout: 60}.TimeoutDuration())
	assert.Equal(t, 10*time.Second, SearchConfig{Timeout: 10}.TimeoutDuration())
}
