// internal/session/store.go
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidStoreType = errors.New("session: invalid store type")
	ErrInvalidConfig    = errors.New("session: invalid store configuration")
)

// Store is the session storage interface. Mutate is the single-writer
// path: the driver guarantees that fn runs exclusively for its session
// key, creating the session when absent.
type Store interface {
	// Get retrieves a session by ID. Returns nil when not found (not
	// an error).
	Get(ctx context.Context, id string) (*Data, error)

	// Mutate applies fn to the session under a per-key write lock,
	// creating it first when absent, and persists the result.
	Mutate(ctx context.Context, id string, fn func(*Data) error) (*Data, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// Close releases driver resources.
	Close() error
}

// StoreType selects a driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// StoreOption is a functional option for configuring a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithRedisClient sets the Redis client for the Redis driver.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for Redis session keys.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// NewStore creates a session store for the given driver type. The
// redis driver requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(), nil

	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		ttl := cfg.redisTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		return &redisStore{client: cfg.redisClient, ttl: ttl}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
