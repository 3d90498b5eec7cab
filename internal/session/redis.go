// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// maxMutateAttempts bounds optimistic-lock retries when another writer
// races the same session key.
const maxMutateAttempts = 50

var errMutateContention = errors.New("session: too much write contention")

// redisStore persists sessions in Redis with TTL-managed keys and
// WATCH-based single-writer mutation per key.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) Get(ctx context.Context, id string) (*Data, error) {
	key := redisKeyPrefix + id
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}

	// Refresh TTL on read
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &data, nil
}

func (s *redisStore) Mutate(ctx context.Context, id string, fn func(*Data) error) (*Data, error) {
	key := redisKeyPrefix + id

	var result *Data
	txn := func(tx *redis.Tx) error {
		data := &Data{ID: id, CreatedAt: time.Now()}

		val, err := tx.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			if err := json.Unmarshal([]byte(val), data); err != nil {
				return err
			}
		}

		if err := fn(data); err != nil {
			return err
		}
		data.UpdatedAt = time.Now()

		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		result = data
		return nil
	}

	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return nil, err
	}
	return nil, errMutateContention
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
