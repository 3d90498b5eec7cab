// internal/session/store_test.go

package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-assistant/internal/models"
)

func newRedisTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store, err := NewStore(StoreTypeRedis, WithRedisClient(client), WithRedisTTL(time.Hour))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func eachDriver(t *testing.T, test func(t *testing.T, store Store)) {
	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(StoreTypeMemory)
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		test(t, store)
	})
	t.Run("redis", func(t *testing.T) {
		store, _ := newRedisTestStore(t)
		test(t, store)
	})
}

func TestStoreGetAbsentReturnsNil(t *testing.T) {
	eachDriver(t, func(t *testing.T, store Store) {
		data, err := store.Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestStoreMutateCreatesAndPersists(t *testing.T) {
	eachDriver(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		updated, err := store.Mutate(ctx, "s1", func(d *Data) error {
			d.MergeFacts(models.TravelFacts{Destination: "Dubai"})
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "s1", updated.ID)
		assert.Equal(t, "Dubai", updated.Context.Destination)

		data, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.Equal(t, "Dubai", data.Context.Destination)
		assert.False(t, data.CreatedAt.IsZero())
	})
}

func TestStoreMutateSerializesWriters(t *testing.T) {
	eachDriver(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		const writers = 20

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := store.Mutate(ctx, "shared", func(d *Data) error {
					d.AppendTurn(models.ChatTurn{Question: fmt.Sprintf("q%d", i), Answer: "a"}, writers+1)
					return nil
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		data, err := store.Get(ctx, "shared")
		require.NoError(t, err)
		require.NotNil(t, data)
		// Every write lands exactly once: no lost updates.
		assert.Len(t, data.History, writers)
	})
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	eachDriver(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		_, err := store.Mutate(ctx, "a", func(d *Data) error {
			d.MergeFacts(models.TravelFacts{Destination: "Dubai"})
			return nil
		})
		require.NoError(t, err)
		_, err = store.Mutate(ctx, "b", func(d *Data) error {
			d.MergeFacts(models.TravelFacts{Destination: "London"})
			return nil
		})
		require.NoError(t, err)

		a, err := store.Get(ctx, "a")
		require.NoError(t, err)
		b, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "Dubai", a.Context.Destination)
		assert.Equal(t, "London", b.Context.Destination)
	})
}

func TestStoreDelete(t *testing.T) {
	eachDriver(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		_, err := store.Mutate(ctx, "gone", func(d *Data) error { return nil })
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, "gone"))

		data, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestMemoryGetReturnsSnapshot(t *testing.T) {
	store, err := NewStore(StoreTypeMemory)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	_, err = store.Mutate(ctx, "s1", func(d *Data) error {
		d.AppendTurn(models.ChatTurn{Question: "q", Answer: "a"}, 5)
		return nil
	})
	require.NoError(t, err)

	first, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	first.History[0].Question = "tampered"
	first.Context.Destination = "tampered"

	second, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "q", second.History[0].Question)
	assert.Empty(t, second.Context.Destination)
}

func TestRedisKeysCarryTTL(t *testing.T) {
	store, mr := newRedisTestStore(t)

	_, err := store.Mutate(context.Background(), "s1", func(d *Data) error { return nil })
	require.NoError(t, err)

	require.True(t, mr.Exists("session:s1"))
	assert.Greater(t, mr.TTL("session:s1"), time.Duration(0))
}

func TestNewStoreRejectsBadConfig(t *testing.T) {
	_, err := NewStore(StoreTypeRedis)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewStore(StoreType("cassandra"))
	assert.ErrorIs(t, err, ErrInvalidStoreType)
}
