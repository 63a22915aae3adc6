package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() { SetClient(nil) })
	return rdb
}

type feedEntry struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func TestAsideMissFetchesAndCaches(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	var got []feedEntry
	err := Aside(ctx, "feed:test", &got, time.Minute, func() error {
		fetches++
		got = []feedEntry{{ID: 1, Text: "hello"}}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Len(t, got, 1)

	// Second read comes from the cache.
	var again []feedEntry
	err = Aside(ctx, "feed:test", &again, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, got, again)

	exists, err := rdb.Exists(ctx, "feed:test").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, exists)
}

func TestAsideDropsCorruptEntry(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, rdb.Set(ctx, "feed:test", "{not json", time.Minute).Err())

	var got []feedEntry
	err := Aside(ctx, "feed:test", &got, time.Minute, func() error {
		got = []feedEntry{{ID: 2, Text: "fresh"}}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAsideWithoutRedisCallsFetch(t *testing.T) {
	SetClient(nil)

	fetched := false
	var got []feedEntry
	err := Aside(context.Background(), "feed:test", &got, time.Minute, func() error {
		fetched = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, fetched)
}
