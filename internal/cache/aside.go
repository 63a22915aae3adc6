package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit, dest is populated from
// the cached JSON; on a miss, fetch is called and its result (already written
// into dest by the caller's closure) is stored under key with the given TTL.
// When Redis is unavailable it degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if uerr := json.Unmarshal(raw, dest); uerr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the fetch path.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis error other than a miss: serve from the source of truth.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if encoded, merr := json.Marshal(dest); merr == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}
