package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStorage adapts a go-redis client to Fiber's Storage interface so the
// session middleware can keep sessions in Redis.
type SessionStorage struct {
	client *redis.Client
	prefix string
}

// NewSessionStorage returns a session storage backed by the given Redis client.
func NewSessionStorage(client *redis.Client) *SessionStorage {
	return &SessionStorage{client: client, prefix: "session:"}
}

// Get retrieves the raw session bytes for the given key.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores the raw session bytes under the given key with an expiry.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), s.prefix+key, val, exp).Err()
}

// Delete removes the session for the given key.
func (s *SessionStorage) Delete(key string) error {
	return s.client.Del(context.Background(), s.prefix+key).Err()
}

// Reset removes all sessions.
func (s *SessionStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the underlying client is owned by the server.
func (s *SessionStorage) Close() error {
	return nil
}
