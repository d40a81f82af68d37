// Package session keeps each admin's form state between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admin-form/internal/cache"
	"admin-form/internal/form"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "adminform:"

// Store loads and saves form state by session key.
type Store interface {
	Load(ctx context.Context, key string) (form.State, error)
	Save(ctx context.Context, key string, st form.State) error
}

// Key 以管理員 ID 作為表單 session 的鍵
func Key(userID int) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}

// RedisStore 將表單狀態以 JSON 存入 Redis，每次寫入重設 TTL
type RedisStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisStore(c cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

// Load returns the saved state, or the default state when nothing is saved
// or the session expired.
func (s *RedisStore) Load(ctx context.Context, key string) (form.State, error) {
	raw, err := s.cache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.DefaultState(), nil
	}
	if err != nil {
		return form.State{}, fmt.Errorf("session Load: %w", err)
	}
	st := form.DefaultState()
	if err := json.Unmarshal(raw, &st); err != nil {
		return form.State{}, fmt.Errorf("session Load: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, st form.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session Save: %w", err)
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session Save: %w", err)
	}
	return nil
}

// Clear drops the saved state.
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("session Clear: %w", err)
	}
	return nil
}
