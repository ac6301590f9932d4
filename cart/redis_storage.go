package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps cart state in Redis as JSON, keyed per user, with a TTL
// so abandoned carts eventually expire.
type RedisStorage struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStorage returns a Redis-backed cart storage with a 7 day TTL.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{Client: client, TTL: 7 * 24 * time.Hour}
}

func cartKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

func (r *RedisStorage) Load(ctx context.Context, key string) (*State, error) {
	raw, err := r.Client.Get(ctx, cartKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", key, err)
	}
	return &state, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", key, err)
	}
	if err := r.Client.Set(ctx, cartKey(key), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", key, err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, cartKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", key, err)
	}
	return nil
}
