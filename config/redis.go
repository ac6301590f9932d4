package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis initializes the Redis client used for cart persistence. Returns
// false when no address is configured, so callers can fall back to the
// in-memory cart storage.
func InitRedis() bool {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		return false
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	return true
}
