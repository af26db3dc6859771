package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared Redis client; nil when REDIS_ADDR is unset
// or the server was unreachable at startup.
var RedisClient *redis.Client

func InitRedis() {
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	})
}

// PingRedis disables RedisClient when the server does not answer.
func PingRedis() string {
	if RedisClient == nil {
		return "Redis not configured, cart snapshots disabled."
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient = nil
		return "Redis configured but not reachable, cart snapshots disabled."
	}
	return "Redis connection successful."
}
