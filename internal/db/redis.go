package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/utils"
)

// NewRedisClient connects to the leaderboard cache. Redis is optional
// infrastructure: when REDIS_ADDR is unset or the ping fails, the caller gets
// nil and the leaderboard falls back to Postgres.
func NewRedisClient(logg *logger.Logger) *redis.Client {
	addr := utils.GetEnv("REDIS_ADDR", "", logg)
	if addr == "" {
		logg.Info("REDIS_ADDR not set, leaderboard cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetEnv("REDIS_PASSWORD", "", logg),
		DB:       utils.GetEnvAsInt("REDIS_DB", 0, logg),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logg.Warn("Redis ping failed, leaderboard cache disabled", "error", err)
		return nil
	}
	return client
}
