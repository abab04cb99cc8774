package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-web/config"
)

// OpenRedis builds the session-store client. Connections are lazy; an
// unreachable Redis at startup is logged, not fatal.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[warn] operation=open_redis message=redis unreachable at startup error=%v", err)
	}

	return client
}
