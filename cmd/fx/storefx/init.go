package storefx

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"tabiplan/internal/repositories"
	mem "tabiplan/pkg/memcache"
)

var Module = fx.Provide(
	NewPlanRepository,
	NewFavoritesRepository,
	NewHistoryRepository,
	NewSessionStore,
)

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dataDir() string {
	return getEnvWithDefault("DATA_DIR", "./data")
}

// NewPlanRepository picks the plan store backend. STORE_BACKEND=redis
// shares saved plans across instances; the default file store keeps a
// single-node deployment dependency free.
func NewPlanRepository(lc fx.Lifecycle) repositories.PlanRepository {
	if getEnvWithDefault("STORE_BACKEND", "file") != "redis" {
		return repositories.NewFilePlanRepository(dataDir())
	}

	client := redis.NewClient(&redis.Options{
		Addr: getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return err
			}
			log.Println("Connected to redis plan store")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return repositories.NewRedisPlanRepository(client)
}

func NewFavoritesRepository() repositories.FavoritesRepository {
	return repositories.NewFileFavoritesRepository(dataDir())
}

func NewHistoryRepository() repositories.HistoryRepository {
	return repositories.NewFileHistoryRepository(dataDir())
}

func NewSessionStore() mem.SessionStore {
	return mem.NewSessions()
}
