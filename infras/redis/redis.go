package redis

import (
	"context"
	"net"
	"time"

	"solireserve/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultPoolSize = 10

// New connects to the primary redis used for read caches and the rate limiter.
// The ping is retried like the postgres connection before giving up.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	poolSize := config.Cache.Redis.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	client := goRedis.NewClient(&goRedis.Options{
		Addr:       net.JoinHostPort(primary.Host, primary.Port),
		Password:   primary.Password,
		DB:         primary.DB,
		PoolSize:   poolSize,
		ClientName: config.App.Name,
	})

	maxRetry := max(config.Cache.Redis.MaxRetry, 1)

	var err error

	for retry := range maxRetry {
		err = client.Ping(context.Background()).Err()
		if err == nil {
			log.Info().
				Int("db", primary.DB).
				Str("host", primary.Host).
				Str("port", primary.Port).
				Int("poolSize", poolSize).
				Msg("Connected to Redis")

			return client
		}

		log.Error().
			Err(err).
			Str("host", primary.Host).
			Int("retry", retry+1).
			Int("maxRetry", maxRetry).
			Msg("Failed to connect to Redis, retrying")

		time.Sleep(time.Duration(config.Cache.Redis.RetryWaitTime) * time.Second)
	}

	log.Fatal().Err(err).Msg("Failed to connect to Redis")
	panic(err)
}
