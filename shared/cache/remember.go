package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Remember returns the cached value of key. On a miss it calls load and, when load
// succeeds, stores the result for ttl seconds in the background. Cache failures never
// fail the read.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl int, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit")

		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	go func() {
		if err := c.Save(context.WithoutCancel(ctx), key, value, ttl); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save cache")
		}
	}()

	return value, nil
}
