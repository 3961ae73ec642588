package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepCtx(t *testing.T) {
	t.Run("waits out the backoff", func(t *testing.T) {
		start := time.Now()

		assert.True(t, sleepCtx(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("returns early when the consumer stops", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()

		assert.False(t, sleepCtx(ctx, time.Minute))
		assert.Less(t, time.Since(start), time.Second)
	})
}
