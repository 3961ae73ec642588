package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"solireserve/shared/cache"
	"solireserve/shared/cache/mocks"
)

func TestRemember(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the loader", func(t *testing.T) {
		c := mocks.NewMockRedisCache(gomock.NewController(t))
		c.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, value any) error {
				*value.(*int) = 7

				return nil
			})

		got, err := cache.Remember(ctx, c, "room:get:r1", 60, func(context.Context) (int, error) {
			t.Fatal("loader called on a hit")

			return 0, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("miss loads and saves", func(t *testing.T) {
		saved := make(chan any, 1)

		c := mocks.NewMockRedisCache(gomock.NewController(t))
		c.EXPECT().Get(gomock.Any(), "room:count", gomock.Any()).Return(errors.New("redis: nil"))
		c.EXPECT().Save(gomock.Any(), "room:count", 12, 60).DoAndReturn(
			func(_ context.Context, _ string, value any, _ int) error {
				saved <- value

				return nil
			})

		got, err := cache.Remember(ctx, c, "room:count", 60, func(context.Context) (int, error) {
			return 12, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 12, got)

		select {
		case value := <-saved:
			assert.Equal(t, 12, value)
		case <-time.After(time.Second):
			t.Fatal("value was not saved")
		}
	})

	t.Run("loader error is returned and nothing is saved", func(t *testing.T) {
		c := mocks.NewMockRedisCache(gomock.NewController(t))
		c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))

		_, err := cache.Remember(ctx, c, "room:count", 60, func(context.Context) (int, error) {
			return 0, errors.New("db down")
		})

		assert.EqualError(t, err, "db down")
	})
}
