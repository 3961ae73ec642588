package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"solireserve/config"
	"solireserve/infras/otel/mocks"
	hotelMocks "solireserve/internal/domains/hotel/mocks"
	"solireserve/internal/domains/hotel/model"
	"solireserve/internal/domains/hotel/model/dto"
	"solireserve/internal/domains/hotel/service"
	cacheMocks "solireserve/shared/cache/mocks"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
)

func setup(t *testing.T) (*hotelMocks.MockHotel, *cacheMocks.MockRedisCache, service.Hotel) {
	ctrl := gomock.NewController(t)

	repo := hotelMocks.NewMockHotel(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, cache, service.New(repo, cfg, cache, mocks.NewOtel())
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestCreate(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h model.Hotel) error {
			assert.NotEmpty(t, h.ID)
			assert.Equal(t, "Hotel du Port", h.Name)
			assert.True(t, h.Active)
			assert.Equal(t, "test-user-id", h.CreatedBy)

			return nil
		})

		err := svc.Create(userCtx(), dto.CreateHotelRequest{Name: "Hotel du Port", Address: "1 quai", City: "Marseille", Stars: 2})

		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := svc.Create(userCtx(), dto.CreateHotelRequest{Name: "Hotel du Port"})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGetAll(t *testing.T) {
	t.Run("cache miss reads the repository", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Hotel{
			{ID: "h1", Name: "A"},
			{ID: "h2", Name: "B"},
		}, nil)

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, res.Hotels, 2)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		_, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			value.(*dto.GetHotelsResponse).TotalData = 7

			return nil
		})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 7, res.TotalData)
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{ID: "h1", Name: "Hotel du Port", Stars: 3}, nil)

		res, err := svc.Get(context.Background(), "h1")

		require.NoError(t, err)
		assert.Equal(t, "Hotel du Port", res.Name)
		assert.Equal(t, 3, res.Stars)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		repo, cache, svc := setup(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Hotel{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Lyon", fields[model.FieldCity])
				assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(userCtx(), dto.UpdateHotelRequest{City: "Lyon"}, "h1")

		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(userCtx(), dto.UpdateHotelRequest{City: "Lyon"}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "h1"))
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("still referenced", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(fmt.Errorf("delete: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))

		err := svc.Delete(context.Background(), "h1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}
