package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"solireserve/config"
	"solireserve/infras/otel/mocks"
	s3Mocks "solireserve/infras/s3/mocks"
	hotelMocks "solireserve/internal/domains/hotel/mocks"
	roomMocks "solireserve/internal/domains/room/mocks"
	"solireserve/internal/domains/room/model"
	"solireserve/internal/domains/room/model/dto"
	"solireserve/internal/domains/room/service"
	cacheMocks "solireserve/shared/cache/mocks"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
)

const bucket = "solireserve-assets"

type fixture struct {
	repo   *roomMocks.MockRoom
	hotels *hotelMocks.MockHotel
	s3     *s3Mocks.MockS3
	svc    service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   roomMocks.NewMockRoom(ctrl),
		hotels: hotelMocks.NewMockHotel(ctrl),
		s3:     s3Mocks.NewMockS3(ctrl),
	}

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = bucket

	f.svc = service.New(f.repo, f.hotels, cfg, cache, mocks.NewOtel(), f.s3)

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func createRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		HotelID:       "4b0f8a52-4c1e-4d5e-9a43-4f7e9c0e1a11",
		Number:        "101",
		RoomType:      model.RoomTypeStandard,
		Capacity:      2,
		StandardPrice: decimal.NewFromInt(70),
	}
}

func TestCreate(t *testing.T) {
	t.Run("hotel not found", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Create(userCtx(), createRequest())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("without image", func(t *testing.T) {
		f := newFixture(t)

		f.hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumberTaken(gomock.Any(), createRequest().HotelID, "101", "").Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
			assert.Equal(t, "101", room.Number)
			assert.True(t, room.StandardPrice.Equal(decimal.NewFromInt(70)))
			assert.Empty(t, room.Image)
			assert.True(t, room.Active)

			return nil
		})

		require.NoError(t, f.svc.Create(userCtx(), createRequest()))
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("duplicate number removes the uploaded image", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.Image = &multipart.FileHeader{Filename: "Room.JPG"}

		var uploaded string

		f.hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumberTaken(gomock.Any(), createRequest().HotelID, "101", "").Return(false, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), bucket, model.EntityName, gomock.Any(), req.Image, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				uploaded = fileName
				assert.Contains(t, fileName, ".jpg")

				return "https://cdn.example.org/room/" + fileName, nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
		f.s3.EXPECT().DeleteFile(gomock.Any(), bucket, model.EntityName, gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _, objectName string) error {
				assert.Equal(t, uploaded, objectName)

				return nil
			})

		err := f.svc.Create(userCtx(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
	t.Run("number taken before any upload", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.Image = &multipart.FileHeader{Filename: "room.png"}

		f.hotels.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().NumberTaken(gomock.Any(), req.HotelID, "101", "").Return(true, nil)

		err := f.svc.Create(userCtx(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestGet(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUpdate(t *testing.T) {
	t.Run("new image replaces the old one", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: "room-1", Image: "https://cdn.example.org/room/old.png"}
		req := dto.UpdateRoomRequest{Image: &multipart.FileHeader{Filename: "new.png"}}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), bucket, model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.org/room/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().ObjectNameFromURL(model.EntityName, current.Image).Return("old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), bucket, model.EntityName, "old.png").Return(nil)

		require.NoError(t, f.svc.Update(userCtx(), req, "room-1"))
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Update(userCtx(), dto.UpdateRoomRequest{Number: "102"}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("renumbering checks the other rooms of the hotel", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: "room-1", HotelID: "hotel-1", Number: "101"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().NumberTaken(gomock.Any(), "hotel-1", "102", "room-1").Return(true, nil)

		err := f.svc.Update(userCtx(), dto.UpdateRoomRequest{Number: "102"}, "room-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("same number skips the check", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: "room-1", HotelID: "hotel-1", Number: "101"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "101", fields[model.FieldNumber])

				return nil
			})

		require.NoError(t, f.svc.Update(userCtx(), dto.UpdateRoomRequest{Number: "101"}, "room-1"))
		time.Sleep(10 * time.Millisecond)
	})
}

func TestDelete(t *testing.T) {
	t.Run("room with reservations", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldImage).Return(model.Room{ID: "room-1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(userCtx(), "room-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deletes the stored image", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldImage).
			Return(model.Room{ID: "room-1", Image: "https://cdn.example.org/room/a.png"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().ObjectNameFromURL(model.EntityName, "https://cdn.example.org/room/a.png").Return("a.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), bucket, model.EntityName, "a.png").Return(nil)

		require.NoError(t, f.svc.Delete(userCtx(), "room-1"))
		time.Sleep(20 * time.Millisecond)
	})
}
