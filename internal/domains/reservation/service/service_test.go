package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"solireserve/config"
	"solireserve/infras/metrics"
	"solireserve/infras/otel/mocks"
	conventionMocks "solireserve/internal/domains/convention/mocks"
	convModel "solireserve/internal/domains/convention/model"
	operatorMocks "solireserve/internal/domains/operator/mocks"
	"solireserve/internal/domains/process/lifecycle"
	processModel "solireserve/internal/domains/process/model"
	reservationMocks "solireserve/internal/domains/reservation/mocks"
	"solireserve/internal/domains/reservation/model"
	"solireserve/internal/domains/reservation/model/dto"
	"solireserve/internal/domains/reservation/service"
	roomMocks "solireserve/internal/domains/room/mocks"
	roomModel "solireserve/internal/domains/room/model"
	cacheMocks "solireserve/shared/cache/mocks"
	"solireserve/shared/constant"
	"solireserve/shared/failure"
	"solireserve/shared/timezone"
)

type fixture struct {
	repo        *reservationMocks.MockReservation
	rooms       *roomMocks.MockRoom
	operators   *operatorMocks.MockOperator
	conventions *conventionMocks.MockConvention
	cache       *cacheMocks.MockRedisCache
	metrics     *metrics.Metrics
	svc         service.Reservation
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	numbers, err := lifecycle.NewNumberGenerator()
	require.NoError(t, err)

	f := fixture{
		repo:        reservationMocks.NewMockReservation(ctrl),
		rooms:       roomMocks.NewMockRoom(ctrl),
		operators:   operatorMocks.NewMockOperator(ctrl),
		conventions: conventionMocks.NewMockConvention(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		metrics:     metrics.New(prometheus.NewRegistry()),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Tariff.DefaultAxis = "per_room"

	f.svc = service.New(f.repo, f.rooms, f.operators, f.conventions, lifecycle.New(numbers), cfg, f.cache, f.metrics, mocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func storedRoom() roomModel.Room {
	return roomModel.Room{
		ID:            "room-1",
		HotelID:       "hotel-1",
		Number:        "101",
		RoomType:      roomModel.RoomTypeStandard,
		Capacity:      3,
		StandardPrice: dec("70"),
		Active:        true,
	}
}

func activeConvention(id string) convModel.Convention {
	return convModel.Convention{
		ID:              id,
		OperatorID:      "op-1",
		HotelID:         "hotel-1",
		RoomType:        roomModel.RoomTypeStandard,
		StandardPrice:   dec("70"),
		NegotiatedPrice: dec("63"),
		Reduction:       10,
		StartDate:       timezone.Now().AddDate(0, -1, 0),
		Status:          convModel.StatusActive,
		Version:         1,
	}
}

func createRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		Guest:         "Famille Martin",
		RoomID:        "room-1",
		OperatorID:    "op-1",
		ArrivalDate:   "2026-03-10",
		DepartureDate: "2026-03-13",
		Guests:        2,
	}
}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           func() dto.CreateReservationRequest
		setupMock     func(f fixture)
		wantCode      int
		wantPrice     string
		wantSavings   string
		wantInvoice   string
		wantConv      string
		wantFallbacks map[string]float64
	}{
		{
			name: "prices with the flat negotiated price",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]convModel.Convention{activeConvention("conv-1")}, nil)
			},
			wantPrice:   "63",
			wantSavings: "21",
			wantInvoice: "189",
			wantConv:    "conv-1",
		},
		{
			name: "per person monthly override for the arrival month",
			req: func() dto.CreateReservationRequest {
				req := createRequest()
				req.Axis = "per_person"

				return req
			},
			setupMock: func(f fixture) {
				conv := activeConvention("conv-1")
				conv.MonthlyTariffs.Set(convModel.March, convModel.MonthlyRate{PerPerson: decPtr("30")})

				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]convModel.Convention{conv}, nil)
			},
			wantPrice:   "60",
			wantSavings: "30",
			wantInvoice: "180",
			wantConv:    "conv-1",
		},
		{
			name: "skips a convention that has not started yet",
			req:  createRequest,
			setupMock: func(f fixture) {
				future := activeConvention("conv-future")
				future.StartDate = timezone.Now().AddDate(0, 1, 0)
				future.NegotiatedPrice = dec("50")

				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]convModel.Convention{future, activeConvention("conv-1")}, nil)
			},
			wantPrice:   "63",
			wantSavings: "21",
			wantInvoice: "189",
			wantConv:    "conv-1",
		},
		{
			name: "falls back to the standard price without a convention",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantPrice:     "70",
			wantSavings:   "0",
			wantInvoice:   "210",
			wantFallbacks: map[string]float64{"no_convention": 1},
		},
		{
			name: "falls back to the standard price when no convention applies",
			req:  createRequest,
			setupMock: func(f fixture) {
				expired := activeConvention("conv-1")
				end := timezone.Now().AddDate(0, 0, -2)
				expired.EndDate = &end

				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]convModel.Convention{expired}, nil)
			},
			wantPrice:     "70",
			wantSavings:   "0",
			wantInvoice:   "210",
			wantFallbacks: map[string]float64{"not_applicable": 1},
		},
		{
			name: "departure before arrival",
			req: func() dto.CreateReservationRequest {
				req := createRequest()
				req.DepartureDate = "2026-03-09"

				return req
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "same day departure",
			req: func() dto.CreateReservationRequest {
				req := createRequest()
				req.DepartureDate = req.ArrivalDate

				return req
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room not found",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive room",
			req:  createRequest,
			setupMock: func(f fixture) {
				room := storedRoom()
				room.Active = false

				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "party larger than the room",
			req: func() dto.CreateReservationRequest {
				req := createRequest()
				req.Guests = 4

				return req
			},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "operator not found",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "transaction failure",
			req:  createRequest,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
				f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().InsertWithProcess(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			var stored processModel.Process

			if tt.wantCode == 0 {
				f.repo.EXPECT().InsertWithProcess(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, res model.Reservation, p processModel.Process) error {
						assert.Equal(t, res.ID, p.ReservationID)
						stored = p

						return nil
					})
			}

			res, err := f.svc.Create(userCtx(), tt.req())
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 3, res.Nights)
			assert.Equal(t, model.StatusConfirmed, res.Status)
			assert.Equal(t, "test-user-id", res.CreatedBy)
			assert.True(t, dec(tt.wantPrice).Equal(res.Price), "prix %s", res.Price)
			assert.True(t, dec("70").Equal(res.StandardPrice))
			assert.True(t, dec(tt.wantSavings).Equal(res.Savings), "economie %s", res.Savings)
			assert.True(t, dec(tt.wantInvoice).Equal(res.Total), "total %s", res.Total)

			if tt.wantConv == "" {
				assert.Nil(t, res.ConventionID)
			} else {
				require.NotNil(t, res.ConventionID)
				assert.Equal(t, tt.wantConv, *res.ConventionID)
			}

			assert.Equal(t, processModel.DocumentPending, stored.Voucher.Status)
			assert.NotEmpty(t, stored.Voucher.Number)
			assert.Equal(t, processModel.PriorityNormal, stored.Priority)
			assert.Equal(t, 1, stored.Version)
			assert.True(t, dec(tt.wantInvoice).Equal(stored.Invoice.Amount))
			assert.True(t, dec(tt.wantInvoice).Equal(stored.PurchaseOrder.Amount))

			for reason, want := range tt.wantFallbacks {
				assert.InDelta(t, want, testutil.ToFloat64(f.metrics.ConventionFallbacksTotal.WithLabelValues(reason)), 0)
			}
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	t.Run("computes the stay total", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{
			ID:     "res-1",
			Nights: 4,
			Price:  dec("55.50"),
			Status: model.StatusInProgress,
		}, nil)

		res, err := f.svc.Get(userCtx(), "res-1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, dec("222").Equal(res.Total))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Get(userCtx(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Status
		next      model.Status
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:    "confirmed to in progress",
			current: model.StatusConfirmed,
			next:    model.StatusInProgress,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ any) error {
						assert.Equal(t, model.StatusInProgress, mod[model.FieldStatus])
						assert.Equal(t, "test-user-id", mod[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "cannot go back to confirmed",
			current:   model.StatusFinished,
			next:      model.StatusConfirmed,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:      "same status is not a move",
			current:   model.StatusInProgress,
			next:      model.StatusInProgress,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(model.Reservation{ID: "res-1", Status: tt.current}, nil)
			tt.setupMock(f)

			err := f.svc.UpdateStatus(userCtx(), dto.UpdateStatusRequest{Status: tt.next}, "res-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		err := f.svc.UpdateStatus(userCtx(), dto.UpdateStatusRequest{Status: model.StatusInProgress}, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_Create_SavingsBasis(t *testing.T) {
	tests := []struct {
		name         string
		axis         string
		standard     string
		wantPrice    string
		wantStandard string
		wantSavings  string
	}{
		{
			name:         "per room uses the convention standard price",
			axis:         "per_room",
			standard:     "80",
			wantPrice:    "63",
			wantStandard: "80",
			wantSavings:  "51",
		},
		{
			name:         "per person party dearer than the room rate saves nothing",
			axis:         "per_person",
			standard:     "70",
			wantPrice:    "126",
			wantStandard: "70",
			wantSavings:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			conv := activeConvention("conv-1")
			conv.StandardPrice = dec(tt.standard)

			f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
			f.operators.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.conventions.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]convModel.Convention{conv}, nil)
			f.repo.EXPECT().InsertWithProcess(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			req := createRequest()
			req.Axis = tt.axis

			res, err := f.svc.Create(userCtx(), req)
			time.Sleep(10 * time.Millisecond)

			require.NoError(t, err)
			assert.True(t, dec(tt.wantPrice).Equal(res.Price), "prix %s", res.Price)
			assert.True(t, dec(tt.wantStandard).Equal(res.StandardPrice), "prix_standard %s", res.StandardPrice)
			assert.True(t, dec(tt.wantSavings).Equal(res.Savings), "economie %s", res.Savings)
		})
	}
}
