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
	"solireserve/infras/kafka"
	kafkaMocks "solireserve/infras/kafka/mocks"
	"solireserve/infras/metrics"
	"solireserve/infras/otel/mocks"
	"solireserve/internal/domains/process/lifecycle"
	processMocks "solireserve/internal/domains/process/mocks"
	"solireserve/internal/domains/process/model"
	"solireserve/internal/domains/process/model/dto"
	"solireserve/internal/domains/process/service"
	"solireserve/shared/constant"
	"solireserve/shared/failure"
)

type fixture struct {
	repo    *processMocks.MockProcess
	kafka   *kafkaMocks.MockClient
	metrics *metrics.Metrics
	lc      *lifecycle.Lifecycle
	svc     service.Process
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	numbers, err := lifecycle.NewNumberGenerator()
	require.NoError(t, err)

	f := fixture{
		repo:    processMocks.NewMockProcess(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		metrics: metrics.New(prometheus.NewRegistry()),
		lc:      lifecycle.New(numbers),
	}

	cfg := &config.Config{}
	cfg.Kafka.Topic.ProcessEvents = "process-events"

	f.svc = service.New(f.repo, f.lc, f.kafka, cfg, f.metrics, mocks.NewOtel())

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")
}

func (f fixture) freshProcess(t *testing.T) model.Process {
	t.Helper()

	p, err := f.lc.Initiate(lifecycle.Reservation{ID: "res-1", Nights: 5, Price: decimal.NewFromInt(45)}, time.Now())
	require.NoError(t, err)

	p.Version = 1

	return p
}

func (f fixture) advance(t *testing.T, p model.Process, stage model.Stage, status string) model.Process {
	t.Helper()

	next, err := f.lc.Advance(p, lifecycle.Transition{Stage: stage, Status: status, Actor: "agent-0"}, time.Now())
	require.NoError(t, err)

	return next
}

func TestProcessService_Advance(t *testing.T) {
	t.Run("validates the voucher and publishes an event", func(t *testing.T) {
		f := newFixture(t)
		p := f.freshProcess(t)

		published := make(chan dto.AdvancedEvent, 1)

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(p, nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), gomock.Any(), 1).
			DoAndReturn(func(_ context.Context, mod map[string]any, _ any, _ int) (int64, error) {
				assert.Equal(t, model.DocumentValidated, mod[model.FieldVoucherStatus])
				assert.Equal(t, "agent-1", mod[model.FieldVoucherValidatedBy])
				assert.NotEmpty(t, mod[model.FieldOrderNumber])
				return 1, nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "process-events", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				event, ok := messages[0].Value.(dto.AdvancedEvent)
				assert.True(t, ok)
				assert.Equal(t, "res-1", messages[0].Key)
				published <- event
				return nil
			})

		res, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "valide", Version: 1}, "res-1")

		require.NoError(t, err)
		assert.Equal(t, 2, res.Version)
		assert.Equal(t, model.StagePurchaseOrder, res.CurrentStage)
		assert.Equal(t, model.StatusInProgress, res.Status)
		assert.Regexp(t, `^BC-[0-9A-Z]{10}$`, res.PurchaseOrder.Number)

		select {
		case event := <-published:
			assert.Equal(t, model.StageVoucher, event.Stage)
			assert.Equal(t, "valide", event.Status)
			assert.Equal(t, model.StatusInProgress, event.ProcessStatus)
			assert.Equal(t, "agent-1", event.Actor)
		case <-time.After(time.Second):
			t.Fatal("event was not published")
		}

		assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.TransitionsTotal.WithLabelValues("bon_hebergement", "valide")), 0)
	})

	t.Run("publish failure does not fail the transition", func(t *testing.T) {
		f := newFixture(t)
		p := f.freshProcess(t)

		done := make(chan struct{})

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(p, nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return(int64(1), nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, ...kafka.Message) error {
				defer close(done)
				return errors.New("broker down")
			})

		_, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "refuse", Version: 1}, "res-1")

		require.NoError(t, err)
		<-done
	})

	t.Run("invoice paid settles the process", func(t *testing.T) {
		f := newFixture(t)
		p := f.freshProcess(t)
		p = f.advance(t, p, model.StageVoucher, "valide")
		p = f.advance(t, p, model.StagePurchaseOrder, "valide")
		p = f.advance(t, p, model.StageInvoice, "generee")
		p = f.advance(t, p, model.StageInvoice, "envoyee")
		p.Version = 5

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(p, nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), gomock.Any(), 5).Return(int64(1), nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageInvoice, Status: "payee", Version: 5}, "res-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, res.Status)
		assert.True(t, res.Settled)
		assert.True(t, res.Invoice.Outstanding.IsZero())
	})

	tests := []struct {
		name     string
		prepare  func(f fixture, p model.Process) model.Process
		req      dto.AdvanceRequest
		wantCode int
		wantMsg  string
	}{
		{
			name:     "invoice before the order is validated",
			req:      dto.AdvanceRequest{Stage: model.StageInvoice, Status: "generee", Version: 1},
			wantCode: http.StatusConflict,
		},
		{
			name:     "invalid transition",
			req:      dto.AdvanceRequest{Stage: model.StageVoucher, Status: "expire", Version: 1},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overpayment",
			prepare: func(f fixture, p model.Process) model.Process {
				p = f.advance(t, p, model.StageVoucher, "valide")
				p = f.advance(t, p, model.StagePurchaseOrder, "valide")
				p = f.advance(t, p, model.StageInvoice, "generee")

				return f.advance(t, p, model.StageInvoice, "envoyee")
			},
			req: dto.AdvanceRequest{
				Stage:      model.StageInvoice,
				Status:     "payee",
				AmountPaid: func() *decimal.Decimal { d := decimal.NewFromInt(300); return &d }(),
				Version:    1,
			},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "amount paid exceeds invoice amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.freshProcess(t)

			if tt.prepare != nil {
				p = tt.prepare(f, p)
			}

			f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(p, nil)

			_, err := f.svc.Advance(userCtx(), tt.req, "res-1")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}

	t.Run("stale version", func(t *testing.T) {
		f := newFixture(t)
		p := f.freshProcess(t)

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(p, nil)
		f.repo.EXPECT().UpdateVersioned(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return(int64(0), nil)

		_, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "valide", Version: 1}, "res-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("request edited an older version", func(t *testing.T) {
		f := newFixture(t)

		current := f.advance(t, f.freshProcess(t), model.StageVoucher, "valide")
		current.Version = 2

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "refuse", Version: 1}, "res-1")

		assert.ErrorIs(t, err, failure.StaleVersionError)
	})

	t.Run("transition is checked against the primary row", func(t *testing.T) {
		f := newFixture(t)

		current := f.advance(t, f.freshProcess(t), model.StageVoucher, "valide")
		current.Version = 2

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "refuse", Version: 2}, "res-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetPrimary(gomock.Any(), gomock.Any()).Return(model.Process{}, nil)

		_, err := f.svc.Advance(userCtx(), dto.AdvanceRequest{Stage: model.StageVoucher, Status: "valide", Version: 1}, "res-404")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestProcessService_Get(t *testing.T) {
	f := newFixture(t)
	p := f.freshProcess(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(p, nil)

	res, err := f.svc.Get(userCtx(), "res-1")

	require.NoError(t, err)
	assert.Equal(t, model.StageVoucher, res.CurrentStage)
	assert.False(t, res.Settled)
	assert.True(t, decimal.NewFromInt(225).Equal(res.Invoice.Outstanding))
	assert.Regexp(t, `^BH-[0-9A-Z]{10}$`, res.Voucher.Number)
}

func TestProcessService_SetPriority(t *testing.T) {
	f := newFixture(t)
	p := f.freshProcess(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(p, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mod map[string]any, _ any) error {
			assert.Equal(t, model.PriorityUrgent, mod[model.FieldPriority])
			return nil
		})

	res, err := f.svc.SetPriority(userCtx(), dto.UpdatePriorityRequest{Priority: model.PriorityUrgent}, "res-1")

	require.NoError(t, err)
	assert.Equal(t, model.PriorityUrgent, res.Priority)
}
