package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"solireserve/config"
	"solireserve/infras/kafka"
	"solireserve/infras/metrics"
	"solireserve/infras/otel"
	"solireserve/internal/domains/process/lifecycle"
	"solireserve/internal/domains/process/model"
	"solireserve/internal/domains/process/model/dto"
	"solireserve/internal/domains/process/repository"
	"solireserve/shared"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	"solireserve/shared/failure"
	"solireserve/shared/logger"
	"solireserve/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	publishResultOK    = "ok"
	publishResultError = "error"
)

type Process interface {
	Get(ctx context.Context, reservationID string) (dto.ProcessResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProcessesResponse, error)
	Advance(ctx context.Context, req dto.AdvanceRequest, reservationID string) (dto.ProcessResponse, error)
	SetPriority(ctx context.Context, req dto.UpdatePriorityRequest, reservationID string) (dto.ProcessResponse, error)
}

type serviceImpl struct {
	repo      repository.Process
	lifecycle *lifecycle.Lifecycle
	kafka     kafka.Client
	cfg       *config.Config
	metrics   *metrics.Metrics
	otel      otel.Otel
}

func New(
	repo repository.Process,
	lifecycle *lifecycle.Lifecycle,
	kafka kafka.Client,
	cfg *config.Config,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Process {
	return &serviceImpl{
		repo:      repo,
		lifecycle: lifecycle,
		kafka:     kafka,
		cfg:       cfg,
		metrics:   metrics,
		otel:      otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, reservationID string) (res dto.ProcessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Process.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	process, err := s.load(ctx, reservationID)
	if err != nil {
		return res, err
	}

	res.FromModel(process)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProcessesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Process.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count processes")

		return res, fmt.Errorf("failed to count processes: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get processes")

		return res, fmt.Errorf("failed to get processes: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Advance(ctx context.Context, req dto.AdvanceRequest, reservationID string) (res dto.ProcessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Process.Advance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	process, err := s.loadForWrite(ctx, reservationID, req.Version)
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		constant.OtelReservationAttributeKey: reservationID,
		constant.OtelStageAttributeKey:       string(req.Stage),
		constant.OtelStageStatusAttributeKey: req.Status,
	})

	if req.AmountPaid != nil {
		scope.SetAttribute(constant.OtelAmountPaidAttributeKey, *req.AmountPaid)
	}

	now := timezone.Now()

	advanced, err := s.lifecycle.Advance(process, req.ToTransition(user), now)
	if err != nil {
		s.metrics.RejectionsTotal.WithLabelValues(string(req.Stage), rejectionReason(err)).Inc()

		logger.Ctx(ctx).Warn().Err(err).Str("reservation_id", reservationID).Msg("process transition rejected")

		return res, lifecycleFailure(err)
	}

	fields := stageColumns(advanced)
	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = user

	affected, err := s.repo.UpdateVersioned(ctx, fields, filterByReservation(reservationID), req.Version)
	if err != nil {
		log.Error().Err(err).Msg("failed to save process")

		return res, fmt.Errorf("failed to save process: %w", err)
	}

	if affected == 0 {
		return res, failure.StaleVersionError
	}

	advanced.Version = req.Version + 1
	advanced.ModifiedAt = now
	advanced.ModifiedBy = user

	s.metrics.TransitionsTotal.WithLabelValues(string(req.Stage), req.Status).Inc()

	event := dto.AdvancedEvent{
		ReservationID: reservationID,
		Stage:         req.Stage,
		Status:        req.Status,
		ProcessStatus: advanced.Status,
		Actor:         user,
		OccurredAt:    now,
	}

	go s.publish(context.WithoutCancel(ctx), event)

	res.FromModel(advanced)

	return res, nil
}

func (s *serviceImpl) SetPriority(ctx context.Context, req dto.UpdatePriorityRequest, reservationID string) (res dto.ProcessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Process.SetPriority")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	process, err := s.load(ctx, reservationID)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	fields := map[string]any{
		model.FieldPriority:      req.Priority,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, filterByReservation(reservationID)); err != nil {
		log.Error().Err(err).Msg("failed to update process priority")

		return res, fmt.Errorf("failed to update process priority: %w", err)
	}

	process.Priority = req.Priority
	process.ModifiedAt = now
	process.ModifiedBy = user

	res.FromModel(process)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, reservationID string) (model.Process, error) {
	process, err := s.repo.Get(ctx, filterByReservation(reservationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get process")

		return process, fmt.Errorf("failed to get process: %w", err)
	}

	if process.ReservationID == constant.Empty {
		return process, failure.NotFound("process not found") // nolint:wrapcheck
	}

	return process, nil
}

// loadForWrite reads the process from the write pool and refuses a base whose version differs
// from the one the client edited, so a transition is never validated against a lagging replica.
func (s *serviceImpl) loadForWrite(ctx context.Context, reservationID string, version int) (model.Process, error) {
	process, err := s.repo.GetPrimary(ctx, filterByReservation(reservationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get process")

		return process, fmt.Errorf("failed to get process: %w", err)
	}

	if process.ReservationID == constant.Empty {
		return process, failure.NotFound("process not found") // nolint:wrapcheck
	}

	if process.Version != version {
		return process, failure.StaleVersionError
	}

	return process, nil
}

// publish never fails the transition; the process row is already saved.
func (s *serviceImpl) publish(ctx context.Context, event dto.AdvancedEvent) {
	topic := s.cfg.Kafka.Topic.ProcessEvents

	err := s.kafka.SendMessages(ctx, topic, kafka.Message{Key: event.ReservationID, Value: event})
	if err != nil {
		s.metrics.EventsPublishedTotal.WithLabelValues(topic, publishResultError).Inc()
		log.Error().Err(err).Str("reservation_id", event.ReservationID).Msg("failed to publish process event")

		return
	}

	s.metrics.EventsPublishedTotal.WithLabelValues(topic, publishResultOK).Inc()
}

func filterByReservation(reservationID string) gDto.FilterGroup {
	return shared.FilterByID(reservationID, model.FieldReservationID, model.TableName)
}

// stageColumns returns every column a transition can touch.
func stageColumns(p model.Process) map[string]any {
	return map[string]any{
		model.FieldStatus:             p.Status,
		model.FieldVoucherStatus:      p.Voucher.Status,
		model.FieldVoucherValidatedAt: p.Voucher.ValidatedAt,
		model.FieldVoucherValidatedBy: p.Voucher.ValidatedBy,
		model.FieldVoucherComment:     p.Voucher.Comment,
		model.FieldOrderNumber:        p.PurchaseOrder.Number,
		model.FieldOrderStatus:        p.PurchaseOrder.Status,
		model.FieldOrderCreatedAt:     p.PurchaseOrder.CreatedAt,
		model.FieldOrderValidatedAt:   p.PurchaseOrder.ValidatedAt,
		model.FieldOrderValidatedBy:   p.PurchaseOrder.ValidatedBy,
		model.FieldOrderComment:       p.PurchaseOrder.Comment,
		model.FieldInvoiceNumber:      p.Invoice.Number,
		model.FieldInvoiceStatus:      p.Invoice.Status,
		model.FieldInvoiceGeneratedAt: p.Invoice.GeneratedAt,
		model.FieldInvoiceSentAt:      p.Invoice.SentAt,
		model.FieldInvoicePaidAt:      p.Invoice.PaidAt,
		model.FieldInvoiceAmountPaid:  p.Invoice.AmountPaid,
		model.FieldInvoiceComment:     p.Invoice.Comment,
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrStageOutOfOrder):
		return "out_of_order"
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, lifecycle.ErrOverpaymentRejected):
		return "overpayment"
	case errors.Is(err, lifecycle.ErrPartialPayment):
		return "partial_payment"
	default:
		return "invalid_request"
	}
}

func lifecycleFailure(err error) error {
	msg := strings.TrimPrefix(err.Error(), "lifecycle: ")

	switch {
	case errors.Is(err, lifecycle.ErrStageOutOfOrder):
		return failure.Conflict(strings.TrimPrefix(msg, "stage out of order: ")) // nolint:wrapcheck
	case errors.Is(err, lifecycle.ErrOverpaymentRejected):
		return failure.Unprocessable("amount paid exceeds invoice amount") // nolint:wrapcheck
	default:
		return failure.BadRequestFromString(msg) // nolint:wrapcheck
	}
}
