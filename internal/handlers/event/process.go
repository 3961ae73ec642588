// Package event holds the kafka consumers run by cmd/worker.
package event

import (
	"context"

	"solireserve/config"
	"solireserve/infras/kafka"
	"solireserve/infras/metrics"
	"solireserve/infras/otel"
	"solireserve/internal/domains/process/model/dto"
	"solireserve/shared"
	"solireserve/shared/cache"
	"solireserve/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	resultOK      = "ok"
	resultSkipped = "skipped"
)

// ProcessHandler keeps cached reports in step with process transitions.
type ProcessHandler struct {
	client  kafka.Client
	cfg     *config.Config
	cache   cache.RedisCache
	metrics *metrics.Metrics
	otel    otel.Otel
}

func NewProcessHandler(client kafka.Client, cfg *config.Config, cache cache.RedisCache, metrics *metrics.Metrics, otel otel.Otel) *ProcessHandler {
	return &ProcessHandler{
		client:  client,
		cfg:     cfg,
		cache:   cache,
		metrics: metrics,
		otel:    otel,
	}
}

// Run consumes the process events topic until ctx is done.
func (h *ProcessHandler) Run(ctx context.Context) error {
	log.Info().Str("topic", h.cfg.Kafka.Topic.ProcessEvents).Msg("Starting process events consumer")

	return h.client.Consume(ctx, h.cfg.Kafka.ConsumerGroup, h.cfg.Kafka.Topic.ProcessEvents, h.Handle) //nolint:wrapcheck
}

// Handle invalidates the report caches for one event. Undecodable events are logged and skipped.
func (h *ProcessHandler) Handle(ctx context.Context, message kafkaGo.Message) error {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".ProcessAdvanced")
	defer scope.End()

	event, err := kafka.Decode[dto.AdvancedEvent](message)
	if err != nil {
		scope.TraceError(err)
		h.metrics.EventsConsumedTotal.WithLabelValues(message.Topic, resultSkipped).Inc()

		return nil
	}

	shared.InvalidateCaches(ctx, h.cache, constant.CacheKeyReportProcesses)
	shared.InvalidateCaches(ctx, h.cache, constant.CacheKeyReportSavings)

	log.Info().
		Str("reservation_id", event.ReservationID).
		Str("stage", string(event.Stage)).
		Str("status", event.Status).
		Str("process_status", string(event.ProcessStatus)).
		Msg("report caches invalidated after process transition")

	h.metrics.EventsConsumedTotal.WithLabelValues(message.Topic, resultOK).Inc()

	return nil
}

// Close releases the kafka readers and writers.
func (h *ProcessHandler) Close() error {
	return h.client.Close() //nolint:wrapcheck
}
