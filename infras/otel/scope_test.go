package otel

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"solireserve/shared/failure"
)

func recordSpan(t *testing.T, fn func(Scope)) tracetest.SpanStub {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))
	o := &otelImpl{TracerProvider: provider}

	_, scope := o.NewScope(context.Background(), "test", "span")
	fn(scope)
	scope.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	return spans[0]
}

func attributeValue(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server failure marks the span", func(t *testing.T) {
		span := recordSpan(t, func(s Scope) {
			s.TraceIfError(errors.New("connection refused"))
		})

		assert.Equal(t, codes.Error, span.Status.Code)
		status, ok := attributeValue(span, attrErrorStatus)
		require.True(t, ok)
		assert.Equal(t, int64(500), status.AsInt64())
		assert.Len(t, span.Events, 1)
	})

	t.Run("client failure is only recorded", func(t *testing.T) {
		span := recordSpan(t, func(s Scope) {
			s.TraceIfError(fmt.Errorf("get: %w", failure.NotFound("hotel not found")))
		})

		assert.NotEqual(t, codes.Error, span.Status.Code)
		status, ok := attributeValue(span, attrErrorStatus)
		require.True(t, ok)
		assert.Equal(t, int64(404), status.AsInt64())
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		span := recordSpan(t, func(s Scope) {
			s.TraceIfError(nil)
		})

		assert.Empty(t, span.Events)
		_, ok := attributeValue(span, attrErrorStatus)
		assert.False(t, ok)
	})
}

func TestScope_SetAttributes(t *testing.T) {
	id := "res-1"
	arrival := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	span := recordSpan(t, func(s Scope) {
		s.SetAttributes(map[string]any{
			"reservation.id": &id,
			"nights":         3,
			"price":          decimal.RequireFromString("56.50"),
			"arrival":        arrival,
			"active":         true,
		})
	})

	price, _ := attributeValue(span, "price")
	assert.Equal(t, "56.5", price.AsString())

	reservation, _ := attributeValue(span, "reservation.id")
	assert.Equal(t, "res-1", reservation.AsString())

	nights, _ := attributeValue(span, "nights")
	assert.Equal(t, int64(3), nights.AsInt64())

	day, _ := attributeValue(span, "arrival")
	assert.Equal(t, "2025-03-14T00:00:00Z", day.AsString())
}
