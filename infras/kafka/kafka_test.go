package kafka_test

import (
	"context"
	"testing"

	"solireserve/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type advanced struct {
	ReservationID string `json:"reservation_id"`
	Stage         string `json:"stage"`
}

func TestToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "res-1", Value: advanced{ReservationID: "res-1", Stage: "facture"}}

	out, err := msg.ToKafkaMessage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []byte("res-1"), out.Key)
	assert.JSONEq(t, `{"reservation_id":"res-1","stage":"facture"}`, string(out.Value))
	assert.False(t, out.Time.IsZero())

	decoded, err := kafka.Decode[advanced](out)
	require.NoError(t, err)
	assert.Equal(t, "facture", decoded.Stage)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := kafka.Decode[advanced](kafkaGo.Message{Value: []byte("{not json")})

	assert.Error(t, err)
}

func TestTraceContextPropagation(t *testing.T) {
	previous := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(previous) })

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	msg := kafka.Message{Key: "res-1", Value: advanced{ReservationID: "res-1"}}

	out, err := msg.ToKafkaMessage(ctx)
	require.NoError(t, err)
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "traceparent", out.Headers[0].Key)

	extracted := trace.SpanContextFromContext(kafka.Extract(context.Background(), &out))

	assert.Equal(t, traceID, extracted.TraceID())
	assert.Equal(t, spanID, extracted.SpanID())
	assert.True(t, extracted.IsRemote())
}
