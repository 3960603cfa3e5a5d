package nats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

func TestNATSHeaderCarrier(t *testing.T) {
	h := make(nats.Header)
	c := NATSHeaderCarrier(h)

	c.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
	assert.Equal(t, "00-abc-def-01", h.Get("traceparent"))
}

func TestNewMessage_CarriesTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	msg, err := newMessage(ctx, "catalog.order.placed", map[string]interface{}{"order_id": "AB12CD"})
	require.NoError(t, err)

	assert.Equal(t, "catalog.order.placed", msg.Subject)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", msg.Header.Get("traceparent"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "AB12CD", body["order_id"])
}

func TestNewMessage_MarshalError(t *testing.T) {
	_, err := newMessage(context.Background(), "x", map[string]interface{}{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(logger.NewNop())
	assert.NoError(t, p.Publish(context.Background(), "catalog.listing.saved", map[string]string{"listing_id": "p1"}))
	assert.Error(t, p.Publish(context.Background(), "x", func() {}))
}
