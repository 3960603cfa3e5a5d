package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	tp := InitTracer("catalog-service", "", logger.NewNop())
	require.NotNil(t, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewResource_CarriesServiceIdentity(t *testing.T) {
	res, err := newResource("catalog-service")
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "catalog-service", attrs["service.name"])
	assert.Equal(t, "marketplace", attrs["service.namespace"])
}
