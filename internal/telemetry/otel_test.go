package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "wikiflow-test", "", "test")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, shutdown(ctx))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	// Non-routable address; nothing is exported without spans
	shutdown, err := Setup(context.Background(), "wikiflow-test", "http://192.0.2.1:4318", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
