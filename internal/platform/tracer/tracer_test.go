package tracer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"erigateway/internal/platform/config"
)

func TestInitDisabledKeepsGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown := Init(context.Background(), config.Tracing{Enabled: false}, logger)

	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitEnabledInstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown := Init(context.Background(), config.Tracing{Enabled: true, Endpoint: "127.0.0.1:4318"}, logger)

	assert.NotEqual(t, before, otel.GetTracerProvider())
	_ = shutdown(context.Background())
}
