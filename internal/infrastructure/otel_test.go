package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestDefaultOTelConfig(t *testing.T) {
	cfg := DefaultOTelConfig()

	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.True(t, cfg.EnableTracing)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestInitializeOTel_Disabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = false
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, discardLogger())

	require.NoError(t, err)
	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "jaeger"

	_, err := InitializeOTel(cfg, discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestCreateBusinessMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	metrics, err := CreateBusinessMetrics(meter)

	require.NoError(t, err)
	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.HTTPRequestDuration)
	assert.NotNil(t, metrics.DatasetLoadsTotal)
	assert.NotNil(t, metrics.DatasetRowsDropped)
	assert.NotNil(t, metrics.DashboardRendersTotal)
	assert.NotNil(t, metrics.DashboardErrors)
	assert.NotNil(t, metrics.SystemUptime)
}

func TestRecordDatasetLoadMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := CreateBusinessMetrics(meter)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		RecordDatasetLoadMetrics(context.Background(), metrics, 1000, 12, 50*time.Millisecond, nil)
		RecordDatasetLoadMetrics(context.Background(), metrics, 0, 0, time.Millisecond, fmt.Errorf("load failed"))
		RecordDatasetLoadMetrics(context.Background(), nil, 0, 0, 0, nil)
	})
}

func TestRecordDashboardRenderMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := CreateBusinessMetrics(meter)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		RecordDashboardRenderMetrics(context.Background(), metrics, "company", 10*time.Millisecond, nil)
		RecordDashboardRenderMetrics(context.Background(), metrics, "drivers", time.Millisecond, fmt.Errorf("render failed"))
		RecordDashboardRenderMetrics(context.Background(), nil, "restaurants", 0, nil)
	})
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestGenerateTraceID(t *testing.T) {
	a := GenerateTraceID()
	b := GenerateTraceID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
