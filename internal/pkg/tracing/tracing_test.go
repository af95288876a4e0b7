package tracing_test

import (
	"bytes"
	"testing"

	"mfgorders/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := tracing.Setup(tracing.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}

func TestSetup_ExportsSpansOnShutdown(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var buf bytes.Buffer
	shutdown, err := tracing.Setup(tracing.Config{
		Enabled:     true,
		ServiceName: "mfgorders-test",
		Environment: "test",
		Writer:      &buf,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("tracing_test").Start(t.Context(), "create_order")
	span.End()

	require.NoError(t, shutdown(t.Context()))
	assert.Contains(t, buf.String(), "create_order")
	assert.Contains(t, buf.String(), "mfgorders-test")
}
