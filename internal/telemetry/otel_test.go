package telemetry

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/blaisecz/health-trends/internal/config"
)

func TestInitTracer_DisabledWithoutLangfuse(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), &config.Config{}, "health-trends-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestInitTracer_Enabled(t *testing.T) {
	cfg := &config.Config{
		LangfuseBaseURL:   "http://localhost:3000/",
		LangfusePublicKey: "pk",
		LangfuseSecretKey: "sk",
		LangfuseEnv:       "test",
		TraceSampleRatio:  0.5,
	}
	shutdown, err := InitTracer(context.Background(), cfg, "health-trends-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	// Nothing was recorded, so shutdown does not reach the exporter.
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 0.25, SampleRatio(0.25))
	assert.Equal(t, 0.0, SampleRatio(0))
	assert.Equal(t, 1.0, SampleRatio(-1))
	assert.Equal(t, 1.0, SampleRatio(3))
}

func TestBasicAuth(t *testing.T) {
	decoded, err := base64.StdEncoding.DecodeString(basicAuth("pk-lf", "sk-lf"))
	require.NoError(t, err)
	assert.Equal(t, "pk-lf:sk-lf", string(decoded))
}
