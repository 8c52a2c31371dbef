package observability

import (
	"testing"

	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInitTracer_Disabled(t *testing.T) {
	config.AppConfig = &config.Config{TracingEnabled: false}
	defer func() { config.AppConfig = nil }()

	InitTracer()

	assert.Nil(t, tracerProvider)
}

func TestInitTracer_NilConfig(t *testing.T) {
	config.AppConfig = nil

	InitTracer()

	assert.Nil(t, tracerProvider)
}

func TestInitTracer_EnabledAndShutdown(t *testing.T) {
	// the exporter connects lazily, so an unreachable endpoint is fine here
	config.AppConfig = &config.Config{TracingEnabled: true, TracingEndpoint: "localhost:4317"}
	defer func() { config.AppConfig = nil }()

	InitTracer()
	assert.NotNil(t, tracerProvider)

	ShutdownTracer()
	assert.Nil(t, tracerProvider)
}

func TestShutdownTracer_NoProvider(t *testing.T) {
	tracerProvider = nil

	ShutdownTracer()
}
