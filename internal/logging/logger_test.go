package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)
	assert.NotNil(t, Logger.logger)
}

func TestInitLogger_WithLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")

	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)
}

func TestInitLogger_WithInvalidLogLevel(t *testing.T) {
	// invalid levels fall back to the production default
	os.Setenv("LOG_LEVEL", "loud")
	defer os.Unsetenv("LOG_LEVEL")

	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)
}

func TestSafeLogger_NilLogger(t *testing.T) {
	logger := &SafeLogger{logger: nil}

	logger.Info("test")
	logger.Warn("test")
	logger.Debug("test")
	logger.Error("test")
	assert.NoError(t, logger.Sync())
}

func TestSafeLogger_NilSafeLogger(t *testing.T) {
	var logger *SafeLogger

	logger.Info("test")
	logger.Warn("test")
	logger.Debug("test")
	logger.Error("test")
}

func TestSafeLogger_With(t *testing.T) {
	logger := New(zap.NewNop())

	child := logger.With(zap.String("form", "sign_in"), zap.Int("attempt", 2))

	require.NotNil(t, child)
	assert.NotNil(t, child.logger)
	child.Info("submission started")
}

func TestSafeLogger_With_NilLogger(t *testing.T) {
	logger := &SafeLogger{logger: nil}

	assert.Equal(t, logger, logger.With(zap.String("key", "value")))
}

func TestSafeLogger_With_NilSafeLogger(t *testing.T) {
	var logger *SafeLogger

	assert.Nil(t, logger.With(zap.String("key", "value")))
}

func TestSafeLogger_Unwrap(t *testing.T) {
	zapLogger := zap.NewNop()
	logger := New(zapLogger)

	assert.Equal(t, zapLogger, logger.Unwrap())

	var empty *SafeLogger
	assert.NotNil(t, empty.Unwrap())
}

func TestGlobalLogger(t *testing.T) {
	// usable before InitLogger
	assert.NotNil(t, Logger)
	Logger.Info("test message")
}
