package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     LogConfig
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  DefaultLogConfig(),
		},
		{
			name: "console format",
			cfg:  LogConfig{Level: "debug", Format: "console", Output: "stderr"},
		},
		{
			name: "warn level",
			cfg:  LogConfig{Level: "warn", Format: "json", Output: "stdout"},
		},
		{
			name:    "invalid level",
			cfg:     LogConfig{Level: "loud", Format: "json", Output: "stdout"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)

			logger.Debug("debug message", String("key", "value"))
			logger.Info("info message", Int("count", 1))
			logger.Warn("warn message")
			logger.Error("error message", Bool("flag", true))
		})
	}
}

func TestLoggerWith(t *testing.T) {
	t.Parallel()

	logger := NopLogger()
	child := logger.With(String("component", "router"))

	require.NotNil(t, child)
	child.Info("message")
}

func TestLoggerWithContext(t *testing.T) {
	t.Parallel()

	logger := NopLogger()

	ctx := ContextWithRequestID(context.Background(), "req-1")
	require.NotNil(t, logger.WithContext(ctx))

	// Without a request ID the logger is returned unchanged.
	assert.Same(t, logger, logger.WithContext(context.Background()))
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
}
