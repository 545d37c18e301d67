package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelsPerEnv(t *testing.T) {
	dev, err := New("dashboard-service", "local")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New("dashboard-service", "prod")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
}

func TestComponent(t *testing.T) {
	l, err := New("dashboard-service", "prod")
	require.NoError(t, err)
	assert.NotNil(t, Component(l, "ws"))
}
