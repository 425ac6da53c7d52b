package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Trace (-vvv+)", LevelName(9))
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() {
		Logger.Sync()
	})

	require.NoError(t, Initialize(true, VerbosityInfo))
	assert.True(t, JSONOutput)
	require.NotNil(t, Logger)

	require.NoError(t, Initialize(false, VerbosityDebug))
	assert.False(t, JSONOutput)
	require.NotNil(t, Logger)

	// Wrappers must be safe to call in any state.
	Infow("test message", "key", "value")
	Debugf("debug %d", 1)
	Warn("warn")
}
