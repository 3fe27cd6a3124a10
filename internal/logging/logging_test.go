package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"ERROR", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, FormatJSON)
		require.NoError(t, err, tt.level)
		assert.True(t, logger.Core().Enabled(tt.want), tt.level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(tt.want-1), tt.level)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", FormatConsole)
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	logger, err := New("info", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
