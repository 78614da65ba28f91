package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", DefaultLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	lggr, err := New(zapcore.WarnLevel)
	require.NoError(t, err)
	require.NotNil(t, lggr)

	assert.False(t, lggr.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, lggr.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

func TestTestObserved(t *testing.T) {
	lggr, logs := TestObserved(t, zapcore.ErrorLevel)

	lggr.Infow("ignored")
	lggr.Errorw("upload failed", "status", 500)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "upload failed", entry.Message)
	assert.EqualValues(t, 500, entry.ContextMap()["status"])
}

func TestNop(t *testing.T) {
	lggr := Nop()
	lggr.Errorw("nothing happens")
	assert.False(t, lggr.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
