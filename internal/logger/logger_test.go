package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("defaults to info", func(t *testing.T) {
		log, err := New("")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("debug level", func(t *testing.T) {
		log, err := New("debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
		assert.Same(t, log, zap.L(), "globals are replaced")
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New("loud")
		assert.Error(t, err)
	})
}
