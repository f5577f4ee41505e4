// api/logging/logger_test.go
package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogger(t *testing.T) {
	t.Run("NopBeforeInit", func(t *testing.T) {
		assert.NotPanics(t, func() { Info("not initialised yet") })
	})

	t.Run("InitLogger_CreatesFiles", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		InitLogger(dir)
		Info("hello")
		_ = Sync()

		_, err := os.Stat(filepath.Join(dir, "api.log"))
		require.NoError(t, err)
	})

	t.Run("SetLevel", func(t *testing.T) {
		assert.True(t, SetLevel("debug"))
		assert.Equal(t, zapcore.DebugLevel, Level())
		assert.False(t, SetLevel("loud"))
		assert.Equal(t, zapcore.DebugLevel, Level())
		SetLevel("info")
	})
}
