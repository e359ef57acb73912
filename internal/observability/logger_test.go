// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jbro885/kosmonaut/internal/config"
)

// captureStdout redirects stdout into a buffer for the duration of a test.
// The returned cleanup must run before the buffer is read.
func captureStdout(t *testing.T) (*bytes.Buffer, func()) {
	t.Helper()
	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	return &buf, func() {
		w.Close()
		<-done
		os.Stdout = original
	}
}

// The logger is a global singleton, so every test resets it first.
func resetGlobalLogger() {
	once = sync.Once{}
	globalLogger.Store(nil)
}

func TestInitializeLogger(t *testing.T) {
	t.Run("console format colorizes the level", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureStdout(t)

		InitializeLogger(config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "layout-test",
			Colors:      config.ColorConfig{Info: "green"},
		})
		GetLogger().Info("laying out test document")
		Sync()
		cleanup()

		output := buf.String()
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "laying out test document")
		assert.Contains(t, output, colorGreen)
		assert.Contains(t, output, colorReset)
	})

	t.Run("json format emits structured entries", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureStdout(t)

		InitializeLogger(config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "kosmonaut",
		})
		GetLogger().Warn("viewport resized", zap.Float64("width", 1280))
		Sync()
		cleanup()

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output should be valid JSON")
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "kosmonaut", entry["logger"])
		assert.Equal(t, "viewport resized", entry["msg"])
		assert.Equal(t, 1280.0, entry["width"])
	})

	t.Run("writes to the configured log file", func(t *testing.T) {
		resetGlobalLogger()
		logFile := t.TempDir() + "/kosmonaut.log"

		InitializeLogger(config.LoggerConfig{
			Level:   "debug",
			Format:  "json",
			LogFile: logFile,
			MaxSize: 1,
		})
		GetLogger().Error("style tree build failed")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "style tree build failed")
	})

	t.Run("second initialization is ignored", func(t *testing.T) {
		resetGlobalLogger()
		buf, cleanup := captureStdout(t)

		InitializeLogger(config.LoggerConfig{Level: "info", ServiceName: "first"})
		first := GetLogger()
		InitializeLogger(config.LoggerConfig{Level: "debug", ServiceName: "second"})
		second := GetLogger()

		assert.Equal(t, first, second)
		second.Info("still the first logger")
		Sync()
		cleanup()

		assert.True(t, strings.Contains(buf.String(), "first"))
		assert.False(t, strings.Contains(buf.String(), "second"))
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("returns a fallback before initialization", func(t *testing.T) {
		resetGlobalLogger()
		require.NotNil(t, GetLogger())
	})

	t.Run("returns the stored logger after initialization", func(t *testing.T) {
		resetGlobalLogger()
		InitializeLogger(config.LoggerConfig{Level: "info", ServiceName: "stored"})
		assert.Equal(t, globalLogger.Load(), GetLogger())
	})
}
