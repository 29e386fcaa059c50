package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, level string, emit func(Logger)) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	emit(NewWithWriter(level, false, &buf))

	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestZeroLoggerLevels(t *testing.T) {
	t.Run("info event", func(t *testing.T) {
		entry := captureLog(t, "info", func(l Logger) {
			l.Info().Str("method", "GET").Msg("request sent")
		})
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "GET", entry["method"])
		assert.Equal(t, "request sent", entry["message"])
	})

	t.Run("debug suppressed at info level", func(t *testing.T) {
		entry := captureLog(t, "info", func(l Logger) {
			l.Debug().Msg("hidden")
		})
		assert.Nil(t, entry)
	})

	t.Run("debug visible at debug level", func(t *testing.T) {
		entry := captureLog(t, "debug", func(l Logger) {
			l.Debug().Int("attempt", 2).Dur("wait", time.Second).Msg("retrying")
		})
		assert.Equal(t, "retrying", entry["message"])
		assert.EqualValues(t, 2, entry["attempt"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		entry := captureLog(t, "nope", func(l Logger) {
			l.Info().Msg("still works")
		})
		assert.Equal(t, "still works", entry["message"])
	})

	t.Run("error with err field", func(t *testing.T) {
		entry := captureLog(t, "info", func(l Logger) {
			l.Error().Err(errors.New("boom")).Msg("request failed")
		})
		assert.Equal(t, "boom", entry["error"])
	})
}

func TestWithFields(t *testing.T) {
	entry := captureLog(t, "info", func(l Logger) {
		l.WithFields(map[string]any{"client": "oneshot"}).Info().Msg("hello")
	})
	assert.Equal(t, "oneshot", entry["client"])
}

func TestSensitiveDataFilter(t *testing.T) {
	f := NewSensitiveDataFilter(nil)

	t.Run("masks sensitive string field", func(t *testing.T) {
		assert.Equal(t, "***", f.FilterString("Authorization", "Basic abc"))
		assert.Equal(t, "value", f.FilterString("X-Custom", "value"))
	})

	t.Run("masks sensitive header map entries", func(t *testing.T) {
		out := f.FilterValue("headers", map[string]string{
			"Authorization": "Basic abc",
			"Accept":        "application/json",
		})
		m, ok := out.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "***", m["Authorization"])
		assert.Equal(t, "application/json", m["Accept"])
	})

	t.Run("masks multi-value header map entries", func(t *testing.T) {
		out := f.FilterValue("headers", map[string][]string{
			"Cookie": {"a=1", "b=2"},
			"Accept": {"*/*"},
		})
		m, ok := out.(map[string][]string)
		require.True(t, ok)
		assert.Equal(t, []string{"***"}, m["Cookie"])
		assert.Equal(t, []string{"*/*"}, m["Accept"])
	})

	t.Run("custom mask value", func(t *testing.T) {
		custom := NewSensitiveDataFilter(&FilterConfig{
			SensitiveFields: []string{"password"},
			MaskValue:       "[redacted]",
		})
		assert.Equal(t, "[redacted]", custom.FilterString("PASSWORD", "hunter2"))
	})

	t.Run("filter applies through log event", func(t *testing.T) {
		entry := captureLog(t, "info", func(l Logger) {
			l.Info().Str("authorization", "Basic abc").Msg("request")
		})
		assert.Equal(t, "***", entry["authorization"])
	})
}
