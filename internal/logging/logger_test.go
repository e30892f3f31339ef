package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "auth-service", "production", "info")

	logger.Info("login success", "employee_id", 7)
	logger.Debug("hidden")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "login success", record["msg"])
	assert.Equal(t, "auth-service", record["service"])
	assert.EqualValues(t, 7, record["employee_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_DevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "course-service", "development", "debug")

	logger.Debug("cache miss", "course_id", 3)

	assert.Contains(t, buf.String(), "msg=\"cache miss\"")
	assert.Contains(t, buf.String(), "service=course-service")
	assert.Contains(t, buf.String(), "course_id=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
