package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Writer: &buf})

	WithComponent("auth").Info("login", "user_id", 7)
	WithComponent("auth").Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "login", entry["msg"])
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestInit_TextWithError(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Writer: &buf})

	Get().Error("failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "boom")
}
