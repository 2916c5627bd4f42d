package grasp_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/phanxgames/grasp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := grasp.NewLogger(grasp.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	l.Info("hidden")
	l.Warn("shown", "handler", 3)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "handler=3")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := grasp.NewLogger(grasp.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	l.Debug("grasp: tick", "tick", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "grasp: tick", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := grasp.NewLogger(grasp.LoggingConfig{Level: "verbose", Format: "xml"}, &buf)
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
}
