package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-bot/internal/application/common"
	"github.com/andrescamacho/spacetraders-bot/internal/domain/shared"
)

var _ common.RunLogger = (*ConsoleLogger)(nil)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestConsoleLogger_TextFormatSortsMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, FormatText, common.LevelInfo, shared.NewOperationContext("mine-AGENT-1-abc", "mine"))
	logger.now = fixedNow

	logger.Log(common.LevelInfo, "Extracted 40 ALUMINUM_ORE", map[string]interface{}{
		"yield_units": 40,
		"action":      "extract",
	})

	assert.Equal(t, "2026-03-01T12:00:00Z [INFO] [mine-AGENT-1-abc] Extracted 40 ALUMINUM_ORE action=extract yield_units=40\n", buf.String())
}

func TestConsoleLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, FormatJSON, common.LevelDebug, shared.NewOperationContext("run-1", "navigate"))
	logger.now = fixedNow

	logger.Log(common.LevelError, "navigate failed", map[string]interface{}{"status_code": 400})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "navigate failed", entry["message"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "navigate", entry["operation"])
	assert.Equal(t, float64(400), entry["status_code"])
}

func TestConsoleLogger_FiltersBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, FormatText, common.LevelWarn, nil)

	logger.Log(common.LevelDebug, "phase change", nil)
	logger.Log(common.LevelInfo, "arrived", nil)
	logger.Log(common.LevelWarn, "slow", nil)
	logger.Log(common.LevelError, "failed", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARNING] slow")
	assert.Contains(t, lines[1], "[ERROR] failed")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   common.LevelDebug,
		"":        common.LevelInfo,
		"INFO":    common.LevelInfo,
		"warn":    common.LevelWarn,
		"warning": common.LevelWarn,
		"error":   common.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
