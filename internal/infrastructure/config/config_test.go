package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a temp dir and clears
// token variables so the host environment cannot leak in
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, name := range tokenEnvVars {
		t.Setenv(name, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "https://api.spacetraders.io/v2", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, WaitStrategyTimer, cfg.Sequencer.WaitStrategy)
	assert.Equal(t, 5*time.Second, cfg.Sequencer.PollInterval)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.API.HasToken())
}

func TestLoadConfig_FileThenEnvOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bot.yaml")
	writeFile(t, path, `
api:
  timeout: 10s
sequencer:
  wait_strategy: poll
  poll_interval: 2s
defaults:
  ship_symbol: AGENT-1
  asteroid_symbol: X1-Q87-C3
  target_units: 61
`)
	t.Setenv("ST_DEFAULTS_SHIP_SYMBOL", "AGENT-7")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "poll", cfg.Sequencer.WaitStrategy)
	assert.Equal(t, 2*time.Second, cfg.Sequencer.PollInterval)
	assert.Equal(t, "AGENT-7", cfg.Defaults.ShipSymbol)
	assert.Equal(t, "X1-Q87-C3", cfg.Defaults.AsteroidSymbol)
	assert.Equal(t, 61, cfg.Defaults.TargetUnits)
}

func TestLoadConfig_TokenAliases(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"primary", map[string]string{"SPACE_TRADERS_TOKEN": "a"}, "a"},
		{"alias", map[string]string{"SPACETRADERS_TOKEN": "b"}, "b"},
		{"prefixed", map[string]string{"ST_API_TOKEN": "c"}, "c"},
		{"primary wins", map[string]string{"SPACE_TRADERS_TOKEN": "a", "ST_API_TOKEN": "c"}, "a"},
		{"alias beats prefixed", map[string]string{"SPACETRADERS_TOKEN": "b", "ST_API_TOKEN": "c"}, "b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig("")

			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.API.Token)
		})
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, `
sequencer:
  wait_strategy: sometimes
`)

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequencer.wait_strategy: must be timer or poll")
}

func TestLoadConfig_RejectsNonPositiveDurations(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, `
api:
  timeout: -5s
sequencer:
  wait_strategy: poll
  poll_interval: -1s
`)

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.timeout: must be a positive duration")
	assert.Contains(t, err.Error(), "sequencer.poll_interval: must be a positive duration")
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestLoadConfig_UserPreferencesFillDefaults(t *testing.T) {
	dir := isolate(t)
	handler := NewUserConfigHandlerAt(filepath.Join(dir, ".spacetraders", "config.json"))
	require.NoError(t, handler.SetDefaultShip("AGENT-3"))
	require.NoError(t, handler.SetDefaultMission("m-42"))

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "AGENT-3", cfg.Defaults.ShipSymbol)
	assert.Equal(t, "m-42", cfg.Defaults.MissionID)
}

func TestUserConfigHandler_ClearAndMissingFile(t *testing.T) {
	handler := NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultShip)

	require.NoError(t, handler.SetDefaultShip("AGENT-1"))
	require.NoError(t, handler.Clear())

	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.DefaultShip)
}

func TestRedacted_HidesToken(t *testing.T) {
	cfg := Config{API: APIConfig{Token: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9abcd"}}

	out := cfg.Redacted()

	assert.Equal(t, "****abcd", out.API.Token)
	assert.Equal(t, "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9abcd", cfg.API.Token)
}
