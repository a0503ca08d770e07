package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Whitelist", cfg.Lists.WhitelistSheet)
	assert.Equal(t, "Blacklist", cfg.Lists.BlacklistSheet)
	assert.Equal(t, "Company Name", cfg.Lists.NameColumn)
	assert.Equal(t, "Category", cfg.Lists.CategoryColumn)
	assert.Equal(t, "Notes", cfg.Lists.NotesColumn)
	assert.InDelta(t, 80.0, cfg.Match.Threshold, 0.001)
	assert.Equal(t, 5, cfg.Match.MaxResults)
	assert.True(t, cfg.Match.IncludeBelowThreshold)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
lists:
  path: /data/lists.xlsx
  whitelist_sheet: Approved
match:
  threshold: 85
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/lists.xlsx", cfg.Lists.Path)
	assert.Equal(t, "Approved", cfg.Lists.WhitelistSheet)
	assert.InDelta(t, 85.0, cfg.Match.Threshold, 0.001)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, "Blacklist", cfg.Lists.BlacklistSheet)
	assert.Equal(t, 5, cfg.Match.MaxResults)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
lists:
  path: /data/lists.xlsx
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SCREEN_LISTS_PATH", "/other/lists.xlsx")
	t.Setenv("SCREEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "/other/lists.xlsx", cfg.Lists.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("SCREEN_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Lists.Path = "/data/lists.xlsx"
	cfg.Match.Threshold = 80
	cfg.Match.MaxResults = 5
	cfg.Batch.Concurrency = 5
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateLookup_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("lookup"))
	assert.NoError(t, validDefaults().Validate("batch"))
}

func TestValidateLookup_MissingListsPath(t *testing.T) {
	cfg := validDefaults()
	cfg.Lists.Path = ""

	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lists.path is required")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateThresholdBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Match.Threshold = 150

	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "match.threshold must be between 0 and 100")
}

func TestValidateMaxResultsBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Match.MaxResults = 0

	err := cfg.Validate("lookup")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "match.max_results must be between 1 and 20")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Batch.Concurrency = 0

	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency must be between 1 and 50")
}
