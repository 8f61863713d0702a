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

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "incentives.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(400), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "https://api.jina.ai/v1", cfg.Embed.BaseURL)
	assert.Equal(t, "jina-embeddings-v3", cfg.Embed.Model)
	assert.Equal(t, 32, cfg.Embed.BatchSize)
	assert.InDelta(t, 4, cfg.Embed.RatePerSec, 0.001)
	assert.Equal(t, "https://api-free.deepl.com/v2", cfg.Translate.BaseURL)
	assert.Equal(t, "countries+states+cities.json", cfg.Geo.DatabasePath)
	assert.Equal(t, "Germany", cfg.Geo.HomeCountry)
	assert.InDelta(t, 0.45, cfg.Classify.Threshold, 0.001)
	assert.InDelta(t, 0.8, cfg.Classify.DirectWeight, 0.001)
	assert.InDelta(t, 0.2, cfg.Classify.ContextWeight, 0.001)
	assert.Equal(t, "classification_audit.csv", cfg.Classify.AuditLog)
	assert.True(t, cfg.Classify.HomeofficeORDetector)
	assert.Equal(t, int64(8192), cfg.Gate.BudgetMiB)
	assert.Equal(t, int64(6500), cfg.Gate.GenerativeMiB)
	assert.Equal(t, int64(2000), cfg.Gate.EmbeddingMiB)
	assert.Equal(t, "record", cfg.Gate.Scope)
	assert.Equal(t, "jobs.jsonl", cfg.Source.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/incentives
log:
  level: debug
  format: console
classify:
  threshold: 0.6
gate:
  scope: batch
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/incentives", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 0.6, cfg.Classify.Threshold, 0.001)
	assert.Equal(t, "batch", cfg.Gate.Scope)
	// Defaults still apply for unset values
	assert.InDelta(t, 0.8, cfg.Classify.DirectWeight, 0.001)
	assert.Equal(t, int64(8192), cfg.Gate.BudgetMiB)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("INCENTIVE_STORE_DRIVER", "postgres")
	t.Setenv("INCENTIVE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("INCENTIVE_GATE_SCOPE", "batch")
	t.Setenv("INCENTIVE_ANTHROPIC_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "batch", cfg.Gate.Scope)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
}

// validDefaults returns a Config populated like Load's defaults for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "incentives.db"
	cfg.Geo.DatabasePath = "countries+states+cities.json"
	cfg.Classify.Threshold = 0.45
	cfg.Gate.BudgetMiB = 8192
	cfg.Gate.GenerativeMiB = 6500
	cfg.Gate.EmbeddingMiB = 2000
	cfg.Gate.Scope = "record"
	return cfg
}

func TestValidateRun_AllPresent(t *testing.T) {
	cfg := validDefaults()
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Embed.Key = "jina-key"

	assert.NoError(t, cfg.Validate("run"))
}

func TestValidateRun_MissingKeys(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate("run")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
	assert.Contains(t, err.Error(), "embed.key is required")
}

func TestValidateRun_GateBounds(t *testing.T) {
	cfg := validDefaults()
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Embed.Key = "jina-key"
	cfg.Gate.GenerativeMiB = 9000

	err := cfg.Validate("run")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gate.generative_mib must not exceed gate.budget_mib")
}

func TestValidateRun_BadScope(t *testing.T) {
	cfg := validDefaults()
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Embed.Key = "jina-key"
	cfg.Gate.Scope = "stream"

	err := cfg.Validate("run")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gate.scope")
}

func TestValidateMigrate(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("migrate"))

	cfg.Store.DatabaseURL = ""
	err := cfg.Validate("migrate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
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
