package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: \"s3cret\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "planboard", cfg.Database.DBName)
	assert.Equal(t, "data/catalog.json", cfg.Catalog.Path)
	assert.Equal(t, 10, cfg.Plan.MaxYears)
	assert.InDelta(t, 5.5, cfg.Plan.MaxUnitsPerQuarter, 1e-9)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
jwt:
  secret: "s3cret"
plan:
  max_years: 6
  max_units_per_quarter: 4.0
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 6, cfg.Plan.MaxYears)
	assert.InDelta(t, 4.0, cfg.Plan.MaxUnitsPerQuarter, 1e-9)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: \"s3cret\"\n")

	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("PLAN_MAX_YEARS", "8")
	t.Setenv("PLAN_MAX_UNITS_PER_QUARTER", "6.5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Plan.MaxYears)
	assert.InDelta(t, 6.5, cfg.Plan.MaxUnitsPerQuarter, 1e-9)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9000\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadPlanLimits(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s3cret"
plan:
  max_years: 2
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
