package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/shutterbook.db", cfg.Database.Path)
	assert.Equal(t, 120*time.Minute, cfg.DefaultSessionDuration())
	assert.Equal(t, 30*time.Minute, cfg.SlotStep())
	assert.Equal(t, 8, cfg.FleetConcurrency())

	rps, burst := cfg.RateLimit()
	assert.Equal(t, 20.0, rps)
	assert.Equal(t, 40, burst)

	// The database directory is created so the service can start cold.
	_, err = os.Stat("data")
	assert.NoError(t, err)
}

func TestLoad_ParsesYAMLWithEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sekrit")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  api_key: ${TEST_API_KEY}
  rate_limit_rps: 5
  rate_limit_burst: 10
database:
  path: ` + filepath.Join(dir, "test.db") + `
redis:
  address: localhost:6379
  cache_ttl_seconds: 300
monitoring:
  prometheus_enabled: true
  prometheus_port: 9091
availability:
  default_duration_minutes: 90
  slot_step_minutes: 15
  fleet_concurrency: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sekrit", cfg.Server.APIKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 300, cfg.Redis.CacheTTLSeconds)
	assert.True(t, cfg.Monitoring.PrometheusEnabled)

	assert.Equal(t, 90*time.Minute, cfg.DefaultSessionDuration())
	assert.Equal(t, 15*time.Minute, cfg.SlotStep())
	assert.Equal(t, 4, cfg.FleetConcurrency())

	rps, burst := cfg.RateLimit()
	assert.Equal(t, 5.0, rps)
	assert.Equal(t, 10, burst)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
