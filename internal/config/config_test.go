package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
data_source_base_url = "https://jsonplaceholder.typicode.com"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"
login_rate_limit_allowed_per_min = 15

[production]
host = ""
port = 9000
log_level = "debug"
logs_path = "/var/log/mysocialapp/service.log"
sentry_enabled = true
data_source_base_url = "https://jsonplaceholder.typicode.com"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "2112"
login_rate_limit_allowed_per_min = 15
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.DataSourceBaseURL)
	assert.Equal(t, 15, cfg.LoginRateLimitAllowedPerMin)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "/var/log/mysocialapp/service.log", cfg.LogsPath)
	assert.True(t, cfg.SentryEnabled)
}

func TestLoad_UnknownEnv(t *testing.T) {
	cfg, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("dev", "/invalid/path/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
