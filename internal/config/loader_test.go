package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/limitlens/limitlens/internal/logcheck"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	ConfigureEnv(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "SIMPLE", cfg.Logging.Profile)
	assert.False(t, cfg.Scan.AllowEndpointError)
	assert.Empty(t, cfg.Scan.Suppress)
	assert.Equal(t, "127.0.0.1:4566", cfg.Mock.Addr)
	assert.Equal(t, []string{"rate-limit", "throttling", "ok"}, cfg.Mock.Script)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
scan:
  allow_endpoint_error: true
  suppress:
    - name: iam-pagination
      level: warning
      module: iam
      message: "pagination truncated for %s"
    - name: ta-refresh
      first_arg_contains: "refresh in progress"
mock:
  addr: 127.0.0.1:0
`), 0o600))

	t.Setenv("LIMITLENS_LOGGING_PROFILE", "STRUCTURED")
	t.Setenv("LIMITLENS_MOCK_SCRIPT", "throttling,ok")

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "STRUCTURED", cfg.Logging.Profile)
	assert.True(t, cfg.Scan.AllowEndpointError)
	assert.Equal(t, "127.0.0.1:0", cfg.Mock.Addr)
	assert.Equal(t, []string{"throttling", "ok"}, cfg.Mock.Script)

	require.Len(t, cfg.Scan.Suppress, 2)
	assert.Equal(t, "iam-pagination", cfg.Scan.Suppress[0].Name)
	assert.Equal(t, "refresh in progress", cfg.Scan.Suppress[1].FirstArgContains)

	rules, err := cfg.Scan.Rules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.True(t, rules[0].Match(logcheck.Entry{
		Level:   zapcore.WarnLevel,
		Module:  "iam",
		Message: "pagination truncated for %s",
	}))
}

func TestLoadRejectsInvalidRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scan:
  suppress:
    - name: broken
      level: loud
`), 0o600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan.suppress[0]")
}
