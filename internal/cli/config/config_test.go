package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ToolPath)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "granite-ide.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"port: 9000\noutput: json\ntool_path: /opt/granite/granitectl\n",
	), 0o644))
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "/opt/granite/granitectl", cfg.ToolPath)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, "granite-ide.yaml", GetConfigFileUsed())
}

func TestLoadConfigExplicitFile(t *testing.T) {
	ResetConfig()
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("host: 0.0.0.0\n"), 0o644))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "granite-ide.yaml"),
		[]byte("port: 9000\n"), 0o644))
	chdir(t, dir)
	t.Setenv("GRANITE_IDE_PORT", "9100")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("GRANITE_IDE_PORT", "9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	flags.String("tool-path", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "9200", "--tool-path", "/usr/local/bin/granitectl"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Port)
	// Kebab-case flag names map onto snake_case config keys.
	assert.Equal(t, "/usr/local/bin/granitectl", cfg.ToolPath)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "granite-ide.yaml"),
		[]byte("port: 9000\n"), 0o644))
	chdir(t, dir)

	// The flag exists with a default but was never set; the file value wins.
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
}

func TestGetLoggerFallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
}
