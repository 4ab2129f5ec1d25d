package appcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_dir: /var/log/pbtc/
log_level: info
log_console: true
hide_secrets_in_console: true
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		LogDir:               "/var/log/pbtc/",
		LogLevel:             "info",
		LogConsole:           true,
		HideSecretsInConsole: true,
	}, c)
}

func TestLoadAppliesDefaults(t *testing.T) {
	for _, body := range []string{"", "log_console: true\n"} {
		c, err := Load(writeConfig(t, body))
		require.NoError(t, err)
		assert.Equal(t, DefaultLogDir, c.LogDir)
		assert.Equal(t, DefaultLogLevel, c.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log_dir: [unterminated"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode app yaml")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, &Config{LogDir: "logs/", LogLevel: "trace"}, Defaults())
}

func TestShippedConfigMasksConsole(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "configs", "app.yaml"))
	require.NoError(t, err)
	assert.True(t, c.LogConsole)
	assert.True(t, c.HideSecretsInConsole)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
}
