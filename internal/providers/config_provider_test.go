package providers

import (
	"fmt"
	"mindful/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 9000
storage:
  driver: sqlite
  filePath: %s
logger:
  level: debug
  dir: %s
streak:
  timezone: Europe/Berlin
  checkAt: "00:05"
blocking:
  ruleSets:
    - id: mindful_blocking_rules
      enabled: true
      domains: [facebook.com, twitter.com]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_ReadsYamlAndDefaults(t *testing.T) {
	dir := t.TempDir()
	body := sprintfConfig(filepath.Join(dir, "mindful.db"), dir)
	path := writeConfig(t, body)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 9000, conf.WebServer.Port)
	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, "Europe/Berlin", conf.Streak.Timezone)
	assert.Equal(t, "00:05", conf.Streak.CheckAt)
	assert.Equal(t, time.Minute, conf.Streak.InitialDelay)
	assert.Equal(t, 5.5, conf.Stats.MinutesPerBlock)
	require.Len(t, conf.Blocking.RuleSets, 1)
	assert.Equal(t, []string{"facebook.com", "twitter.com"}, conf.Blocking.RuleSets[0].Domains)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, sprintfConfig(filepath.Join(dir, "mindful.db"), dir))
	t.Setenv("MINDFUL_PORT", "9100")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 9100, conf.WebServer.Port)
}

func TestNewConfigProvider_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, sprintfConfig(filepath.Join(dir, "mindful.db"), dir))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MINDFUL_LOG_LEVEL=warn\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("MINDFUL_LOG_LEVEL") })

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/config.yml"})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "webServer:\n  host: \"\"\nlogger:\n  dir: /tmp\n")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func sprintfConfig(dbPath, logDir string) string {
	return fmt.Sprintf(testConfigYaml, dbPath, logDir)
}
