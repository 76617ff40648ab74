package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "npm", cfg.Project.PackageManager)
	assert.Equal(t, DefaultRegistryURL, cfg.Registry.URL)
	assert.Equal(t, 30*time.Second, cfg.Registry.Timeout)
	assert.Equal(t, DefaultRegistryRetries, cfg.RegistryRetries())
	assert.Equal(t, DefaultMaxConcurrentLaunches, cfg.Settings.MaxConcurrentLaunches)
	assert.True(t, filepath.IsAbs(cfg.Project.Dir))
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `project:
  dir: ` + tempDir + `
  package_manager: pnpm
registry:
  url: http://localhost:4873
  cache_ttl: 1m
console:
  listen: ":8080"
settings:
  log_level: debug`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, tempDir, cfg.Project.Dir)
	assert.Equal(t, "pnpm", cfg.Project.PackageManager)
	assert.Equal(t, "http://localhost:4873", cfg.Registry.URL)
	assert.Equal(t, time.Minute, cfg.Registry.CacheTTL)
	assert.Equal(t, ":8080", cfg.Console.Listen)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, filepath.Join(tempDir, "package.json"), cfg.ManifestPath())
	assert.Equal(t, filepath.Join(tempDir, "known-plugins.json"), cfg.KnownPluginsPath())
	assert.Equal(t, filepath.Join(tempDir, ".kitctl", "hooks"), cfg.HooksDir())
	assert.Equal(t, filepath.Join(tempDir, "node_modules"), cfg.ModulesDir())
}

func TestRegistryRetries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "unset uses default", content: "registry:\n  url: https://registry.npmjs.org", want: DefaultRegistryRetries},
		{name: "zero disables retries", content: "registry:\n  retries: 0", want: 0},
		{name: "explicit value", content: "registry:\n  retries: 5", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.RegistryRetries())
		})
	}

	_, err := LoadConfigFromReader(strings.NewReader("registry:\n  retries: -1"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestRegistryRetries_SetAndSave(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.SetValue("registry.retries", "often"))
	assert.Equal(t, DefaultRegistryRetries, cfg.RegistryRetries(), "failed set leaves the value alone")

	require.NoError(t, cfg.SetValue("registry.retries", "0"))
	got, err := cfg.GetValue("registry.retries")
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))
	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.RegistryRetries())
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, cfg.Console.Listen)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "malformed yaml", content: "project: [", target: errors.ErrConfigParse},
		{name: "unknown package manager", content: "project:\n  package_manager: bun", target: errors.ErrConfigValidation},
		{name: "bad registry url", content: "registry:\n  url: ftp://example.com", target: errors.ErrConfigValidation},
		{name: "bad log level", content: "settings:\n  log_level: loud", target: errors.ErrConfigValidation},
		{name: "bad prefix", content: "console:\n  path_prefix: manage/", target: errors.ErrConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Registry.CacheTTL = 5 * time.Minute

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Settings.LogLevel)
	assert.Equal(t, 5*time.Minute, loaded.Registry.CacheTTL)
	assert.Equal(t, cfg.Project.Dir, loaded.Project.Dir)
}

func TestGetSetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("project.package_manager", "yarn"))
	require.NoError(t, cfg.SetValue("registry.cache_ttl", "90s"))
	require.NoError(t, cfg.SetValue("settings.max_concurrent_launches", "8"))

	v, err := cfg.GetValue("project.package_manager")
	require.NoError(t, err)
	assert.Equal(t, "yarn", v)

	v, err = cfg.GetValue("registry.cache_ttl")
	require.NoError(t, err)
	assert.Equal(t, "1m30s", v)

	assert.Equal(t, 8, cfg.Settings.MaxConcurrentLaunches)

	assert.ErrorIs(t, cfg.SetValue("project.nope", "x"), errors.ErrUnknownConfigKey)
	assert.ErrorIs(t, cfg.SetValue("toplevel", "x"), errors.ErrUnknownConfigKey)
	assert.Error(t, cfg.SetValue("registry.timeout", "soon"))
	_, err = cfg.GetValue("console.nope")
	assert.ErrorIs(t, err, errors.ErrUnknownConfigKey)
}

func TestToMap(t *testing.T) {
	cfg := DefaultConfig()
	m := cfg.ToMap()

	assert.Equal(t, "npm", m["project.package_manager"])
	assert.Equal(t, DefaultPathPrefix, m["console.path_prefix"])
	assert.Equal(t, "10m0s", m["registry.cache_ttl"])
	assert.Contains(t, cfg.Keys(), "settings.watch_settle")
}

func TestRegistryCredentialsAreRedacted(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.SetValue("registry.token", "${NPM_TOKEN}"))
	require.NoError(t, cfg.SetValue("registry.username", "ci"))

	m := cfg.ToMap()
	assert.Equal(t, Redacted, m["registry.token"])
	assert.Equal(t, "ci", m["registry.username"])
	assert.Empty(t, m["registry.password"])

	token, err := cfg.GetValue("registry.token")
	require.NoError(t, err)
	assert.Equal(t, "${NPM_TOKEN}", token)
	assert.Equal(t, "${NPM_TOKEN}", cfg.RegistryCredentials().Token)
}
