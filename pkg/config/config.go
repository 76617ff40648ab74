// Package config provides configuration management for kitctl.
// It handles loading, validating, and saving the YAML configuration that
// points kitctl at a prototype project, its package manager and the package
// registry, and provides sensible defaults for everything else.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/kitctl/pkg/auth"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
	"github.com/glorpus-work/kitctl/pkg/platform"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Registry RegistryConfig `yaml:"registry"`
	Console  ConsoleConfig  `yaml:"console"`
	Settings Settings       `yaml:"settings"`
}

// ProjectConfig locates the prototype project and the files kitctl reads in it.
// Relative paths are resolved against Dir.
type ProjectConfig struct {
	Dir              string `yaml:"dir"`
	Manifest         string `yaml:"manifest,omitempty"`
	PackageManager   string `yaml:"package_manager"`
	PluginConfigFile string `yaml:"plugin_config_file,omitempty"`
	KnownPlugins     string `yaml:"known_plugins,omitempty"`
	HooksDir         string `yaml:"hooks_dir,omitempty"`
	ViewsDir         string `yaml:"views_dir,omitempty"`
}

// RegistryConfig configures access to the package registry.
type RegistryConfig struct {
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"`
	// Retries is a pointer so an explicit 0 disables retries.
	Retries  *int          `yaml:"retries"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Credentials may reference environment variables, e.g. "${NPM_TOKEN}".
	Token    string `yaml:"token,omitempty" secret:"true"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty" secret:"true"`
}

// ConsoleConfig configures the management console HTTP server.
type ConsoleConfig struct {
	Listen     string `yaml:"listen"`
	PathPrefix string `yaml:"path_prefix"`
}

// Settings represents general application settings.
type Settings struct {
	CacheDir string `yaml:"cache_dir,omitempty"`
	StateDir string `yaml:"state_dir,omitempty"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	MaxConcurrentLaunches int           `yaml:"max_concurrent_launches"`
	WatchInterval         time.Duration `yaml:"watch_interval"`
	WatchSettle           time.Duration `yaml:"watch_settle"`
}

// Default configuration values.
const (
	DefaultManifest         = "package.json"
	DefaultPluginConfigFile = "prototype-kit.config.json"
	DefaultKnownPlugins     = "known-plugins.json"
	DefaultHooksDir         = ".kitctl/hooks"
	DefaultViewsDir         = "app/views"

	DefaultRegistryURL     = "https://registry.npmjs.org"
	DefaultRegistryTimeout = 30 * time.Second
	DefaultRegistryRetries = 3
	DefaultCacheTTL        = 10 * time.Minute

	DefaultListen     = "127.0.0.1:3000"
	DefaultPathPrefix = "/manage-prototype"

	DefaultMaxConcurrentLaunches = 4
	DefaultWatchInterval         = time.Second
	DefaultWatchSettle           = 2 * time.Second

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every unset field with its default value.
func (c *Config) applyDefaults() {
	if c.Project.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			c.Project.Dir = wd
		} else {
			c.Project.Dir = "."
		}
	}
	if abs, err := filepath.Abs(c.Project.Dir); err == nil {
		c.Project.Dir = abs
	}
	if c.Project.Manifest == "" {
		c.Project.Manifest = DefaultManifest
	}
	if c.Project.PackageManager == "" {
		c.Project.PackageManager = platform.PackageManagerNPM
	}
	if c.Project.PluginConfigFile == "" {
		c.Project.PluginConfigFile = DefaultPluginConfigFile
	}
	if c.Project.KnownPlugins == "" {
		c.Project.KnownPlugins = DefaultKnownPlugins
	}
	if c.Project.HooksDir == "" {
		c.Project.HooksDir = DefaultHooksDir
	}
	if c.Project.ViewsDir == "" {
		c.Project.ViewsDir = DefaultViewsDir
	}

	if c.Registry.URL == "" {
		c.Registry.URL = DefaultRegistryURL
	}
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = DefaultRegistryTimeout
	}
	if c.Registry.Retries == nil {
		retries := DefaultRegistryRetries
		c.Registry.Retries = &retries
	}
	if c.Registry.CacheTTL == 0 {
		c.Registry.CacheTTL = DefaultCacheTTL
	}

	if c.Console.Listen == "" {
		c.Console.Listen = DefaultListen
	}
	if c.Console.PathPrefix == "" {
		c.Console.PathPrefix = DefaultPathPrefix
	}

	if c.Settings.CacheDir == "" {
		if dir, err := fsutil.GetCacheDir(); err == nil {
			c.Settings.CacheDir = dir
		} else {
			c.Settings.CacheDir = filepath.Join(os.TempDir(), fsutil.AppName, "cache")
		}
	}
	if c.Settings.StateDir == "" {
		if dir, err := fsutil.GetStateDir(); err == nil {
			c.Settings.StateDir = dir
		} else {
			c.Settings.StateDir = filepath.Join(os.TempDir(), fsutil.AppName, "state")
		}
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = "text"
	}
	if c.Settings.MaxConcurrentLaunches == 0 {
		c.Settings.MaxConcurrentLaunches = DefaultMaxConcurrentLaunches
	}
	if c.Settings.WatchInterval == 0 {
		c.Settings.WatchInterval = DefaultWatchInterval
	}
	if c.Settings.WatchSettle == 0 {
		c.Settings.WatchSettle = DefaultWatchSettle
	}
}

// LoadConfig loads configuration from a file.
// A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var sb strings.Builder
	encoder := yaml.NewEncoder(&sb)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return []byte(sb.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if !platform.IsValidPackageManager(c.Project.PackageManager) {
		return fmt.Errorf("unsupported package manager %q, must be one of: %s",
			c.Project.PackageManager, strings.Join(platform.ValidPackageManagers(), ", "))
	}
	if !strings.HasPrefix(c.Registry.URL, "http://") && !strings.HasPrefix(c.Registry.URL, "https://") {
		return fmt.Errorf("registry url must be http(s): %q", c.Registry.URL)
	}
	if c.Registry.Timeout < 0 {
		return fmt.Errorf("registry timeout cannot be negative")
	}
	if c.RegistryRetries() < 0 {
		return fmt.Errorf("registry retries cannot be negative")
	}
	if c.Registry.CacheTTL < 0 {
		return fmt.Errorf("registry cache_ttl cannot be negative")
	}
	if !strings.HasPrefix(c.Console.PathPrefix, "/") || strings.HasSuffix(c.Console.PathPrefix, "/") {
		return fmt.Errorf("console path_prefix must start and not end with '/': %q", c.Console.PathPrefix)
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.MaxConcurrentLaunches < 1 {
		return fmt.Errorf("max_concurrent_launches must be at least 1")
	}
	if s.WatchInterval < 0 || s.WatchSettle < 0 {
		return fmt.Errorf("watch_interval and watch_settle cannot be negative")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.LogFormat] {
		return fmt.Errorf("invalid log format '%s', must be one of: text, json", s.LogFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func (c *Config) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Project.Dir, p)
}

// ManifestPath returns the absolute path of the project's package manifest.
func (c *Config) ManifestPath() string {
	return c.projectPath(c.Project.Manifest)
}

// KnownPluginsPath returns the path of the known plugins catalog.
func (c *Config) KnownPluginsPath() string {
	return c.projectPath(c.Project.KnownPlugins)
}

// HooksDir returns the directory holding lifecycle hook scripts.
func (c *Config) HooksDir() string {
	return c.projectPath(c.Project.HooksDir)
}

// ViewsDir returns the directory page templates are installed into.
func (c *Config) ViewsDir() string {
	return c.projectPath(c.Project.ViewsDir)
}

// ModulesDir returns the directory installed packages live in.
func (c *Config) ModulesDir() string {
	return filepath.Join(c.Project.Dir, "node_modules")
}

// RegistryRetries returns how many times a failed registry fetch is retried.
func (c *Config) RegistryRetries() int {
	if c.Registry.Retries == nil {
		return DefaultRegistryRetries
	}
	return *c.Registry.Retries
}

// RegistryCredentials returns the configured registry credentials.
func (c *Config) RegistryCredentials() auth.Credentials {
	return auth.Credentials{
		Token:    c.Registry.Token,
		Username: c.Registry.Username,
		Password: c.Registry.Password,
	}
}

// RegistryCacheDir returns the directory for cached registry documents.
func (c *Config) RegistryCacheDir() string {
	return filepath.Join(c.Settings.CacheDir, "registry")
}

// JournalPath returns the path of the operation journal.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Settings.StateDir, "operations.json")
}

// LogsDir returns the directory operation output logs are written to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.Settings.CacheDir, "logs")
}
