// Package cli contains the kitctl CLI commands and subcommands.
package cli

import (
	"fmt"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/config"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	ProjectDir *string
)

// loadConfig loads the configuration and applies the global flags to it.
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return nil, fmt.Errorf("failed to get default config path")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if ProjectDir != nil && *ProjectDir != "" {
		cfg.Project.Dir = *ProjectDir
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid project directory: %w", err)
		}
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.LogFormat))
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path surfaces a descriptive error when the file is read or written.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}
