// Package errors holds the sentinel errors shared by the kitctl packages and
// the wrapping helpers used to attach context to them.
package errors

import "fmt"

// Orchestration errors. Validation failures never launch a process.
var (
	ErrInvalidPackage  = fmt.Errorf("invalid package")
	ErrInvalidVersion  = fmt.Errorf("invalid version")
	ErrInvalidMode     = fmt.Errorf("invalid mode")
	ErrRequiredPackage = fmt.Errorf("package is required and cannot be uninstalled")
	ErrLaunchFailure   = fmt.Errorf("failed to launch command")
	ErrLauncherClosed  = fmt.Errorf("launcher is closed")
	ErrLauncherBusy    = fmt.Errorf("too many operations running")

	// ErrManifestRead is returned when the project manifest is missing or cannot be parsed.
	ErrManifestRead = fmt.Errorf("failed to read manifest")
)

// Registry errors.
var (
	ErrPackageNotInRegistry = fmt.Errorf("package not found in registry")
	ErrRegistryUnavailable  = fmt.Errorf("registry unavailable")
	ErrRegistryResponse     = fmt.Errorf("unexpected registry response")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrInvalidLogLevel   = fmt.Errorf("invalid log level")
)

// Misc errors.
var (
	ErrInvalidPath = fmt.Errorf("invalid path")
	ErrCacheClean  = fmt.Errorf("failed to clean cache")

	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// InvalidPackage reports name as an unrecognised or unusable package.
func InvalidPackage(name string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPackage, name)
}

// InvalidVersion reports version as unusable for the named package.
func InvalidVersion(name, version string) error {
	return fmt.Errorf("%w: %s@%s", ErrInvalidVersion, name, version)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}
