package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/errors"
)

// DefaultManager implements the Manager interface for the registry
// metadata cache and the operation output logs.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager rooted at directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{directory: directory}
}

// Clean removes cached files according to the specified options.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	if !options.Registry && !options.Logs {
		options.All = true
	}

	logger.Debug("Cleaning cache", logger.Fields{
		"dir":      cm.directory,
		"all":      options.All,
		"registry": options.Registry,
		"logs":     options.Logs,
	})

	result := &CleanResult{}
	if options.All || options.Registry {
		size, err := cleanDirectory(filepath.Join(cm.directory, RegistryDir))
		if err != nil {
			return nil, fmt.Errorf("%w: registry: %w", errors.ErrCacheClean, err)
		}
		result.RegistryFreed = size
		result.TotalFreed += size
	}
	if options.All || options.Logs {
		size, err := cleanDirectory(filepath.Join(cm.directory, LogsDir))
		if err != nil {
			return nil, fmt.Errorf("%w: logs: %w", errors.ErrCacheClean, err)
		}
		result.LogsFreed = size
		result.TotalFreed += size
	}
	return result, nil
}

// GetInfo returns information about the cache.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.directory}

	var err error
	info.RegistrySize, info.RegistryFiles, err = getDirSizeAndFiles(filepath.Join(cm.directory, RegistryDir))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get registry cache info")
	}
	info.LogsSize, info.LogsFiles, err = getDirSizeAndFiles(filepath.Join(cm.directory, LogsDir))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get log cache info")
	}
	info.TotalSize = info.RegistrySize + info.LogsSize
	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// cleanDirectory removes a directory and returns bytes freed.
func cleanDirectory(dir string) (int64, error) {
	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			return 0, nil
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return size, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}
	return size, nil
}

// getDirSizeAndFiles calculates directory size and file count.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}

// FormatBytes converts bytes to a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
