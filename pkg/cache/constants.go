package cache

import "github.com/glorpus-work/kitctl/pkg/fsutil"

// Cache subdirectories.
const (
	RegistryDir = "registry"
	LogsDir     = "logs"
)

// DirPerm is the permission mode used when recreating cache directories.
const DirPerm = fsutil.DirModeSecure
