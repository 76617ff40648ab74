package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Executable returns the executable name to spawn for the package manager on goos.
// On Windows the Node package managers are shipped as .cmd shims. A manager given
// as a path is returned unchanged.
func Executable(manager, goos string) string {
	if manager == "" {
		manager = PackageManagerNPM
	}
	if strings.ContainsAny(manager, `/\`) || filepath.Ext(manager) != "" {
		return manager
	}
	if goos == OSWindows {
		return manager + ".cmd"
	}
	return manager
}

// CurrentExecutable is Executable for the running operating system.
func CurrentExecutable(manager string) string {
	return Executable(manager, runtime.GOOS)
}

// IsValidPackageManager reports whether manager names a supported package manager.
// Paths are accepted when their base name is supported.
func IsValidPackageManager(manager string) bool {
	base := strings.TrimSuffix(filepath.Base(manager), filepath.Ext(manager))
	for _, pm := range ValidPackageManagers() {
		if base == pm {
			return true
		}
	}
	return false
}

// Name returns the bare package manager name for manager, which may be a path.
func Name(manager string) string {
	if manager == "" {
		return PackageManagerNPM
	}
	return strings.TrimSuffix(filepath.Base(manager), filepath.Ext(manager))
}
