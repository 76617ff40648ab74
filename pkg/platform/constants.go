// Package platform resolves platform specific details of running the
// project's package manager.
package platform

const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"
)

// Supported package managers.
const (
	PackageManagerNPM  = "npm"
	PackageManagerYarn = "yarn"
	PackageManagerPNPM = "pnpm"
)

// ValidPackageManagers returns the package managers kitctl can drive.
func ValidPackageManagers() []string {
	return []string{PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM}
}
