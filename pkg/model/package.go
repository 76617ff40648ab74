package model

// PackageInfo is the current view of one known or installed package.
type PackageInfo struct {
	PackageName      string      `json:"packageName"`
	Installed        bool        `json:"installed"`
	Available        bool        `json:"available"`
	Required         bool        `json:"required"`
	Local            bool        `json:"local"`
	LatestVersion    string      `json:"latestVersion,omitempty"`
	Versions         []string    `json:"versions,omitempty"` // newest first
	InstalledVersion string      `json:"installedVersion,omitempty"`
	Dependency       *Dependency `json:"dependency,omitempty"`
	HasPluginConfig  bool        `json:"pluginConfig"`

	DependentPackages  []string `json:"dependentPackages,omitempty"`
	DependencyPackages []string `json:"dependencyPackages,omitempty"`
}

// HasVersion reports whether v is one of the known registry versions.
func (p *PackageInfo) HasVersion(v string) bool {
	if p == nil {
		return false
	}
	for _, known := range p.Versions {
		if known == v {
			return true
		}
	}
	return false
}

// UpdateAvailable reports whether the registry has a newer version than the installed one.
func (p *PackageInfo) UpdateAvailable() bool {
	if p == nil || !p.Installed || p.Local || p.LatestVersion == "" {
		return false
	}
	return !SameVersion(p.InstalledVersion, p.LatestVersion)
}
