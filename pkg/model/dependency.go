// Package model provides the data structures shared by the kitctl plugin
// lifecycle packages: manifest dependencies, package metadata, operation
// requests, command plans and status results.
package model

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// DependencyKind tells a registry version apart from a local reference.
type DependencyKind string

const (
	// DependencyRegistry is a version (or range) resolved from the package registry.
	DependencyRegistry DependencyKind = "registry"
	// DependencyLocal points at a directory on disk instead of a registry version.
	DependencyLocal DependencyKind = "local"
	// DependencyRemote is fetched from somewhere other than the registry
	// entry of its own name: a git repository, a tarball URL or an alias.
	DependencyRemote DependencyKind = "remote"
)

// LocalReferencePrefixes lists the manifest value prefixes treated as local references.
var LocalReferencePrefixes = []string{"file:", "link:", "portal:"}

// localPathPrefixes are bare paths, which npm also installs from disk.
var localPathPrefixes = []string{"./", "../", "/", "~/"}

// RemoteReferencePrefixes lists the manifest value prefixes that do not name
// a registry version of the package itself.
var RemoteReferencePrefixes = []string{
	"git+", "git:", "github:", "gitlab:", "bitbucket:", "gist:",
	"http://", "https://", "npm:",
}

// Dependency is a single manifest dependency entry, classified once at parse time.
type Dependency struct {
	Kind    DependencyKind `json:"kind"`
	Version string         `json:"version,omitempty"`
	Path    string         `json:"path,omitempty"`
	Raw     string         `json:"raw"`
}

// ParseDependency classifies a raw manifest value.
func ParseDependency(raw string) Dependency {
	value := strings.TrimSpace(raw)
	for _, prefix := range LocalReferencePrefixes {
		if strings.HasPrefix(value, prefix) {
			return Dependency{Kind: DependencyLocal, Path: strings.TrimPrefix(value, prefix), Raw: raw}
		}
	}
	for _, prefix := range localPathPrefixes {
		if strings.HasPrefix(value, prefix) {
			return Dependency{Kind: DependencyLocal, Path: value, Raw: raw}
		}
	}
	for _, prefix := range RemoteReferencePrefixes {
		if strings.HasPrefix(value, prefix) {
			return Dependency{Kind: DependencyRemote, Raw: raw}
		}
	}
	// Version ranges never contain a slash, "owner/repo" is GitHub shorthand.
	if strings.Contains(value, "/") {
		return Dependency{Kind: DependencyRemote, Raw: raw}
	}
	return Dependency{Kind: DependencyRegistry, Version: value, Raw: raw}
}

// IsLocal reports whether the entry is a local reference.
func (d Dependency) IsLocal() bool {
	return d.Kind == DependencyLocal
}

// IsRegistry reports whether the entry resolves through the registry
// document of its own name.
func (d Dependency) IsRegistry() bool {
	return d.Kind == DependencyRegistry
}

// MatchesVersion reports whether the entry satisfies the requested version.
// Local references carry no comparable version and always match.
func (d Dependency) MatchesVersion(requested string) bool {
	if d.IsLocal() || requested == "" {
		return true
	}
	return SameVersion(d.Version, requested)
}

// SameVersion compares two version strings semantically, falling back to
// string equality when either side does not parse.
func SameVersion(a, b string) bool {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return va.Equal(vb)
}

// Manifest is the subset of the project's package.json the orchestrator reads.
type Manifest struct {
	Name         string
	Version      string
	Dependencies map[string]Dependency
}

// Dependency returns the entry for name, if any.
func (m *Manifest) Dependency(name string) (Dependency, bool) {
	if m == nil {
		return Dependency{}, false
	}
	dep, ok := m.Dependencies[name]
	return dep, ok
}
