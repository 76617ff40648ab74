// Package manifest reads the project's package.json and the manifests of
// installed packages. Every read goes to disk; nothing is cached.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
)

// PackageJSON is the subset of package.json fields kitctl understands.
type PackageJSON struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// Reader reads the project manifest.
type Reader interface {
	Read() (*model.Manifest, error)
}

// FileReader reads a manifest from a fixed path.
type FileReader struct {
	Path string
}

// NewFileReader returns a Reader for the manifest at path.
func NewFileReader(path string) *FileReader {
	return &FileReader{Path: path}
}

// Read implements Reader.
func (r *FileReader) Read() (*model.Manifest, error) {
	return Read(r.Path)
}

// Read parses the manifest at path. A missing or malformed file is reported as
// errors.ErrManifestRead since no completion decision can be made without it.
func Read(path string) (*model.Manifest, error) {
	pkg, err := ReadPackageJSON(path)
	if err != nil {
		return nil, err
	}

	m := &model.Manifest{
		Name:         pkg.Name,
		Version:      pkg.Version,
		Dependencies: make(map[string]model.Dependency, len(pkg.Dependencies)),
	}
	for name, raw := range pkg.Dependencies {
		m.Dependencies[name] = model.ParseDependency(raw)
	}
	return m, nil
}

// ReadPackageJSON decodes a package.json file.
func ReadPackageJSON(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrManifestRead, path, err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrManifestRead, path, err)
	}
	return &pkg, nil
}

// InstalledPackageDir returns the directory an installed package lives in.
// Scoped names ("@scope/name") map to nested directories.
func InstalledPackageDir(modulesDir, name string) string {
	return filepath.Join(modulesDir, filepath.FromSlash(name))
}

// ReadInstalled reads the package.json of an installed package.
func ReadInstalled(modulesDir, name string) (*PackageJSON, error) {
	return ReadPackageJSON(filepath.Join(InstalledPackageDir(modulesDir, name), "package.json"))
}

// DependencyNames returns the sorted runtime and peer dependency names of pkg.
func (p *PackageJSON) DependencyNames() []string {
	seen := make(map[string]struct{}, len(p.Dependencies)+len(p.PeerDependencies))
	for name := range p.Dependencies {
		seen[name] = struct{}{}
	}
	for name := range p.PeerDependencies {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedNames returns the dependency names of m in sorted order.
func SortedNames(m *model.Manifest) []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
