package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project is a prototype project laid out in a temporary directory.
type Project struct {
	t   *testing.T
	Dir string
}

// NewProject creates an empty project with a manifest and no dependencies.
func NewProject(t *testing.T) *Project {
	t.Helper()
	p := &Project{t: t, Dir: t.TempDir()}
	p.SetDependencies(nil)
	return p
}

// ManifestPath returns the project's package.json path.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.Dir, "package.json")
}

// KnownPluginsPath returns the project's known plugins path.
func (p *Project) KnownPluginsPath() string {
	return filepath.Join(p.Dir, "known-plugins.json")
}

// SetDependencies rewrites the manifest with deps as its dependencies.
func (p *Project) SetDependencies(deps map[string]string) {
	p.t.Helper()
	if deps == nil {
		deps = map[string]string{}
	}
	p.writeJSON(p.ManifestPath(), map[string]interface{}{
		"name":         "prototype",
		"version":      "1.0.0",
		"dependencies": deps,
	})
}

// SetCatalog writes the known plugins file.
func (p *Project) SetCatalog(available, required []string) {
	p.t.Helper()
	p.writeJSON(p.KnownPluginsPath(), map[string]interface{}{
		"plugins": map[string]interface{}{
			"available": available,
			"required":  required,
		},
	})
}

// InstallModule writes node_modules/<name>/package.json with the given version and dependencies.
func (p *Project) InstallModule(name, version string, deps map[string]string) string {
	p.t.Helper()
	dir := filepath.Join(p.Dir, "node_modules", filepath.FromSlash(name))
	p.writeJSON(filepath.Join(dir, "package.json"), map[string]interface{}{
		"name":         name,
		"version":      version,
		"dependencies": deps,
	})
	return dir
}

// WriteFile writes a file relative to the project directory.
func (p *Project) WriteFile(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.Dir, filepath.FromSlash(rel))
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (p *Project) writeJSON(path string, v interface{}) {
	p.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(p.t, err)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, data, 0o644))
}
