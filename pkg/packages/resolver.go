// Package packages answers what kitctl knows about a plugin package: whether
// it is installed, listed in the catalog, and which versions the registry offers.
package packages

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/catalog"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/manifest"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/registry"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel registry lookups in All.
const DefaultConcurrency = 8

// Options configures a Resolver.
type Options struct {
	// ProjectDir anchors local references.
	ProjectDir string
	// ModulesDir is where installed packages live (node_modules).
	ModulesDir string
	// CatalogPath is the known plugins file.
	CatalogPath string
	// PluginConfigFile is the file a package ships to mark itself as a kit plugin.
	PluginConfigFile string
	Concurrency      int
}

// Resolver builds PackageInfo values from the manifest, the catalog and the registry.
// It holds no state between calls.
type Resolver struct {
	manifest manifest.Reader
	registry registry.Client
	opts     Options
}

// NewResolver creates a resolver.
func NewResolver(reader manifest.Reader, client registry.Client, opts Options) *Resolver {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Resolver{manifest: reader, registry: client, opts: opts}
}

// Lookup returns the current view of name, or (nil, nil) when the package is
// neither listed in the catalog nor present in the manifest.
func (r *Resolver) Lookup(ctx context.Context, name string) (*model.PackageInfo, error) {
	m, cat, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.build(ctx, name, m, cat)
}

// All returns every known package, sorted by name.
func (r *Resolver) All(ctx context.Context) ([]*model.PackageInfo, error) {
	m, cat, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.buildAll(ctx, knownNames(m, cat), m, cat)
}

// Installed returns the packages present in the manifest, sorted by name.
func (r *Resolver) Installed(ctx context.Context) ([]*model.PackageInfo, error) {
	m, cat, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.buildAll(ctx, manifest.SortedNames(m), m, cat)
}

// Search ranks known packages by a fuzzy match of query against their names.
// An empty query returns every known package.
func (r *Resolver) Search(ctx context.Context, query string) ([]*model.PackageInfo, error) {
	m, cat, err := r.load()
	if err != nil {
		return nil, err
	}
	names := knownNames(m, cat)
	if query != "" {
		matches := fuzzy.Find(query, names)
		names = make([]string, len(matches))
		for i, match := range matches {
			names[i] = match.Str
		}
	}
	return r.buildAll(ctx, names, m, cat)
}

func (r *Resolver) load() (*model.Manifest, *catalog.Catalog, error) {
	m, err := r.manifest.Read()
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(r.opts.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	return m, cat, nil
}

func (r *Resolver) buildAll(ctx context.Context, names []string, m *model.Manifest, cat *catalog.Catalog) ([]*model.PackageInfo, error) {
	infos := make([]*model.PackageInfo, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i, name := range names {
		g.Go(func() error {
			info, err := r.build(gCtx, name, m, cat)
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := infos[:0]
	for _, info := range infos {
		if info != nil {
			out = append(out, info)
		}
	}
	return out, nil
}

func (r *Resolver) build(ctx context.Context, name string, m *model.Manifest, cat *catalog.Catalog) (*model.PackageInfo, error) {
	if name == "" {
		return nil, nil
	}
	dep, installed := m.Dependency(name)
	if !installed && !cat.Knows(name) {
		return nil, nil
	}

	info := &model.PackageInfo{
		PackageName: name,
		Installed:   installed,
		Available:   cat.IsAvailable(name),
		Required:    cat.IsRequired(name),
	}
	if installed {
		d := dep
		info.Dependency = &d
		info.Local = dep.IsLocal()
		info.InstalledVersion = r.installedVersion(name, dep)
		info.HasPluginConfig = r.hasPluginConfig(name, dep)
		info.DependentPackages = r.dependents(name, m)
		info.DependencyPackages = r.dependencies(name, m, cat)
	}

	if installed && !dep.IsRegistry() {
		return info, nil
	}
	md, err := r.registry.FetchMetadata(ctx, name)
	switch {
	case err == nil:
		info.LatestVersion = md.Latest()
		info.Versions = md.Versions
	case installed && stderrors.Is(err, errors.ErrPackageNotInRegistry):
		// A private or unpublished dependency is still installed.
		logger.Debug("Installed package is not in the registry", logger.Fields{"package": name})
	default:
		return nil, errors.Wrapf(err, "failed to look up %s", name)
	}
	return info, nil
}

// installedVersion prefers the version recorded in the installed package.
// Local references report their own package.json version, or nothing.
func (r *Resolver) installedVersion(name string, dep model.Dependency) string {
	if dep.IsLocal() {
		pkg, err := manifest.ReadPackageJSON(filepath.Join(r.localDir(dep), "package.json"))
		if err != nil {
			logger.Debug("Local package has no readable version", logger.Fields{"package": name, "path": dep.Path})
			return ""
		}
		return pkg.Version
	}
	if pkg, err := manifest.ReadInstalled(r.opts.ModulesDir, name); err == nil && pkg.Version != "" {
		return pkg.Version
	}
	return dep.Version
}

func (r *Resolver) hasPluginConfig(name string, dep model.Dependency) bool {
	if r.opts.PluginConfigFile == "" {
		return false
	}
	dirs := []string{manifest.InstalledPackageDir(r.opts.ModulesDir, name)}
	if dep.IsLocal() {
		dirs = append(dirs, r.localDir(dep))
	}
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, r.opts.PluginConfigFile)); err == nil {
			return true
		}
	}
	return false
}

func (r *Resolver) localDir(dep model.Dependency) string {
	if filepath.IsAbs(dep.Path) {
		return dep.Path
	}
	return filepath.Join(r.opts.ProjectDir, filepath.FromSlash(dep.Path))
}

// dependents lists installed packages whose own manifest depends on name.
func (r *Resolver) dependents(name string, m *model.Manifest) []string {
	var out []string
	for _, other := range manifest.SortedNames(m) {
		if other == name {
			continue
		}
		pkg, err := manifest.ReadInstalled(r.opts.ModulesDir, other)
		if err != nil {
			continue
		}
		for _, dep := range pkg.DependencyNames() {
			if dep == name {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

// dependencies lists the known packages name depends on.
func (r *Resolver) dependencies(name string, m *model.Manifest, cat *catalog.Catalog) []string {
	pkg, err := manifest.ReadInstalled(r.opts.ModulesDir, name)
	if err != nil {
		return nil
	}
	var out []string
	for _, dep := range pkg.DependencyNames() {
		if _, ok := m.Dependency(dep); ok || cat.Knows(dep) {
			out = append(out, dep)
		}
	}
	return out
}

func knownNames(m *model.Manifest, cat *catalog.Catalog) []string {
	seen := make(map[string]struct{})
	for _, n := range cat.Names() {
		seen[n] = struct{}{}
	}
	for n := range m.Dependencies {
		seen[n] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
