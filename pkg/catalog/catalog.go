// Package catalog loads the list of plugins the console knows about.
package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Catalog is the known plugins file. JSON is valid YAML, so both
// known-plugins.json and known-plugins.yaml decode through the same path.
type Catalog struct {
	Plugins struct {
		Available []string `yaml:"available" json:"available"`
		Required  []string `yaml:"required" json:"required"`
	} `yaml:"plugins" json:"plugins"`
}

// Load reads the catalog at path. A missing file is an empty catalog.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, errors.Wrapf(err, "failed to open known plugins file %s", path)
	}
	defer func() { _ = file.Close() }()

	return Parse(file)
}

// Parse decodes a catalog from r.
func Parse(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read known plugins")
	}
	var c Catalog
	if len(data) == 0 {
		return &c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse known plugins: %w", err)
	}
	return &c, nil
}

// IsAvailable reports whether name is an installable optional plugin.
func (c *Catalog) IsAvailable(name string) bool {
	return c != nil && contains(c.Plugins.Available, name)
}

// IsRequired reports whether core functionality depends on name.
func (c *Catalog) IsRequired(name string) bool {
	return c != nil && contains(c.Plugins.Required, name)
}

// Knows reports whether name is listed at all.
func (c *Catalog) Knows(name string) bool {
	return c.IsAvailable(name) || c.IsRequired(name)
}

// Names returns every listed package once, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, n := range c.Plugins.Available {
		seen[n] = struct{}{}
	}
	for _, n := range c.Plugins.Required {
		seen[n] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
