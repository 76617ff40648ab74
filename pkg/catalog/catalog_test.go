package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSON(t *testing.T) {
	c, err := Parse(strings.NewReader(`{
		"plugins": {
			"available": ["test-package", "task-list"],
			"required": ["prototype-kit"]
		}
	}`))
	require.NoError(t, err)

	assert.True(t, c.IsAvailable("test-package"))
	assert.False(t, c.IsAvailable("prototype-kit"))
	assert.True(t, c.IsRequired("prototype-kit"))
	assert.True(t, c.Knows("task-list"))
	assert.False(t, c.Knows("left-pad"))
	assert.Equal(t, []string{"prototype-kit", "task-list", "test-package"}, c.Names())
}

func TestParse_YAML(t *testing.T) {
	c, err := Parse(strings.NewReader("plugins:\n  available:\n    - step-by-step\n"))
	require.NoError(t, err)
	assert.True(t, c.IsAvailable("step-by-step"))
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Names())
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"plugins": [`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, c.Knows("x"))

	path := filepath.Join(dir, "known-plugins.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"plugins":{"available":["x"]}}`), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.True(t, c.Knows("x"))
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.False(t, c.Knows("x"))
	assert.Nil(t, c.Names())
}
