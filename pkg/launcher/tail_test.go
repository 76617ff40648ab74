package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "op.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("abc", 10)), 0o600))

	assert.Equal(t, strings.Repeat("abc", 10)[30-8:], readTail(path, 8))
	assert.Equal(t, strings.Repeat("abc", 10), readTail(path, 100))
	assert.Equal(t, strings.Repeat("abc", 10), readTail(path, 0))
}

func TestReadTail_MissingFile(t *testing.T) {
	assert.Empty(t, readTail(filepath.Join(t.TempDir(), "missing.log"), 8))
}
