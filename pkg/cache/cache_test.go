package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/kitctl/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, cache.RegistryDir, "a.json"), 100)
	writeFile(t, filepath.Join(dir, cache.RegistryDir, "b.json"), 50)
	writeFile(t, filepath.Join(dir, cache.LogsDir, "op.log"), 10)

	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)

	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, int64(150), info.RegistrySize)
	assert.Equal(t, 2, info.RegistryFiles)
	assert.Equal(t, int64(10), info.LogsSize)
	assert.Equal(t, 1, info.LogsFiles)
	assert.Equal(t, int64(160), info.TotalSize)
}

func TestGetInfo_EmptyCache(t *testing.T) {
	info, err := cache.NewManager(filepath.Join(t.TempDir(), "missing")).GetInfo()
	require.NoError(t, err)
	assert.Zero(t, info.TotalSize)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name          string
		options       cache.CleanOptions
		registryFreed int64
		logsFreed     int64
	}{
		{"defaults to all", cache.CleanOptions{}, 100, 10},
		{"registry only", cache.CleanOptions{Registry: true}, 100, 0},
		{"logs only", cache.CleanOptions{Logs: true}, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, cache.RegistryDir, "a.json"), 100)
			writeFile(t, filepath.Join(dir, cache.LogsDir, "op.log"), 10)

			result, err := cache.NewManager(dir).Clean(tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.registryFreed, result.RegistryFreed)
			assert.Equal(t, tt.logsFreed, result.LogsFreed)
			assert.Equal(t, tt.registryFreed+tt.logsFreed, result.TotalFreed)

			assert.DirExists(t, filepath.Join(dir, cache.RegistryDir))
		})
	}
}

func TestClean_MissingDirectory(t *testing.T) {
	result, err := cache.NewManager(filepath.Join(t.TempDir(), "missing")).Clean(cache.CleanOptions{All: true})
	require.NoError(t, err)
	assert.Zero(t, result.TotalFreed)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", cache.FormatBytes(512))
	assert.Equal(t, "1.0 KB", cache.FormatBytes(1024))
	assert.Equal(t, "1.5 MB", cache.FormatBytes(1536*1024))
}
