package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/glorpus-work/kitctl/pkg/cache"
	mock_cache "github.com/glorpus-work/kitctl/pkg/cache/mocks"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunCacheInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mock_cache.NewMockManager(ctrl)
	manager.EXPECT().GetInfo().Return(&cache.Info{
		Directory:     "/tmp/kitctl-cache",
		TotalSize:     3072,
		RegistrySize:  2048,
		RegistryFiles: 2,
		LogsSize:      1024,
		LogsFiles:     1,
	}, nil)

	var out bytes.Buffer
	require.NoError(t, runCacheInfo(&out, manager))
	assert.Contains(t, out.String(), "Cache Directory: /tmp/kitctl-cache")
	assert.Contains(t, out.String(), "Total Size: 3.0 KB")
	assert.Contains(t, out.String(), "Registry Cache: 2.0 KB (2 files)")
	assert.Contains(t, out.String(), "Operation Logs: 1.0 KB (1 files)")
}

func TestRunCacheClean(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mock_cache.NewMockManager(ctrl)

	opts := cache.CleanOptions{Logs: true}
	manager.EXPECT().Clean(opts).Return(&cache.CleanResult{TotalFreed: 10, LogsFreed: 10}, nil)
	require.NoError(t, runCacheClean(manager, opts))

	manager.EXPECT().Clean(gomock.Any()).Return(nil, fmt.Errorf("boom"))
	assert.Error(t, runCacheClean(manager, cache.CleanOptions{}))
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	err := printStatus(&out, &model.StatusResult{Status: model.StatusCompleted, Mode: model.ModeInstall, Package: "test-package", Version: "2.0.0"}, false)
	require.NoError(t, err)
	assert.Equal(t, "install test-package@2.0.0: completed\n", out.String())

	out.Reset()
	err = printStatus(&out, &model.StatusResult{Status: model.StatusError, Mode: model.ModeUpdate, Package: "test-package", Message: "npm exited with code 1"}, false)
	require.Error(t, err)
	assert.Equal(t, "update test-package: error (npm exited with code 1)\n", out.String())

	out.Reset()
	require.NoError(t, printStatus(&out, &model.StatusResult{Status: model.StatusProcessing, Mode: model.ModeUninstall, Package: "p"}, true))
	assert.Contains(t, out.String(), `"status": "processing"`)
}

func TestPluginStatus(t *testing.T) {
	assert.Equal(t, "available", pluginStatus(&model.PackageInfo{}))
	assert.Equal(t, "installed, required", pluginStatus(&model.PackageInfo{Installed: true, InstalledVersion: "1.0.0", LatestVersion: "1.0.0", Required: true}))
	assert.Equal(t, "update available", pluginStatus(&model.PackageInfo{Installed: true, InstalledVersion: "1.0.0", LatestVersion: "2.0.0"}))
}

func TestPrintPlugins(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPlugins(&out, nil))
	assert.Equal(t, "No plugins found\n", out.String())

	out.Reset()
	require.NoError(t, printPlugins(&out, []*model.PackageInfo{
		{PackageName: "local-plugin", Installed: true, Local: true},
		{PackageName: "test-package", LatestVersion: "2.0.0"},
	}))
	assert.Contains(t, out.String(), "PACKAGE")
	assert.Contains(t, out.String(), "local-plugin")
	assert.Contains(t, out.String(), "local")
	assert.Contains(t, out.String(), "test-package")
}
