package command

import (
	"testing"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableInfo() *model.PackageInfo {
	return &model.PackageInfo{
		PackageName:   "test-package",
		Available:     true,
		LatestVersion: "2.0.0",
		Versions:      []string{"2.0.0", "1.0.0"},
	}
}

func installedInfo() *model.PackageInfo {
	info := availableInfo()
	info.Installed = true
	info.InstalledVersion = "1.0.0"
	return info
}

func remoteInfo() *model.PackageInfo {
	dep := model.ParseDependency("github:me/my-plugin")
	return &model.PackageInfo{PackageName: "my-plugin", Installed: true, Dependency: &dep}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		manager string
		req     model.OperationRequest
		info    *model.PackageInfo
		want    string
		version string
	}{
		{
			name: "install with version",
			req:  model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "1.0.0"},
			info: availableInfo(),
			want: "npm install test-package@1.0.0 --save-exact", version: "1.0.0",
		},
		{
			name: "install without version pins latest",
			req:  model.OperationRequest{Mode: model.ModeInstall, Package: "test-package"},
			info: availableInfo(),
			want: "npm install test-package@2.0.0 --save-exact", version: "2.0.0",
		},
		{
			name: "install without known latest",
			req:  model.OperationRequest{Mode: model.ModeInstall, Package: "local-plugin"},
			info: &model.PackageInfo{PackageName: "local-plugin", Available: true},
			want: "npm install local-plugin --save-exact",
		},
		{
			name: "update defaults to latest",
			req:  model.OperationRequest{Mode: model.ModeUpdate, Package: "test-package"},
			info: installedInfo(),
			want: "npm install test-package@2.0.0 --save-exact", version: "2.0.0",
		},
		{
			name: "uninstall",
			req:  model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package", Version: "9.9.9"},
			info: installedInfo(),
			want: "npm uninstall test-package",
		},
		{
			name: "uninstall git dependency",
			req:  model.OperationRequest{Mode: model.ModeUninstall, Package: "my-plugin"},
			info: remoteInfo(),
			want: "npm uninstall my-plugin",
		},
		{
			name:    "yarn install",
			manager: "yarn",
			req:     model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "1.0.0"},
			info:    availableInfo(),
			want:    "yarn add test-package@1.0.0 --exact", version: "1.0.0",
		},
		{
			name:    "pnpm uninstall",
			manager: "pnpm",
			req:     model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package"},
			info:    installedInfo(),
			want:    "pnpm remove test-package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := tt.manager
			if manager == "" {
				manager = "npm"
			}
			plan, err := NewResolver(manager, "/project").WithOS("linux").Resolve(tt.req, tt.info)
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.String())
			assert.Equal(t, tt.version, plan.Version)
			assert.Equal(t, tt.req.Mode, plan.Mode)
			assert.Equal(t, "/project", plan.Dir)
		})
	}
}

func TestResolve_Windows(t *testing.T) {
	plan, err := NewResolver("npm", `C:\project`).WithOS("windows").Resolve(
		model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package"}, installedInfo())
	require.NoError(t, err)
	assert.Equal(t, "npm.cmd", plan.Executable)
}

func TestResolve_Errors(t *testing.T) {
	required := installedInfo()
	required.Required = true

	tests := []struct {
		name string
		req  model.OperationRequest
		info *model.PackageInfo
		want error
	}{
		{"status is not launchable", model.OperationRequest{Mode: model.ModeStatus, Package: "test-package"}, availableInfo(), errors.ErrInvalidMode},
		{"unknown mode", model.OperationRequest{Mode: "reinstall", Package: "test-package"}, availableInfo(), errors.ErrInvalidMode},
		{"unknown package", model.OperationRequest{Mode: model.ModeInstall, Package: "nope"}, nil, errors.ErrInvalidPackage},
		{"mismatched info", model.OperationRequest{Mode: model.ModeInstall, Package: "other"}, availableInfo(), errors.ErrInvalidPackage},
		{"uninstall not installed", model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package"}, availableInfo(), errors.ErrInvalidPackage},
		{"update not installed", model.OperationRequest{Mode: model.ModeUpdate, Package: "test-package"}, availableInfo(), errors.ErrInvalidPackage},
		{"uninstall required", model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package"}, required, errors.ErrRequiredPackage},
		{"malformed version", model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "latest"}, availableInfo(), errors.ErrInvalidVersion},
		{"unpublished version", model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "3.0.0"}, availableInfo(), errors.ErrInvalidVersion},
		{"update unpublished version", model.OperationRequest{Mode: model.ModeUpdate, Package: "test-package", Version: "1.5.0"}, installedInfo(), errors.ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewResolver("npm", "/project").Resolve(tt.req, tt.info)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, plan)
		})
	}
}

func TestPreview(t *testing.T) {
	r := NewResolver("npm", "/project").WithOS("linux")

	cmd, err := r.Preview(model.OperationRequest{Mode: model.ModeInstall, Package: "test-package"}, availableInfo())
	require.NoError(t, err)
	assert.Equal(t, "npm install test-package@2.0.0 --save-exact", cmd)

	_, err = r.Preview(model.OperationRequest{Mode: model.ModeInstall, Package: "nope"}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidPackage)
}
