package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mock_console "github.com/glorpus-work/kitctl/pkg/console/mocks"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/orchestrator"
	"github.com/glorpus-work/kitctl/pkg/pathcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	server   *Server
	ops      *mock_console.MockOperations
	packages *mock_console.MockPackageSource
	commands *mock_console.MockCommandPreviewer
	views    string
}

func newFixture(t *testing.T, ready func() error) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ops:      mock_console.NewMockOperations(ctrl),
		packages: mock_console.NewMockPackageSource(ctrl),
		commands: mock_console.NewMockCommandPreviewer(ctrl),
		views:    t.TempDir(),
	}
	reg := prometheus.NewRegistry()
	orchestrator.NewMetrics(reg)
	f.server = New(Options{
		Operations: f.ops,
		Packages:   f.packages,
		Commands:   f.commands,
		ViewsDir:   f.views,
		Gatherer:   reg,
		Ready:      ready,
	})
	return f
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestPostMode_Processing(t *testing.T) {
	f := newFixture(t, nil)
	want := model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "1.0.0"}
	f.ops.EXPECT().Start(gomock.Any(), want).Return(&orchestrator.StartResult{
		Status:    model.StatusProcessing,
		Operation: "op-1",
		Command:   "npm install test-package@1.0.0 --save-exact",
		Version:   "1.0.0",
	}, nil)

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/install", `{"package":"test-package","version":"1.0.0"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, "processing", body["status"])
	assert.Equal(t, "op-1", body["operation"])
}

func TestPostMode_QueryPackage(t *testing.T) {
	f := newFixture(t, nil)
	f.ops.EXPECT().Start(gomock.Any(), model.OperationRequest{Mode: model.ModeUninstall, Package: "test-package"}).
		Return(&orchestrator.StartResult{Status: model.StatusProcessing}, nil)

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/uninstall?package=test-package", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostMode_ValidationError(t *testing.T) {
	f := newFixture(t, nil)
	f.ops.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil, errors.InvalidVersion("test-package", "1.0.0-invalid"))

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/install", `{"package":"test-package","version":"1.0.0-invalid"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "invalid version")
}

func TestPostMode_ServerErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: errors.ErrLauncherBusy, code: http.StatusServiceUnavailable},
		{err: errors.Wrap(errors.ErrManifestRead, "package.json"), code: http.StatusInternalServerError},
		{err: fmt.Errorf("%w: 502", errors.ErrRegistryResponse), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			f := newFixture(t, nil)
			f.ops.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/install", `{"package":"test-package"}`))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "error", decode(t, rec)["status"])
		})
	}
}

func TestPostMode_InvalidMode(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/reinstall", `{"package":"test-package"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMode_MalformedBody(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/install", `{"package":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMode_StatusSharesRoute(t *testing.T) {
	f := newFixture(t, nil)
	f.ops.EXPECT().Status(gomock.Any(), model.OperationRequest{Mode: model.ModeStatus, Package: "test-package"}).
		Return(&model.StatusResult{Status: model.StatusProcessing, Mode: model.ModeUpdate, Package: "test-package"}, nil)

	rec := f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/status", `{"package":"test-package"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "processing", body["status"])
	assert.Equal(t, "update", body["mode"])
}

func TestAjaxGuard(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/manage-prototype/plugins/install", strings.NewReader("package=test-package"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/manage-prototype/plugins")
	rec := f.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/manage-prototype/plugins", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodPost, "/manage-prototype/plugins/install/status?package=test-package", nil)
	rec = f.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/manage-prototype/plugins/install/status?package=test-package", rec.Header().Get("Location"))
}

func TestStatus(t *testing.T) {
	f := newFixture(t, nil)
	req := model.OperationRequest{Mode: model.ModeInstall, Package: "test-package", Version: "2.0.0"}

	f.ops.EXPECT().Status(gomock.Any(), req).
		Return(&model.StatusResult{Status: model.StatusCompleted, Mode: model.ModeInstall, Package: "test-package"}, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins/install/status?package=test-package&version=2.0.0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode(t, rec)["status"])

	f.ops.EXPECT().Status(gomock.Any(), req).
		Return(&model.StatusResult{Status: model.StatusError, Message: "npm exited with code 1"}, nil)
	rec = f.do(jsonRequest(http.MethodPost, "/manage-prototype/plugins/install/status", `{"package":"test-package","version":"2.0.0"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "npm exited with code 1", decode(t, rec)["message"])

	f.ops.EXPECT().Status(gomock.Any(), req).Return(nil, errors.Wrap(errors.ErrManifestRead, "package.json"))
	rec = f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins/install/status?package=test-package&version=2.0.0", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decode(t, rec)["status"])
}

func TestPlugins(t *testing.T) {
	installed := &model.PackageInfo{PackageName: "installed-plugin", Installed: true, InstalledVersion: "1.0.0", LatestVersion: "2.0.0"}
	available := &model.PackageInfo{PackageName: "test-package", Available: true, LatestVersion: "2.0.0"}

	t.Run("available", func(t *testing.T) {
		f := newFixture(t, nil)
		f.packages.EXPECT().All(gomock.Any()).Return([]*model.PackageInfo{available, installed}, nil)
		f.commands.EXPECT().Preview(model.OperationRequest{Mode: model.ModeInstall, Package: "test-package"}, available).
			Return("npm install test-package@2.0.0 --save-exact", nil)
		f.commands.EXPECT().Preview(model.OperationRequest{Mode: model.ModeUninstall, Package: "installed-plugin"}, installed).
			Return("npm uninstall installed-plugin", nil)
		f.commands.EXPECT().Preview(model.OperationRequest{Mode: model.ModeUpdate, Package: "installed-plugin"}, installed).
			Return("npm install installed-plugin@2.0.0 --save-exact", nil)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp pluginsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "available", resp.Status)
		require.Len(t, resp.Plugins, 2)
		assert.Equal(t, "npm install test-package@2.0.0 --save-exact", resp.Plugins[0].InstallCommand)
		assert.Equal(t, "/manage-prototype/plugins/install?package=test-package", resp.Plugins[0].InstallLink)
		assert.Equal(t, "npm uninstall installed-plugin", resp.Plugins[1].UninstallCommand)
		assert.Equal(t, "/manage-prototype/plugins/update?package=installed-plugin", resp.Plugins[1].UpdateLink)
	})

	t.Run("installed filtered by search", func(t *testing.T) {
		f := newFixture(t, nil)
		other := &model.PackageInfo{PackageName: "other", Installed: true, Required: true}
		f.packages.EXPECT().Installed(gomock.Any()).Return([]*model.PackageInfo{installed, other}, nil)
		f.commands.EXPECT().Preview(gomock.Any(), gomock.Any()).Return("cmd", nil).AnyTimes()

		rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins?installed=true&search=instplug", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp pluginsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "installed", resp.Status)
		require.Len(t, resp.Plugins, 1)
		assert.Equal(t, "installed-plugin", resp.Plugins[0].PackageName)
	})

	t.Run("search", func(t *testing.T) {
		f := newFixture(t, nil)
		f.packages.EXPECT().Search(gomock.Any(), "task list").Return(nil, nil)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins?search=task+list", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "search", body["status"])
		assert.Equal(t, []interface{}{}, body["plugins"])
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.packages.EXPECT().All(gomock.Any()).Return(nil, errors.ErrManifestRead)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCommandPreview(t *testing.T) {
	f := newFixture(t, nil)
	info := &model.PackageInfo{PackageName: "test-package", LatestVersion: "2.0.0"}
	req := model.OperationRequest{Mode: model.ModeInstall, Package: "test-package"}
	f.packages.EXPECT().Lookup(gomock.Any(), "test-package").Return(info, nil).Times(2)
	f.commands.EXPECT().Preview(req, info).Return("npm install test-package@2.0.0 --save-exact", nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins/install/command?package=test-package", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "npm install test-package@2.0.0 --save-exact", decode(t, rec)["command"])

	f.commands.EXPECT().Preview(gomock.Any(), info).Return("", errors.InvalidPackage("test-package"))
	rec = f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/plugins/uninstall/command?package=test-package", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckPath(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(f.views, "exists.html"), []byte("x"), 0o644))

	tests := map[string]pathcheck.Code{
		"":                   pathcheck.CodeMissing,
		"/":                  pathcheck.CodeSingleSlash,
		"/exists":            pathcheck.CodeExists,
		"no-forward-slash":   "",
		"//multiple-slashes": pathcheck.CodeMultipleSlashes,
	}
	for chosen, want := range tests {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/templates/check-path?chosen-url="+chosen, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var res pathcheck.Result
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, want, res.Code, chosen)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, func() error { return nil })
	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/live", nil)).Code)
	assert.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/ready", nil)).Code)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	broken := newFixture(t, func() error { return errors.ErrManifestRead })
	assert.Equal(t, http.StatusServiceUnavailable, broken.do(httptest.NewRequest(http.MethodGet, "/manage-prototype/ready", nil)).Code)
}

func TestCustomPrefix(t *testing.T) {
	s := New(Options{Prefix: "/admin/"})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/templates/check-path?chosen-url=/page", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
