package console

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/orchestrator"
	"github.com/glorpus-work/kitctl/pkg/pathcheck"
	"github.com/sahilm/fuzzy"
)

// maxBodySize bounds request bodies; they only ever carry a package and a version.
const maxBodySize = 64 << 10

type errorResponse struct {
	Status  model.Status `json:"status"`
	Message string       `json:"message"`
}

// pluginView is a plugin as listed by the console.
type pluginView struct {
	*model.PackageInfo
	InstallCommand   string `json:"installCommand,omitempty"`
	UninstallCommand string `json:"uninstallCommand,omitempty"`
	UpdateCommand    string `json:"updateCommand,omitempty"`
	InstallLink      string `json:"installLink,omitempty"`
	UninstallLink    string `json:"uninstallLink,omitempty"`
	UpdateLink       string `json:"updateLink,omitempty"`
}

type pluginsResponse struct {
	Status  string       `json:"status"`
	Search  string       `json:"search,omitempty"`
	Plugins []pluginView `json:"plugins"`
}

type commandResponse struct {
	Mode    model.Mode `json:"mode"`
	Package string     `json:"package"`
	Command string     `json:"command"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to encode response", logger.Fields{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), errorResponse{Status: model.StatusError, Message: err.Error()})
}

// statusCode maps err to the HTTP status the console answers with.
func statusCode(err error) int {
	switch {
	case orchestrator.IsValidationError(err):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrLauncherBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseMode(raw string) (model.Mode, error) {
	mode, err := model.ParseMode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errors.ErrInvalidMode, raw)
	}
	return mode, nil
}

// readRequest collects package and version from the query string and, for
// JSON bodies, from the body. Body values win.
func readRequest(r *http.Request) (model.OperationRequest, error) {
	mode, err := parseMode(r.PathValue("mode"))
	if err != nil {
		return model.OperationRequest{}, err
	}
	req := model.OperationRequest{
		Mode:    mode,
		Package: r.URL.Query().Get("package"),
		Version: r.URL.Query().Get("version"),
	}
	if r.Body == nil || r.Method == http.MethodGet {
		return req, nil
	}

	var body struct {
		Package string `json:"package"`
		Version string `json:"version"`
	}
	err = json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body)
	switch {
	case stderrors.Is(err, io.EOF):
	case err != nil:
		return req, fmt.Errorf("%w: malformed request body", errors.ErrInvalidPackage)
	default:
		if body.Package != "" {
			req.Package = body.Package
		}
		if body.Version != "" {
			req.Version = body.Version
		}
	}
	return req, nil
}

// handleMode starts an install, update or uninstall. Mode status shares the
// route and is answered like a status poll.
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Mode == model.ModeStatus {
		s.respondStatus(w, r, req)
		return
	}

	res, err := s.opts.Operations.Start(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.respondStatus(w, r, req)
}

func (s *Server) respondStatus(w http.ResponseWriter, r *http.Request, req model.OperationRequest) {
	res, err := s.opts.Operations.Status(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	code := http.StatusOK
	if res.Status == model.StatusError {
		code = http.StatusBadRequest
	}
	writeJSON(w, code, res)
}

func (s *Server) handlePlugins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	search := query.Get("search")
	installed, _ := strconv.ParseBool(query.Get("installed"))

	var (
		infos []*model.PackageInfo
		err   error
		resp  = pluginsResponse{Search: search}
	)
	switch {
	case installed:
		resp.Status = "installed"
		infos, err = s.opts.Packages.Installed(ctx)
	case search != "":
		resp.Status = "search"
		infos, err = s.opts.Packages.Search(ctx, search)
	default:
		resp.Status = "available"
		infos, err = s.opts.Packages.All(ctx)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if installed && search != "" {
		infos = filterNames(infos, search)
	}

	resp.Plugins = make([]pluginView, 0, len(infos))
	for _, info := range infos {
		resp.Plugins = append(resp.Plugins, s.view(info))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	info, err := s.opts.Packages.Lookup(r.Context(), req.Package)
	if err != nil {
		writeError(w, err)
		return
	}
	cmd, err := s.opts.Commands.Preview(req, info)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Mode: req.Mode, Package: req.Package, Command: cmd})
}

func (s *Server) handleCheckPath(w http.ResponseWriter, r *http.Request) {
	path := pathcheck.Normalize(r.URL.Query().Get("chosen-url"))
	var exists func(string) bool
	if s.opts.ViewsDir != "" {
		exists = pathcheck.ViewExists(s.opts.ViewsDir)
	}
	writeJSON(w, http.StatusOK, pathcheck.Check(path, exists))
}

// view adds the commands and console links that apply to info.
func (s *Server) view(info *model.PackageInfo) pluginView {
	v := pluginView{PackageInfo: info}
	if s.opts.Commands == nil {
		return v
	}
	preview := func(mode model.Mode) string {
		cmd, err := s.opts.Commands.Preview(model.OperationRequest{Mode: mode, Package: info.PackageName}, info)
		if err != nil {
			return ""
		}
		return cmd
	}
	if !info.Installed {
		v.InstallCommand = preview(model.ModeInstall)
		v.InstallLink = s.link(model.ModeInstall, info.PackageName)
		return v
	}
	if !info.Required {
		v.UninstallCommand = preview(model.ModeUninstall)
		v.UninstallLink = s.link(model.ModeUninstall, info.PackageName)
	}
	if info.UpdateAvailable() {
		v.UpdateCommand = preview(model.ModeUpdate)
		v.UpdateLink = s.link(model.ModeUpdate, info.PackageName)
	}
	return v
}

func (s *Server) link(mode model.Mode, pkg string) string {
	return s.opts.Prefix + "/plugins/" + string(mode) + "?package=" + url.QueryEscape(pkg)
}

// filterNames keeps the plugins whose names fuzzily match query, best first.
func filterNames(infos []*model.PackageInfo, query string) []*model.PackageInfo {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.PackageName
	}
	matches := fuzzy.Find(query, names)
	out := make([]*model.PackageInfo, 0, len(matches))
	for _, m := range matches {
		out = append(out, infos[m.Index])
	}
	return out
}
