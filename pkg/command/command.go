// Package command turns a validated lifecycle request into the package
// manager command line that carries it out.
package command

import (
	"fmt"
	"runtime"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/platform"
	"github.com/hashicorp/go-version"
)

// template holds the verbs and flags of one package manager.
type template struct {
	add      string
	remove   string
	pinFlags []string
}

var templates = map[string]template{
	platform.PackageManagerNPM:  {add: "install", remove: "uninstall", pinFlags: []string{"--save-exact"}},
	platform.PackageManagerYarn: {add: "add", remove: "remove", pinFlags: []string{"--exact"}},
	platform.PackageManagerPNPM: {add: "add", remove: "remove", pinFlags: []string{"--save-exact"}},
}

// Resolver builds command plans for one project.
type Resolver struct {
	manager string
	goos    string
	dir     string
}

// NewResolver returns a resolver that runs manager in dir.
func NewResolver(manager, dir string) *Resolver {
	return &Resolver{manager: manager, goos: runtime.GOOS, dir: dir}
}

// WithOS returns a copy of r that renders executables for goos.
func (r *Resolver) WithOS(goos string) *Resolver {
	cp := *r
	cp.goos = goos
	return &cp
}

// Resolve validates req against info and returns the command to run.
// info is nil when the package is unknown.
func (r *Resolver) Resolve(req model.OperationRequest, info *model.PackageInfo) (*model.CommandPlan, error) {
	if !req.Mode.Mutates() {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidMode, req.Mode)
	}
	if err := validatePackage(req, info); err != nil {
		return nil, err
	}
	if err := validateVersion(req, info); err != nil {
		return nil, err
	}

	tmpl, ok := templates[platform.Name(r.manager)]
	if !ok {
		tmpl = templates[platform.PackageManagerNPM]
	}

	plan := &model.CommandPlan{
		Mode:       req.Mode,
		Package:    req.Package,
		Executable: platform.Executable(r.manager, r.goos),
		Dir:        r.dir,
	}

	switch req.Mode {
	case model.ModeUninstall:
		plan.Args = []string{tmpl.remove, req.Package}
	default:
		plan.Version = req.Version
		if plan.Version == "" {
			plan.Version = info.LatestVersion
		}
		target := req.Package
		if plan.Version != "" {
			target += "@" + plan.Version
		}
		plan.Args = append([]string{tmpl.add, target}, tmpl.pinFlags...)
	}
	return plan, nil
}

// Preview renders the command line for req without launching anything.
func (r *Resolver) Preview(req model.OperationRequest, info *model.PackageInfo) (string, error) {
	plan, err := r.Resolve(req, info)
	if err != nil {
		return "", err
	}
	return plan.String(), nil
}

func validatePackage(req model.OperationRequest, info *model.PackageInfo) error {
	if info == nil || req.Package == "" || info.PackageName != req.Package {
		return errors.InvalidPackage(req.Package)
	}
	switch req.Mode {
	case model.ModeUninstall:
		if !info.Installed {
			return errors.InvalidPackage(req.Package)
		}
		if info.Required {
			return fmt.Errorf("%w: %s", errors.ErrRequiredPackage, req.Package)
		}
	case model.ModeUpdate:
		if !info.Installed {
			return errors.InvalidPackage(req.Package)
		}
	}
	return nil
}

func validateVersion(req model.OperationRequest, info *model.PackageInfo) error {
	if req.Mode == model.ModeUninstall || req.Version == "" {
		return nil
	}
	if _, err := version.NewSemver(req.Version); err != nil {
		return errors.InvalidVersion(req.Package, req.Version)
	}
	if !info.HasVersion(req.Version) {
		return errors.InvalidVersion(req.Package, req.Version)
	}
	return nil
}
