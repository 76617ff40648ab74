// Package status decides whether a launched lifecycle operation has finished.
// Completion is read from disk on every poll: the manifest, the installed
// packages and the operation journal, combined with the restart signal.
package status

import (
	"context"
	"fmt"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/manifest"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/restart"
	"github.com/glorpus-work/kitctl/pkg/state"
)

// PackageLookup returns the current view of a package, or nil when unknown.
type PackageLookup interface {
	Lookup(ctx context.Context, name string) (*model.PackageInfo, error)
}

// Reconciler answers status polls. It holds no per-request state.
type Reconciler struct {
	manifest manifest.Reader
	packages PackageLookup
	signal   *restart.Signal
	journal  state.Journal
	alive    func(pid int) bool
}

// NewReconciler creates a reconciler. journal may be nil.
func NewReconciler(reader manifest.Reader, packages PackageLookup, signal *restart.Signal, journal state.Journal) *Reconciler {
	return &Reconciler{manifest: reader, packages: packages, signal: signal, journal: journal}
}

// WithLiveness makes results report whether the operation's child is still running.
func (r *Reconciler) WithLiveness(alive func(pid int) bool) *Reconciler {
	r.alive = alive
	return r
}

// Reconcile returns the status of req. Errors are only returned when no
// decision can be made, such as an unreadable manifest.
func (r *Reconciler) Reconcile(ctx context.Context, req model.OperationRequest) (*model.StatusResult, error) {
	if req.Mode != model.ModeStatus && !req.Mode.Mutates() {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidMode, req.Mode)
	}
	if req.Package == "" {
		return nil, errors.InvalidPackage(req.Package)
	}

	m, err := r.manifest.Read()
	if err != nil {
		return nil, err
	}
	op := r.latestOperation(req.Package)
	restarted := r.signal.Restarted()

	mode := req.Mode
	result := &model.StatusResult{Mode: req.Mode, Package: req.Package, Version: req.Version}
	if mode == model.ModeStatus {
		if relabelled, ok := relabelPostRestartUpdate(op, restarted); ok {
			mode = relabelled
			result.Mode = relabelled
		} else if op != nil {
			mode = op.Mode
		} else {
			result.Status = model.StatusProcessing
			result.Reason = "no operation recorded for package"
			return result, nil
		}
	}

	if op != nil && op.Mode == mode {
		result.Operation = op.ID
		if result.Version == "" {
			result.Version = op.Version
		}
		if op.LaunchError != "" {
			result.Status = model.StatusError
			result.Message = op.LaunchError
			result.Reason = "command could not be started"
			return result, nil
		}
		if r.alive != nil && op.PID > 0 && op.ExitedAt.IsZero() {
			running := r.alive(op.PID)
			result.Running = &running
		}
	} else {
		op = nil
	}

	switch mode {
	case model.ModeUninstall:
		r.reconcileUninstall(m, restarted, result)
	default:
		if err := r.reconcileInstall(ctx, mode, restarted, result); err != nil {
			return nil, err
		}
	}

	if result.Status == model.StatusProcessing && op != nil && op.ExitCode != nil && *op.ExitCode != 0 {
		result.Status = model.StatusError
		result.Message = fmt.Sprintf("%s exited with code %d", op.Command, *op.ExitCode)
		result.Reason = "command failed"
	}
	return result, nil
}

// relabelPostRestartUpdate keeps clients that poll the status route after an
// update working: once the console has restarted and the package's last
// operation was an update, a plain status poll is answered as that update.
func relabelPostRestartUpdate(op *model.Operation, restarted bool) (model.Mode, bool) {
	if restarted && op != nil && op.Mode == model.ModeUpdate {
		return model.ModeUpdate, true
	}
	return "", false
}

func (r *Reconciler) reconcileUninstall(m *model.Manifest, restarted bool, result *model.StatusResult) {
	_, present := m.Dependency(result.Package)
	switch {
	case !restarted:
		result.Status = model.StatusProcessing
		result.Reason = "waiting for restart"
	case present:
		result.Status = model.StatusProcessing
		result.Reason = "package still in manifest"
	default:
		result.Status = model.StatusCompleted
		result.Reason = "package removed from manifest"
	}
}

func (r *Reconciler) reconcileInstall(ctx context.Context, mode model.Mode, restarted bool, result *model.StatusResult) error {
	info, err := r.packages.Lookup(ctx, result.Package)
	if err != nil {
		return err
	}
	if info == nil {
		result.Status = model.StatusError
		result.Message = errors.InvalidPackage(result.Package).Error()
		result.Reason = "package is no longer known"
		return nil
	}
	if v := result.Version; v != "" && !info.Local && !info.HasVersion(v) {
		result.Status = model.StatusError
		result.Message = errors.InvalidVersion(result.Package, v).Error()
		result.Reason = "requested version is not published"
		return nil
	}

	switch {
	case !restarted:
		result.Status = model.StatusProcessing
		result.Reason = "waiting for restart"
	case !info.Installed:
		result.Status = model.StatusProcessing
		result.Reason = "package not yet in manifest"
	case !versionSatisfied(info, result.Version):
		result.Status = model.StatusProcessing
		result.Reason = fmt.Sprintf("installed version %s does not match %s", info.InstalledVersion, result.Version)
	default:
		result.Status = model.StatusCompleted
		result.Reason = "package installed"
		if mode == model.ModeUpdate {
			result.Reason = "package updated"
		}
	}
	return nil
}

func versionSatisfied(info *model.PackageInfo, requested string) bool {
	if requested == "" || info.Local {
		return true
	}
	if model.SameVersion(info.InstalledVersion, requested) {
		return true
	}
	return info.Dependency != nil && info.Dependency.MatchesVersion(requested)
}

func (r *Reconciler) latestOperation(pkg string) *model.Operation {
	if r.journal == nil {
		return nil
	}
	op, err := r.journal.Latest(pkg)
	if err != nil {
		logger.Warn("Cannot read operation journal", logger.Fields{"package": pkg, "error": err.Error()})
		return nil
	}
	return op
}
