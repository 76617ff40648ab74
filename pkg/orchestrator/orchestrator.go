package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/hooks"
	"github.com/glorpus-work/kitctl/pkg/launcher"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/google/uuid"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Start validates req, runs the pre hook and launches the package manager.
// It returns as soon as the command has been handed off; the outcome is only
// observable through Status.
func (o *Orchestrator) Start(ctx context.Context, req model.OperationRequest) (*StartResult, error) {
	if o.Packages == nil || o.Commands == nil || o.Launcher == nil {
		return nil, fmt.Errorf("orchestrator is not configured")
	}

	emit(o.Hooks, Event{Phase: "validating", Msg: req.Package})
	if !req.Mode.Mutates() {
		return nil, o.reject(req, fmt.Errorf("%w: %q", errors.ErrInvalidMode, req.Mode))
	}

	info, err := o.Packages.Lookup(ctx, req.Package)
	if err != nil {
		return nil, o.reject(req, err)
	}
	plan, err := o.Commands.Resolve(req, info)
	if err != nil {
		return nil, o.reject(req, err)
	}
	if err := o.runHook(req.Mode, false, plan.Package, plan.Version); err != nil {
		return nil, o.reject(req, err)
	}

	id := o.nextID()
	op := &model.Operation{
		ID:        id,
		Mode:      plan.Mode,
		Package:   plan.Package,
		Version:   plan.Version,
		Command:   plan.String(),
		Dir:       plan.Dir,
		StartedAt: time.Now(),
	}
	if o.Journal != nil {
		if err := o.Journal.Record(op); err != nil {
			logger.Warn("Failed to record operation", logger.Fields{"operation": id, "error": err.Error()})
		}
	}

	emit(o.Hooks, Event{Phase: "launching", ID: id, Msg: op.Command})
	proc, err := o.Launcher.Launch(ctx, id, plan)
	if err != nil {
		o.updateOperation(id, func(rec *model.Operation) { rec.LaunchError = err.Error() })
		return nil, o.reject(req, err)
	}

	if proc.StartErr != nil {
		// Reported through the next status poll, not here.
		o.updateOperation(id, func(rec *model.Operation) { rec.LaunchError = proc.StartErr.Error() })
		emit(o.Hooks, Event{Phase: "error", ID: id, Msg: proc.StartErr.Error()})
	} else {
		o.updateOperation(id, func(rec *model.Operation) { rec.PID = proc.PID })
	}

	o.Metrics.launched(req.Mode)
	emit(o.Hooks, Event{Phase: "launched", ID: id, Msg: op.Command})
	logger.Info("Operation launched", logger.Fields{
		"operation": id,
		"mode":      string(req.Mode),
		"package":   plan.Package,
		"version":   plan.Version,
	})

	return &StartResult{
		Status:    model.StatusProcessing,
		Operation: id,
		Command:   op.Command,
		Version:   plan.Version,
	}, nil
}

// Status reconciles req against the current state. The first completed
// answer for an operation runs its post hook.
func (o *Orchestrator) Status(ctx context.Context, req model.OperationRequest) (*model.StatusResult, error) {
	if o.Reconciler == nil {
		return nil, fmt.Errorf("orchestrator is not configured")
	}

	res, err := o.Reconciler.Reconcile(ctx, req)
	if err != nil {
		o.Metrics.polled(req.Mode, model.StatusError)
		return nil, err
	}
	o.Metrics.polled(res.Mode, res.Status)

	if res.Status == model.StatusCompleted && res.Operation != "" {
		o.complete(res)
	}
	return res, nil
}

// HandleExit records how a launched command ended. It is meant to be the
// launcher's OnExit callback.
func (o *Orchestrator) HandleExit(exit launcher.Exit) {
	o.updateOperation(exit.ID, func(rec *model.Operation) {
		code := exit.ExitCode
		rec.ExitCode = &code
		rec.ExitedAt = exit.ExitedAt
		rec.OutputTail = exit.Output
		if exit.Err != nil && exit.PID == 0 && rec.LaunchError == "" {
			rec.LaunchError = exit.Err.Error()
		}
	})
	fields := logger.Fields{"operation": exit.ID, "exit_code": exit.ExitCode}
	if exit.ExitCode != 0 || exit.Err != nil {
		logger.Warn("Package manager command failed", fields)
		return
	}
	logger.Debug("Package manager command finished", fields)
}

// complete marks the operation completed exactly once and runs its post hook.
func (o *Orchestrator) complete(res *model.StatusResult) {
	if o.Journal == nil {
		return
	}
	var claimed bool
	var rec model.Operation
	err := o.Journal.Update(res.Operation, func(op *model.Operation) {
		if op.Completed() {
			return
		}
		op.CompletedAt = time.Now()
		op.HooksRun = true
		claimed = true
		rec = *op
	})
	if err != nil {
		logger.Warn("Failed to mark operation completed", logger.Fields{"operation": res.Operation, "error": err.Error()})
		return
	}
	if !claimed {
		return
	}

	emit(o.Hooks, Event{Phase: "completed", ID: rec.ID, Msg: rec.Package})
	logger.Success("Operation completed", logger.Fields{"operation": rec.ID, "mode": string(rec.Mode), "package": rec.Package})
	if err := o.runHook(rec.Mode, true, rec.Package, rec.Version); err != nil {
		logger.Warn("Post hook failed", logger.Fields{"operation": rec.ID, "error": err.Error()})
	}
}

func (o *Orchestrator) runHook(mode model.Mode, post bool, pkg, version string) error {
	if o.Lifecycle == nil {
		return nil
	}
	hookType, ok := hooks.ForMode(mode, post)
	if !ok {
		return nil
	}
	return o.Lifecycle.Execute(hookType, hooks.HookContext{
		PackageName:    pkg,
		PackageVersion: version,
		ProjectDir:     o.ProjectDir,
		Mode:           mode,
	})
}

func (o *Orchestrator) updateOperation(id string, fn func(*model.Operation)) {
	if o.Journal == nil || id == "" {
		return
	}
	if err := o.Journal.Update(id, fn); err != nil {
		logger.Warn("Failed to update operation", logger.Fields{"operation": id, "error": err.Error()})
	}
}

func (o *Orchestrator) reject(req model.OperationRequest, err error) error {
	reason := RejectReason(err)
	o.Metrics.rejected(req.Mode, reason)
	emit(o.Hooks, Event{Phase: "rejected", Msg: err.Error()})
	logger.Warn("Request rejected", logger.Fields{
		"mode":    string(req.Mode),
		"package": req.Package,
		"version": req.Version,
		"reason":  reason,
		"error":   err.Error(),
	})
	return err
}

func (o *Orchestrator) nextID() string {
	if o.newID != nil {
		return o.newID()
	}
	return uuid.NewString()
}

// RejectReason classifies err into a short label.
func RejectReason(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidMode):
		return "invalid_mode"
	case stderrors.Is(err, errors.ErrInvalidPackage):
		return "invalid_package"
	case stderrors.Is(err, errors.ErrInvalidVersion):
		return "invalid_version"
	case stderrors.Is(err, errors.ErrRequiredPackage):
		return "required_package"
	case stderrors.Is(err, errors.ErrHookScript), stderrors.Is(err, errors.ErrHookExecution):
		return "hook"
	case stderrors.Is(err, errors.ErrLauncherBusy), stderrors.Is(err, errors.ErrLauncherClosed), stderrors.Is(err, errors.ErrLaunchFailure):
		return "launcher"
	case stderrors.Is(err, errors.ErrManifestRead):
		return "manifest"
	case stderrors.Is(err, errors.ErrPackageNotInRegistry), stderrors.Is(err, errors.ErrRegistryUnavailable), stderrors.Is(err, errors.ErrRegistryResponse):
		return "registry"
	default:
		return "other"
	}
}

// IsValidationError reports whether err is a request the user can fix, as
// opposed to a failure of kitctl or its environment.
func IsValidationError(err error) bool {
	switch RejectReason(err) {
	case "invalid_mode", "invalid_package", "invalid_version", "required_package", "hook":
		return true
	}
	return false
}
