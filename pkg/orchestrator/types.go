//go:generate mockgen -destination=./mocks/orchestrator.go . PackageResolver,CommandResolver,Launcher,StatusReconciler

package orchestrator

import (
	"context"

	"github.com/glorpus-work/kitctl/pkg/hooks"
	"github.com/glorpus-work/kitctl/pkg/launcher"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/state"
)

// PackageResolver is the subset of the package resolver used by the orchestrator.
type PackageResolver interface {
	Lookup(ctx context.Context, name string) (*model.PackageInfo, error)
}

// CommandResolver validates requests and builds command plans.
type CommandResolver interface {
	Resolve(req model.OperationRequest, info *model.PackageInfo) (*model.CommandPlan, error)
}

// Launcher starts command plans without waiting for them.
type Launcher interface {
	Launch(ctx context.Context, id string, plan *model.CommandPlan) (*launcher.Process, error)
}

// StatusReconciler answers status polls.
type StatusReconciler interface {
	Reconcile(ctx context.Context, req model.OperationRequest) (*model.StatusResult, error)
}

// Orchestrator ties package lookup, command resolution, launching and status
// reconciliation together for the console and the CLI.
type Orchestrator struct {
	Packages   PackageResolver
	Commands   CommandResolver
	Launcher   Launcher
	Reconciler StatusReconciler

	// Journal records launched operations. Optional.
	Journal state.Journal
	// Lifecycle runs the project's hook scripts. Optional.
	Lifecycle hooks.HookManager
	// ProjectDir is passed to hook scripts.
	ProjectDir string
	// Metrics counts launches, rejections and polls. Optional.
	Metrics *Metrics

	Hooks Hooks // Hooks for progress and event notifications

	newID func() string
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // validating|rejected|launching|launched|completed|error
	ID    string // operation ID
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// StartResult is the synchronous answer to an install, update or uninstall request.
type StartResult struct {
	Status    model.Status `json:"status"`
	Operation string       `json:"operation"`
	Command   string       `json:"command"`
	Version   string       `json:"version,omitempty"`
}
