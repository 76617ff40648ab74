//go:generate mockgen -destination=mocks/console.go . Operations,PackageSource,CommandPreviewer
package console

import (
	"context"

	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/orchestrator"
)

// Operations starts lifecycle operations and answers status polls.
type Operations interface {
	Start(ctx context.Context, req model.OperationRequest) (*orchestrator.StartResult, error)
	Status(ctx context.Context, req model.OperationRequest) (*model.StatusResult, error)
}

// PackageSource lists and looks up plugins.
type PackageSource interface {
	Lookup(ctx context.Context, name string) (*model.PackageInfo, error)
	All(ctx context.Context) ([]*model.PackageInfo, error)
	Installed(ctx context.Context) ([]*model.PackageInfo, error)
	Search(ctx context.Context, query string) ([]*model.PackageInfo, error)
}

// CommandPreviewer renders the command a request would run.
type CommandPreviewer interface {
	Preview(req model.OperationRequest, info *model.PackageInfo) (string, error)
}
