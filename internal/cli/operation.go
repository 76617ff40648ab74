package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/launcher"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/orchestrator"
	"github.com/spf13/cobra"
)

type operationOptions struct {
	version string
	detach  bool
	dryRun  bool
}

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	return newOperationCmd(model.ModeInstall, "install PACKAGE", "Install a plugin",
		`Install a plugin into the prototype project with the configured package manager.
Without --version the latest published version is pinned.`)
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	return newOperationCmd(model.ModeUninstall, "uninstall PACKAGE", "Uninstall a plugin",
		`Remove an installed plugin from the prototype project.
Plugins the kit requires cannot be removed.`)
}

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	return newOperationCmd(model.ModeUpdate, "update PACKAGE", "Update a plugin",
		`Update an installed plugin, to the latest version unless --version is given.`)
}

func newOperationCmd(mode model.Mode, use, short, long string) *cobra.Command {
	opts := &operationOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.OperationRequest{Mode: mode, Package: args[0], Version: opts.version}
			return runOperation(commandContext(cmd), cmd.OutOrStdout(), req, opts)
		},
	}

	if mode != model.ModeUninstall {
		cmd.Flags().StringVar(&opts.version, "version", "", "Version to install (defaults to the latest)")
	}
	cmd.Flags().BoolVar(&opts.detach, "detach", false, "Return once the package manager has started")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the command without running it")

	return cmd
}

func runOperation(ctx context.Context, out io.Writer, req model.OperationRequest, opts *operationOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exits := make(chan launcher.Exit, 1)
	a, err := newApp(cfg, appOptions{
		onExit: func(exit launcher.Exit) { exits <- exit },
		onEvent: func(e orchestrator.Event) {
			logger.DebugfWithFields(logger.Fields{"operation": e.ID}, "%s: %s", e.Phase, e.Msg)
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.dryRun {
		info, err := a.packages.Lookup(ctx, req.Package)
		if err != nil {
			return err
		}
		preview, err := a.commands.Preview(req, info)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, preview)
		return nil
	}

	started := time.Now()
	res, err := a.orch.Start(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", req.Mode, req.Package, err)
	}
	_, _ = fmt.Fprintf(out, "%s\n", res.Command)
	if opts.detach {
		_, _ = fmt.Fprintf(out, "Operation %s started, check progress with: kitctl status %s %s\n", res.Operation, req.Mode, req.Package)
		return nil
	}

	var exit launcher.Exit
	select {
	case exit = <-exits:
	case <-ctx.Done():
		return ctx.Err()
	}
	if exit.Err != nil {
		return fmt.Errorf("%s %s: %w", req.Mode, req.Package, exit.Err)
	}
	if exit.ExitCode != 0 {
		if exit.Output != "" {
			_, _ = fmt.Fprintln(out, exit.Output)
		}
		return fmt.Errorf("%s exited with code %d", res.Command, exit.ExitCode)
	}

	logger.Success("Package manager finished", logger.Fields{
		"mode":     string(req.Mode),
		"package":  req.Package,
		"version":  res.Version,
		"duration": exit.ExitedAt.Sub(started).Round(time.Millisecond).String(),
	})
	_, _ = fmt.Fprintln(out, "Done. Restart the console to load the change.")
	return nil
}
