package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/glorpus-work/kitctl/pkg/restart"
	"github.com/spf13/cobra"
)

// DefaultPollInterval is how often status --wait polls.
const DefaultPollInterval = 2 * time.Second

// Number of arguments expected by the status command.
const statusCommandArgs = 2

type statusOptions struct {
	version   string
	wait      bool
	interval  time.Duration
	restarted bool
	json      bool
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	opts := &statusOptions{}
	cmd := &cobra.Command{
		Use:   "status MODE PACKAGE",
		Short: "Show the state of a plugin operation",
		Long: `Reconcile the project's manifest with the last operation recorded for a
plugin and report processing, completed or error. MODE is install, uninstall,
update or status.`,
		Args: cobra.ExactArgs(statusCommandArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseMode(args[0])
			if err != nil {
				return err
			}
			req := model.OperationRequest{Mode: mode, Package: args[1], Version: opts.version}
			return runStatus(commandContext(cmd), cmd.OutOrStdout(), req, opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "Version the operation requested")
	cmd.Flags().BoolVar(&opts.wait, "wait", false, "Poll until the operation is no longer processing")
	cmd.Flags().DurationVar(&opts.interval, "interval", DefaultPollInterval, "Poll interval used with --wait")
	cmd.Flags().BoolVar(&opts.restarted, "restarted", false, "Treat the console as restarted since the operation")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")

	return cmd
}

func runStatus(ctx context.Context, out io.Writer, req model.OperationRequest, opts *statusOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	signal := &restart.Signal{}
	if opts.restarted {
		signal.Set()
	}
	restart.FromEnv(signal, os.Getenv)

	a, err := newApp(cfg, appOptions{signal: signal})
	if err != nil {
		return err
	}
	defer a.Close()

	interval := opts.interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		res, err := a.orch.Status(ctx, req)
		if err != nil {
			return err
		}
		if !opts.wait || res.Status != model.StatusProcessing {
			return printStatus(out, res, opts.json)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func printStatus(out io.Writer, res *model.StatusResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	line := fmt.Sprintf("%s %s: %s", res.Mode, res.Package, res.Status)
	if res.Version != "" {
		line = fmt.Sprintf("%s %s@%s: %s", res.Mode, res.Package, res.Version, res.Status)
	}
	if res.Message != "" {
		line += " (" + res.Message + ")"
	}
	_, _ = fmt.Fprintln(out, line)

	if res.Status == model.StatusError {
		return fmt.Errorf("operation failed: %s", res.Message)
	}
	return nil
}
