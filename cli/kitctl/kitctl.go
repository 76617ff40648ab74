package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/glorpus-work/kitctl/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	projectDir string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitctl",
		Short: "Manage the plugins of a prototype kit project",
		Long: `kitctl manages the plugins of a prototype kit project with:
- Console: the JSON API behind the management pages (serve)
- CLI: install, update, uninstall and status of plugins
- Tooling: plugin listings, template path checks and cache maintenance`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&projectDir, "project", "C", "", "prototype project directory (default: config or current directory)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.ProjectDir = &projectDir

	// Add subcommands
	cmd.AddCommand(
		cli.NewServeCmd(),
		cli.NewInstallCmd(),
		cli.NewUninstallCmd(),
		cli.NewUpdateCmd(),
		cli.NewStatusCmd(),
		cli.NewPluginsCmd(),
		cli.NewTemplatesCmd(),
		cli.NewConfigCmd(),
		cli.NewCacheCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
