package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/spf13/cobra"
)

// Table layout.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// MaxVersionsShown is how many published versions plugins info lists.
	MaxVersionsShown = 10
)

// NewPluginsCmd creates the plugins command with subcommands.
func NewPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List and inspect plugins",
		Long:  "Show the plugins the project knows about, installed or available from the registry",
	}

	cmd.AddCommand(
		newPluginsListCmd(),
		newPluginsSearchCmd(),
		newPluginsInfoCmd(),
	)

	return cmd
}

func newPluginsListCmd() *cobra.Command {
	var installed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(func(a *app) error {
				lookup := a.packages.All
				if installed {
					lookup = a.packages.Installed
				}
				infos, err := lookup(commandContext(cmd))
				if err != nil {
					return err
				}
				return printPlugins(cmd.OutOrStdout(), infos)
			})
		},
	}

	cmd.Flags().BoolVar(&installed, "installed", false, "Only list installed plugins")

	return cmd
}

func newPluginsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search known plugins by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				infos, err := a.packages.Search(commandContext(cmd), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printPlugins(cmd.OutOrStdout(), infos)
			})
		},
	}
}

func newPluginsInfoCmd() *cobra.Command {
	var asJSON, refresh bool

	cmd := &cobra.Command{
		Use:   "info PACKAGE",
		Short: "Show details of a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if refresh {
					a.registry.Invalidate(args[0])
				}
				info, err := a.packages.Lookup(commandContext(cmd), args[0])
				if err != nil {
					return err
				}
				if info == nil {
					return errors.InvalidPackage(args[0])
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(info)
				}
				printPluginInfo(cmd.OutOrStdout(), info)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plugin as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Drop the cached registry document first")

	return cmd
}

func withApp(fn func(a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printPlugins(out io.Writer, infos []*model.PackageInfo) error {
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(out, "No plugins found")
		return nil
	}

	tabWriter := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "PACKAGE\tINSTALLED\tLATEST\tSTATUS")
	for _, info := range infos {
		installed := "-"
		if info.Installed {
			installed = info.InstalledVersion
			if info.Local {
				installed = "local"
			}
		}
		latest := info.LatestVersion
		if latest == "" {
			latest = "-"
		}
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\n", info.PackageName, installed, latest, pluginStatus(info))
	}
	return tabWriter.Flush()
}

func pluginStatus(info *model.PackageInfo) string {
	var flags []string
	switch {
	case info.UpdateAvailable():
		flags = append(flags, "update available")
	case info.Installed:
		flags = append(flags, "installed")
	default:
		flags = append(flags, "available")
	}
	if info.Required {
		flags = append(flags, "required")
	}
	return strings.Join(flags, ", ")
}

func printPluginInfo(out io.Writer, info *model.PackageInfo) {
	_, _ = fmt.Fprintf(out, "Package: %s\n", info.PackageName)
	_, _ = fmt.Fprintf(out, "Status: %s\n", pluginStatus(info))
	if info.Installed {
		_, _ = fmt.Fprintf(out, "Installed Version: %s\n", info.InstalledVersion)
	}
	if info.Dependency != nil {
		switch info.Dependency.Kind {
		case model.DependencyLocal:
			_, _ = fmt.Fprintf(out, "Local Path: %s\n", info.Dependency.Path)
		case model.DependencyRemote:
			_, _ = fmt.Fprintf(out, "Source: %s\n", info.Dependency.Raw)
		}
	}
	if info.LatestVersion != "" {
		_, _ = fmt.Fprintf(out, "Latest Version: %s\n", info.LatestVersion)
	}
	if len(info.Versions) > 0 {
		versions := info.Versions
		if len(versions) > MaxVersionsShown {
			versions = versions[:MaxVersionsShown]
		}
		_, _ = fmt.Fprintf(out, "Versions: %s\n", strings.Join(versions, ", "))
	}
	_, _ = fmt.Fprintf(out, "Plugin Config: %t\n", info.HasPluginConfig)
	if len(info.DependentPackages) > 0 {
		_, _ = fmt.Fprintf(out, "Required By: %s\n", strings.Join(info.DependentPackages, ", "))
	}
	if len(info.DependencyPackages) > 0 {
		_, _ = fmt.Fprintf(out, "Depends On: %s\n", strings.Join(info.DependencyPackages, ", "))
	}
}
