package cli

import (
	"fmt"
	"io"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage kitctl's cache",
		Long:  "Clean and show information about cached registry documents and operation logs",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var opts cache.CleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the cache",
		Long:  "Remove cached files to free up disk space",
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := loadCacheManager()
			if err != nil {
				return err
			}
			return runCacheClean(manager, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Clean all cached files")
	cmd.Flags().BoolVar(&opts.Registry, "registry", false, "Clean only cached registry documents")
	cmd.Flags().BoolVar(&opts.Logs, "logs", false, "Clean only operation logs")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display information about kitctl's cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := loadCacheManager()
			if err != nil {
				return err
			}
			return runCacheInfo(cmd.OutOrStdout(), manager)
		},
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := loadCacheManager()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), manager.GetDirectory())
			return nil
		},
	}
}

func loadCacheManager() (cache.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewManager(cfg.Settings.CacheDir), nil
}

func runCacheClean(manager cache.Manager, opts cache.CleanOptions) error {
	result, err := manager.Clean(opts)
	if err != nil {
		return err
	}

	if result.RegistryFreed > 0 {
		logger.Info("Cleaned registry cache", logger.Fields{"size": cache.FormatBytes(result.RegistryFreed)})
	}
	if result.LogsFreed > 0 {
		logger.Info("Cleaned operation logs", logger.Fields{"size": cache.FormatBytes(result.LogsFreed)})
	}

	logger.Success("Cache cleaning completed", logger.Fields{"total_freed": cache.FormatBytes(result.TotalFreed)})
	return nil
}

func runCacheInfo(out io.Writer, manager cache.Manager) error {
	info, err := manager.GetInfo()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Cache Directory: %s\n", info.Directory)
	_, _ = fmt.Fprintf(out, "Total Size: %s\n", cache.FormatBytes(info.TotalSize))
	_, _ = fmt.Fprintf(out, "Registry Cache: %s (%d files)\n", cache.FormatBytes(info.RegistrySize), info.RegistryFiles)
	_, _ = fmt.Fprintf(out, "Operation Logs: %s (%d files)\n", cache.FormatBytes(info.LogsSize), info.LogsFiles)

	return nil
}
