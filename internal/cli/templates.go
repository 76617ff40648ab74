package cli

import (
	"fmt"

	"github.com/glorpus-work/kitctl/pkg/pathcheck"
	"github.com/spf13/cobra"
)

// NewTemplatesCmd creates the templates command with subcommands.
func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Work with page templates",
	}
	cmd.AddCommand(newTemplatesCheckPathCmd())
	return cmd
}

func newTemplatesCheckPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-path PATH",
		Short: "Check a URL path for a new page",
		Long: `Check whether a page template can be installed at PATH. A leading slash is
added when missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res := pathcheck.Check(pathcheck.Normalize(args[0]), pathcheck.ViewExists(cfg.ViewsDir()))
			if !res.Valid {
				return fmt.Errorf("%s: %s (%s)", res.Path, res.Message, res.Code)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is available\n", res.Path)
			return nil
		},
	}
}
