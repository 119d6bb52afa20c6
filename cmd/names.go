package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/config"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/presentation"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List the directive names offered for completion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return presentation.NewFormatter(cmd.OutOrStdout(), presentation.FormatYAML).
			FormatLines(newCompleter().Names())
	},
}

var namesSetCmd = &cobra.Command{
	Use:   "set <name>...",
	Short: "Replace the directive names in the config file",
	Long: `Replace directives.names in the config file in use. Comments and other
settings in the file are kept.

Example:
  headline names set option multi_option layout`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := complete.ValidateNames(args); err != nil {
			return err
		}

		path := configPath()
		if err := config.SaveDirectiveNames(path, args); err != nil {
			return fmt.Errorf("saving names: %w", err)
		}
		log.Info(log.CatConfig, "Saved directive names", "path", path, "count", len(args))

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %d names to %s\n", len(args), path)
		return err
	},
}

func init() {
	namesCmd.AddCommand(namesSetCmd)
	rootCmd.AddCommand(namesCmd)
}
