package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/presentation"
)

var completeJSON bool

var completeCmd = &cobra.Command{
	Use:   "complete <prefix>",
	Short: "Suggest directive names for a partial header",
	Long: `List the configured directive names that start with the text after '@',
ignoring case. The leading '@' is optional.

Examples:
  headline complete @m
  headline complete opt --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]
		if len(prefix) == 0 || prefix[0] != '@' {
			prefix = "@" + prefix
		}

		s := newCompleter().Suggest(prefix)
		if completeJSON {
			return presentation.NewFormatter(cmd.OutOrStdout(), presentation.FormatJSON).
				Format(presentation.FromSuggestions(s))
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), presentation.FormatYAML).FormatLines(s.Matches)
	},
}

func init() {
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "print JSON")
	rootCmd.AddCommand(completeCmd)
}
