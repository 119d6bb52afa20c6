package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/directive"
)

var highlightColor bool

var highlightCmd = &cobra.Command{
	Use:   "highlight [file|-]",
	Short: "Print the header line with syntax colors",
	Long: `Print the header line styled per token using the configured theme.
Colors are only emitted on a terminal unless --color is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, buffer, err := readDocument(cmd, args)
		if err != nil {
			return err
		}

		theme, err := cfg.Theme.Theme()
		if err != nil {
			return err
		}
		if highlightColor {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}

		line := directive.Highlight(buffer, theme)
		if line == "" {
			return nil
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
		return err
	},
}

func init() {
	highlightCmd.Flags().BoolVar(&highlightColor, "color", false, "force ANSI colors")
	rootCmd.AddCommand(highlightCmd)
}
