package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/presentation"
)

var (
	parseJSON   bool
	parseOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse the directive header of a document",
	Long: `Parse the first non-blank line of a document as a directive header and
print the result. Reads stdin when no file (or "-") is given.

A rejected header prints the error with a caret under the offending column
to stderr and exits with status 1.

Examples:
  headline parse notes.txt
  echo '@option a=1' | headline parse --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print JSON instead of YAML")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", string(presentation.FormatYAML), "output format: yaml or json")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := presentation.ParseFormat(parseOutput)
	if err != nil {
		return err
	}
	if parseJSON {
		format = presentation.FormatJSON
	}

	doc, buffer, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	analyzer := newAnalyzer()
	defer analyzer.Close()

	result := analyzer.Analyze(cmd.Context(), doc, buffer)
	if result.Err != nil {
		if perr, ok := result.ParseError(); ok {
			_ = presentation.NewFormatter(cmd.ErrOrStderr(), format).FormatCaret(perr)
		}
		return result.Err
	}

	return presentation.NewFormatter(cmd.OutOrStdout(), format).
		Format(presentation.FromParse(result.Parsed, nil))
}
