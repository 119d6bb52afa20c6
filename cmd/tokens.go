package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/presentation"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token spans of a document's header",
	Long: `Tokenize the header line and print the spans as JSON:

  [{"kind":"At","start":0,"end":1,"text":"@"}, ...]

Offsets are byte offsets into the whole document. A header that cannot be
tokenized prints [].`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, buffer, err := readDocument(cmd, args)
		if err != nil {
			return err
		}

		analyzer := newAnalyzer()
		defer analyzer.Close()

		result := analyzer.Analyze(cmd.Context(), doc, buffer)
		return presentation.NewFormatter(cmd.OutOrStdout(), presentation.FormatJSON).FormatSpans(result.Spans)
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
