package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/analysis"
)

const stdinName = "-"

// readDocument reads the file named by args[0], or stdin when args is empty
// or "-". It returns the document key used for analysis.
func readDocument(cmd *cobra.Command, args []string) (analysis.DocumentKey, string, error) {
	if len(args) == 0 || args[0] == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	path := args[0]
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return analysis.DocumentKey(path), string(data), nil
}
