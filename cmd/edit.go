package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/headline/internal/ui/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a document's header in a terminal playground",
	Long: `Open a terminal editor that parses, highlights and completes the header
line as you type. Tab and Shift+Tab cycle directive name suggestions, Enter
accepts, Esc hides them, Ctrl+S saves to file and Ctrl+Q quits.

A file that does not exist yet is created on first save.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	var path, content string
	if len(args) == 1 {
		path = args[0]
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
		switch {
		case err == nil:
			content = string(data)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	theme, err := cfg.Theme.Theme()
	if err != nil {
		return err
	}

	analyzer := newAnalyzer()
	defer analyzer.Close()

	model := editor.New(editor.Config{
		Context:   cmd.Context(),
		Analyzer:  analyzer,
		Completer: newCompleter(),
		Theme:     theme,
		Path:      path,
		Content:   content,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
