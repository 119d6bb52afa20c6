// Package editor is a terminal playground for directive headers. The first
// non-blank line of the buffer is parsed, highlighted and completed while
// the user types.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/headline/internal/analysis"
	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/directive"
	"github.com/zjrosen/headline/internal/log"
)

const (
	maxLogLines   = 3
	maxPopupItems = 6
	minInputRows  = 3

	defaultWidth  = 80
	defaultHeight = 24

	untitled = "untitled"
)

var errNoPath = errors.New("no file to save to; start the editor with a path")

// Config configures the editor.
type Config struct {
	// Context bounds the log subscription. Defaults to context.Background().
	Context   context.Context
	Analyzer  *analysis.Analyzer
	Completer *complete.Completer
	Theme     directive.Theme
	// Path is where ctrl+s writes the buffer. Empty disables saving.
	Path    string
	Content string
}

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Path string
	Err  error
}

// Model is the editor state.
type Model struct {
	ctx       context.Context
	analyzer  *analysis.Analyzer
	completer *complete.Completer
	theme     directive.Theme
	path      string
	doc       analysis.DocumentKey

	input       textarea.Model
	keys        KeyMap
	help        help.Model
	current     analysis.Analysis
	suggestions complete.Suggestions

	logs     *log.LogListener
	logLines []string

	status string
	dirty  bool
	width  int
	height int
}

// New creates an editor over cfg.Content.
func New(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = analysis.New(analysis.Config{})
	}
	completer := cfg.Completer
	if completer == nil {
		completer = complete.New(nil)
	}
	doc := analysis.DocumentKey(cfg.Path)
	if doc == "" {
		doc = untitled
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "@option key=value"
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.SetValue(cfg.Content)
	ta.Focus()

	m := Model{
		ctx:       ctx,
		analyzer:  analyzer,
		completer: completer,
		theme:     cfg.Theme,
		path:      cfg.Path,
		doc:       doc,
		input:     ta,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		logs:      log.NewListener(ctx),
	}
	m = m.SetSize(defaultWidth, defaultHeight)
	m.refresh()
	return m
}

// Init starts the cursor blink and the log subscription.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the editor.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case log.LogEvent:
		m.logLines = append(m.logLines, strings.TrimRight(msg.Payload, "\n"))
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		if m.logs == nil {
			return m, nil
		}
		return m, m.logs.Listen()

	case SavedMsg:
		if msg.Err != nil {
			m.status = "save failed: " + msg.Err.Error()
			return m, nil
		}
		m.dirty = false
		m.status = "saved " + msg.Path
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	popup := m.PopupVisible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()

	case popup && key.Matches(msg, m.keys.Next):
		m.suggestions = m.suggestions.Cycle(true)
		return m, nil

	case popup && key.Matches(msg, m.keys.Prev):
		m.suggestions = m.suggestions.Cycle(false)
		return m, nil

	case popup && key.Matches(msg, m.keys.Accept):
		return m.accept(), nil

	case popup && key.Matches(msg, m.keys.Hide):
		m.suggestions = m.suggestions.Hide()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.dirty = true
		m.status = ""
		m.refresh()
	}
	return m, cmd
}

// accept writes the active suggestion into the header and leaves the
// cursor at the end of the header line.
func (m Model) accept() Model {
	accepted, ok := m.suggestions.Accept()
	if !ok {
		return m
	}

	m.input.SetValue(complete.Apply(m.input.Value(), accepted))
	if row := headerRow(m.input.Value()); row >= 0 {
		for i := m.input.Line(); i > row; i-- {
			m.input.CursorUp()
		}
		m.input.CursorEnd()
	}

	m.dirty = true
	m.refresh()
	m.suggestions = m.suggestions.Hide()
	log.Debug(log.CatUI, "Accepted suggestion", "name", accepted)
	return m
}

// refresh re-analyzes the buffer and recomputes suggestions.
func (m *Model) refresh() {
	value := m.input.Value()
	m.current = m.analyzer.Analyze(m.ctx, m.doc, value)

	header, ok := directive.HeaderLine(value)
	if !ok {
		m.suggestions = complete.Suggestions{}
		return
	}
	m.suggestions = m.completer.Suggest(header)
}

func (m Model) saveCmd() tea.Cmd {
	path, content := m.path, m.input.Value()
	if path == "" {
		return func() tea.Msg { return SavedMsg{Err: errNoPath} }
	}
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: user document
			log.ErrorErr(log.CatUI, "Failed to save document", err, "path", path)
			return SavedMsg{Path: path, Err: fmt.Errorf("saving %s: %w", path, err)}
		}
		log.Info(log.CatUI, "Saved document", "path", path, "bytes", len(content))
		return SavedMsg{Path: path}
	}
}

// SetSize resizes the editor to the terminal.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	m.input.SetWidth(width)

	// title, header, two dividers, status, caret, logs, help, popup
	chrome := 7 + maxLogLines + maxPopupItems + 2
	m.input.SetHeight(max(height-chrome, minInputRows))
	return m
}

// Value returns the buffer.
func (m Model) Value() string {
	return m.input.Value()
}

// Analysis returns the analysis of the current buffer.
func (m Model) Analysis() analysis.Analysis {
	return m.current
}

// Suggestions returns the current completion state.
func (m Model) Suggestions() complete.Suggestions {
	return m.suggestions
}

// Dirty reports unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

// PopupVisible reports whether completions are shown. They are only shown
// while the cursor is on the header line.
func (m Model) PopupVisible() bool {
	return m.suggestions.Open && m.input.Line() == headerRow(m.input.Value())
}

// headerRow returns the index of the first non-blank line, or -1.
func headerRow(value string) int {
	for i, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}

// View renders the editor.
func (m Model) View() string {
	divider := dividerStyle.Render(strings.Repeat("─", max(m.width, 1)))

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteString("\n")
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.PopupVisible() {
		b.WriteString(m.popupView())
		b.WriteString("\n")
	}
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	for _, line := range m.logLines {
		b.WriteString(mutedStyle.Render(ansi.Truncate(line, m.width, "…")))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) titleView() string {
	name := m.path
	if name == "" {
		name = untitled
	}
	if m.dirty {
		name += " [modified]"
	}
	return titleStyle.Render("headline") + mutedStyle.Render(name)
}

func (m Model) headerView() string {
	if m.current.Empty() {
		return mutedStyle.Render("(no header)")
	}
	return directive.Highlight(m.input.Value(), m.theme)
}

func (m Model) statusView() string {
	width := max(m.width, 20)

	var lines []string
	switch {
	case m.current.Empty():
		lines = append(lines, mutedStyle.Render("No header line. Start the first line with @"))

	case m.current.Err != nil:
		lines = append(lines, errorStyle.Render(wordwrap.String("✗ "+m.current.Err.Error(), width)))
		if perr, ok := m.current.ParseError(); ok {
			text, caret, _ := strings.Cut(perr.Caret(), "\n")
			lines = append(lines, mutedStyle.Render(ansi.Truncate(text, width, "…")), caretStyle.Render(caret))
		}

	default:
		d := m.current.Parsed.Directive
		summary := okStyle.Render("✓ @"+d.Name) + mutedStyle.Render(fmt.Sprintf(" %d %s", len(d.Pairs), plural(len(d.Pairs), "pair", "pairs")))
		lines = append(lines, summary)
		if m.suggestions.Unknown() {
			lines = append(lines, warnStyle.Render(wordwrap.String(
				fmt.Sprintf("@%s is not one of the suggested directives", m.suggestions.Filter), width)))
		}
	}

	if m.status != "" {
		lines = append(lines, mutedStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func (m Model) popupView() string {
	matches := m.suggestions.Matches
	start := 0
	if m.suggestions.Active >= maxPopupItems {
		start = m.suggestions.Active - maxPopupItems + 1
	}
	end := min(start+maxPopupItems, len(matches))

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == m.suggestions.Active {
			items = append(items, popupSelectedStyle.Render("> "+matches[i]))
			continue
		}
		items = append(items, popupItemStyle.Render("  "+matches[i]))
	}

	return popupStyle.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
