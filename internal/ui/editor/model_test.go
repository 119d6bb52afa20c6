package editor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/headline/internal/analysis"
	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/directive"
	"github.com/zjrosen/headline/internal/log"
	"github.com/zjrosen/headline/internal/pubsub"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func newTestModel(t *testing.T, content string) Model {
	t.Helper()
	a := analysis.New(analysis.Config{})
	t.Cleanup(a.Close)
	return New(Config{
		Analyzer:  a,
		Completer: complete.New(nil),
		Theme:     directive.DefaultTheme(),
		Content:   content,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNew_AnalyzesInitialContent(t *testing.T) {
	m := newTestModel(t, "@option a=1\nbody")

	require.True(t, m.Analysis().Valid())
	require.Equal(t, "option", m.Analysis().Parsed.Directive.Name)
	require.False(t, m.Dirty())
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{})

	require.True(t, m.Analysis().Empty())
	require.Equal(t, "", m.Value())
	require.Contains(t, ansi.Strip(m.View()), "untitled")
}

func TestTyping_ReanalyzesAndSuggests(t *testing.T) {
	m := newTestModel(t, "")

	m = typeText(t, m, "@m")

	require.True(t, m.Dirty())
	require.Equal(t, "@m", m.Value())
	require.True(t, m.Analysis().Valid())
	require.True(t, m.PopupVisible())
	require.Equal(t, []string{"multi_option", "matching_pair"}, m.Suggestions().Matches)
}

func TestTab_CyclesSuggestions(t *testing.T) {
	m := typeText(t, newTestModel(t, ""), "@m")

	m, _ = update(t, m, keyMsg(tea.KeyTab))
	require.Equal(t, 1, m.Suggestions().Active)

	m, _ = update(t, m, keyMsg(tea.KeyTab))
	require.Equal(t, 0, m.Suggestions().Active, "wraps to the first entry")

	m, _ = update(t, m, keyMsg(tea.KeyShiftTab))
	require.Equal(t, 1, m.Suggestions().Active, "wraps to the last entry")
	require.Equal(t, "@m", m.Value(), "cycling never edits the buffer")
}

func TestEnter_AcceptsSuggestion(t *testing.T) {
	m := typeText(t, newTestModel(t, ""), "@m")
	m, _ = update(t, m, keyMsg(tea.KeyTab))

	m, _ = update(t, m, keyMsg(tea.KeyEnter))

	require.Equal(t, "@matching_pair", m.Value())
	require.False(t, m.PopupVisible())
	require.True(t, m.Analysis().Valid())
	require.Equal(t, "matching_pair", m.Analysis().Parsed.Directive.Name)
}

func TestEnter_InsertsNewlineWithoutPopup(t *testing.T) {
	m := typeText(t, newTestModel(t, ""), "@zz")
	require.False(t, m.PopupVisible())

	m, _ = update(t, m, keyMsg(tea.KeyEnter))

	require.Equal(t, "@zz\n", m.Value())
}

func TestEsc_HidesPopup(t *testing.T) {
	m := typeText(t, newTestModel(t, ""), "@o")
	require.True(t, m.PopupVisible())

	m, _ = update(t, m, keyMsg(tea.KeyEsc))
	require.False(t, m.PopupVisible())
	require.Equal(t, []string{"option"}, m.Suggestions().Matches)

	m = typeText(t, m, "p")
	require.True(t, m.PopupVisible(), "editing reopens the popup")
}

func TestView_ShowsParseErrorWithCaret(t *testing.T) {
	m := newTestModel(t, "@option key")

	view := ansi.Strip(m.View())

	require.Contains(t, view, "DSL parse error")
	require.Contains(t, view, "@option key\n")
	perr, ok := m.Analysis().ParseError()
	require.True(t, ok)
	require.Contains(t, view, strings.Repeat(" ", perr.Offset)+"^")
}

func TestView_ShowsMissingMarker(t *testing.T) {
	m := newTestModel(t, "option a=1")

	require.Contains(t, ansi.Strip(m.View()), "First non-empty line must start with @")
}

func TestView_ShowsSummary(t *testing.T) {
	m := newTestModel(t, "@option a=1 b=2")

	view := ansi.Strip(m.View())
	require.Contains(t, view, "✓ @option 2 pairs")
}

func TestView_UnknownDirectiveHint(t *testing.T) {
	m := newTestModel(t, "@layout cols=2")

	view := ansi.Strip(m.View())
	require.Contains(t, view, "✓ @layout 1 pair")
	require.Contains(t, view, "@layout is not one of the suggested directives")
}

func TestView_EmptyBuffer(t *testing.T) {
	m := newTestModel(t, "")

	view := ansi.Strip(m.View())
	require.Contains(t, view, "(no header)")
	require.Contains(t, view, "No header line")
}

func TestView_HighlightsHeader(t *testing.T) {
	m := newTestModel(t, "@option a=1")

	view := m.View()
	require.Contains(t, view, directive.Highlight("@option a=1", directive.DefaultTheme()))
}

func TestUpdate_LogEvents(t *testing.T) {
	m := newTestModel(t, "")

	for i := range 5 {
		m, _ = update(t, m, log.LogEvent{Type: pubsub.LoggedEvent, Payload: strings.Repeat("x", i+1) + "\n"})
	}

	require.Equal(t, []string{"xxx", "xxxx", "xxxxx"}, m.logLines)
	require.Contains(t, ansi.Strip(m.View()), "xxxxx")
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t, "")

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	require.Nil(t, cmd)
	require.Equal(t, 100, m.width)
	require.Equal(t, 40, m.height)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	a := analysis.New(analysis.Config{})
	t.Cleanup(a.Close)
	m := New(Config{Analyzer: a, Path: path, Content: "@option"})
	m = typeText(t, m, " a=1")
	require.True(t, m.Dirty())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(SavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "@option a=1", string(data))

	m, _ = update(t, m, saved)
	require.False(t, m.Dirty())
	require.Contains(t, ansi.Strip(m.View()), "saved "+path)
}

func TestSave_WithoutPath(t *testing.T) {
	m := newTestModel(t, "@option")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	saved, ok := cmd().(SavedMsg)
	require.True(t, ok)
	require.ErrorIs(t, saved.Err, errNoPath)

	m, _ = update(t, m, saved)
	require.Contains(t, ansi.Strip(m.View()), "save failed")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestHeaderRow(t *testing.T) {
	require.Equal(t, -1, headerRow(""))
	require.Equal(t, -1, headerRow("\n  \n"))
	require.Equal(t, 0, headerRow("@option"))
	require.Equal(t, 2, headerRow("\n \t\n@option\nbody"))
}

func TestPopupHiddenOffHeaderLine(t *testing.T) {
	m := newTestModel(t, "@o\nbody")

	require.True(t, m.Suggestions().Open)
	require.False(t, m.PopupVisible(), "cursor starts at the end of the buffer")
}

func TestEditor_Program(t *testing.T) {
	var logs bytes.Buffer
	log.InitWriter(&logs)
	t.Cleanup(log.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := analysis.New(analysis.Config{})
	t.Cleanup(a.Close)
	m := New(Config{Context: ctx, Analyzer: a, Theme: directive.DefaultTheme()})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 30))

	tm.Type("@multi")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type(" a=1")

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("1 pair"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	require.Equal(t, "@multi_option a=1", final.Value())
	require.True(t, final.Analysis().Valid())
	require.Contains(t, logs.String(), "[parse] Header analyzed")
}
