// Package headerdiff compares two versions of a header line token by token.
package headerdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/headline/internal/directive"
)

// Op is the kind of change a segment represents.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Segment is a run of text with its diff status.
type Segment struct {
	Op   Op
	Text string
}

// Compare diffs oldLine against newLine. Lines that both tokenize are
// compared whole token at a time, so "a=1" -> "a=12" reports the value as
// replaced rather than a digit appended. Anything else falls back to a
// character diff.
func Compare(oldLine, newLine string) []Segment {
	if oldLine == newLine {
		if oldLine == "" {
			return nil
		}
		return []Segment{{Op: Equal, Text: oldLine}}
	}

	dmp := diffmatchpatch.New()

	oldTokens := tokens(oldLine)
	newTokens := tokens(newLine)
	var diffs []diffmatchpatch.Diff
	if oldTokens != nil && newTokens != nil {
		// One token per line lets the line-mode diff treat tokens as atoms.
		a, b, table := dmp.DiffLinesToRunes(joinLines(oldTokens), joinLines(newTokens))
		diffs = dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), table)
	} else {
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(oldLine, newLine, false))
	}

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\n", "")
		if text == "" {
			continue
		}

		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}

		// Merge with the previous segment of the same kind.
		if n := len(segments); n > 0 && segments[n-1].Op == op {
			segments[n-1].Text += text
			continue
		}
		segments = append(segments, Segment{Op: op, Text: text})
	}
	return segments
}

// Changed reports whether segments contain any insertion or deletion.
func Changed(segments []Segment) bool {
	for _, s := range segments {
		if s.Op != Equal {
			return true
		}
	}
	return false
}

// Render formats segments inline: deletions as [-text-], insertions as
// {+text+}.
func Render(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.Op {
		case Delete:
			b.WriteString("[-" + s.Text + "-]")
		case Insert:
			b.WriteString("{+" + s.Text + "+}")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func tokens(line string) []string {
	if line == "" {
		return []string{}
	}
	spans := directive.NewLexer(line).Tokenize()
	if spans == nil {
		return nil
	}
	texts := make([]string, len(spans))
	for i, s := range spans {
		texts[i] = s.Text
	}
	return texts
}

func joinLines(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t)
		b.WriteByte('\n')
	}
	return b.String()
}
