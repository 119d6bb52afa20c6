package directive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ErrorKind classifies why a header line was rejected.
type ErrorKind int

const (
	KindMissingMarker ErrorKind = iota + 1
	KindMalformed
	KindTooLong
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingMarker:
		return "missing_marker"
	case KindMalformed:
		return "malformed"
	case KindTooLong:
		return "too_long"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrMissingMarker = errors.New("missing @ marker")
	ErrMalformed     = errors.New("malformed directive")
	ErrLineTooLong   = errors.New("header line too long")
)

const missingMarkerMsg = "First non-empty line must start with @"

// ParseError describes a rejected header line.
type ParseError struct {
	Kind ErrorKind
	Msg  string

	// Line is the trimmed header line the error refers to.
	Line string
	// Token is the offending text; empty at end of line.
	Token string
	// Offset is the 0-based byte offset of Token within Line.
	Offset int
	// Column is the 1-based grapheme column of Token within Line.
	Column int
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Is matches the package sentinels by kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMissingMarker:
		return e.Kind == KindMissingMarker
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrLineTooLong:
		return e.Kind == KindTooLong
	}
	return false
}

// Caret renders the line with a caret under the offending column.
// Wide runes are measured in terminal cells and tabs are echoed so the caret
// lines up.
func (e *ParseError) Caret() string {
	offset := min(max(e.Offset, 0), len(e.Line))

	var pad strings.Builder
	for _, r := range e.Line[:offset] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return e.Line + "\n" + pad.String() + "^"
}

func missingMarker(line string) *ParseError {
	return &ParseError{
		Kind:   KindMissingMarker,
		Msg:    missingMarkerMsg,
		Line:   line,
		Token:  firstWord(line),
		Offset: 0,
		Column: 1,
	}
}

func tooLong(line string, limit int) *ParseError {
	return &ParseError{
		Kind:   KindTooLong,
		Msg:    fmt.Sprintf("header line is %d bytes, limit is %d", len(line), limit),
		Line:   line,
		Offset: limit,
		Column: columnAt(line, limit),
	}
}

// malformed builds a grammar error for the token starting at offset.
func malformed(line string, offset int, expected string) *ParseError {
	tok := tokenAt(line, offset)
	col := columnAt(line, offset)

	got := "end of line"
	if tok != "" {
		got = fmt.Sprintf("%q", tok)
	}

	return &ParseError{
		Kind:   KindMalformed,
		Msg:    fmt.Sprintf("DSL parse error: expected %s at column %d, got %s", expected, col, got),
		Line:   line,
		Token:  tok,
		Offset: offset,
		Column: col,
	}
}

// columnAt converts a byte offset into a 1-based grapheme column.
func columnAt(line string, offset int) int {
	offset = min(max(offset, 0), len(line))
	return uniseg.GraphemeClusterCount(line[:offset]) + 1
}

// tokenAt returns the token that starts at offset for error reporting.
// Operators are reported alone; anything else up to the next separator.
func tokenAt(line string, offset int) string {
	if offset >= len(line) {
		return ""
	}
	switch c := line[offset]; {
	case c == '=' || c == '@':
		return string(c)
	case isBlank(c):
		end := offset
		for end < len(line) && isBlank(line[end]) {
			end++
		}
		return line[offset:end]
	}
	end := offset
	for end < len(line) && isBareValueChar(line[end]) {
		end++
	}
	return line[offset:end]
}

func firstWord(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
