package directive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight renders the header line of buffer with theme applied.
// Returns "" when the buffer has no header line, and the plain line when it
// does not lex.
func Highlight(buffer string, theme Theme) string {
	line, _, ok := candidateLine(buffer)
	if !ok {
		return ""
	}

	spans := TokenizeFirstLine(buffer)
	if len(spans) == 0 {
		return line
	}

	var result strings.Builder
	for i, span := range spans {
		role := RoleOf(spans, i)
		if role == RoleSpace {
			// lipgloss expands tabs; keep separators byte-exact
			result.WriteString(span.Text)
			continue
		}
		result.WriteString(theme.Style(role).Render(span.Text))
	}
	return result.String()
}

// Role is the part a span plays within a directive, used for styling.
// It is derived from neighbouring spans, so identifier-shaped values and
// keys are told apart.
type Role int

const (
	RoleOther Role = iota
	RoleMarker
	RoleName
	RoleKey
	RoleEquals
	RoleValue
	RoleSpace
)

// RoleOf classifies spans[i] by its position in the line. Only the marker
// that opens the line, and the identifier right after it, count as the
// directive head; a later '@' is part of a value.
func RoleOf(spans []Span, i int) Role {
	switch spans[i].Kind {
	case TokenAt:
		if previousSolid(spans, i) < 0 {
			return RoleMarker
		}
		return RoleValue
	case TokenEquals:
		return RoleEquals
	case TokenWhitespace:
		return RoleSpace
	}

	prev := previousSolid(spans, i)
	switch {
	case prev >= 0 && spans[prev].Kind == TokenAt && previousSolid(spans, prev) < 0:
		if spans[i].Kind == TokenIdent {
			return RoleName
		}
		return RoleOther
	case prev >= 0 && (spans[prev].Kind == TokenEquals || spans[prev].Kind == TokenAt):
		return RoleValue
	case spans[i].Kind == TokenIdent:
		return RoleKey
	default:
		return RoleValue
	}
}

// previousSolid returns the index of the nearest non-whitespace span before i.
func previousSolid(spans []Span, i int) int {
	for j := i - 1; j >= 0; j-- {
		if spans[j].Kind != TokenWhitespace {
			return j
		}
	}
	return -1
}

// Style returns the style for a role.
func (t Theme) Style(role Role) lipgloss.Style {
	switch role {
	case RoleMarker:
		return t.Marker
	case RoleName:
		return t.Name
	case RoleKey:
		return t.Key
	case RoleEquals:
		return t.Equals
	case RoleValue:
		return t.Value
	default:
		return t.Default
	}
}
