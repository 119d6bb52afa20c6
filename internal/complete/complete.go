// Package complete suggests directive names while a header is being typed.
//
// Suggestions are a typing aid only. A name that matches nothing is reported
// through Suggestions.Unknown but is never rejected; the parser accepts any
// identifier.
package complete

import (
	"fmt"
	"strings"

	"github.com/zjrosen/headline/internal/directive"
)

var defaultNames = []string{"option", "multi_option", "matching_pair"}

// DefaultNames returns the built-in directive names.
func DefaultNames() []string {
	return append([]string(nil), defaultNames...)
}

// ValidateNames reports the first entry that is not a directive identifier.
func ValidateNames(names []string) error {
	for i, name := range names {
		if !isIdent(name) {
			return fmt.Errorf("entry %d: %q is not a valid directive name", i, name)
		}
	}
	return nil
}

func isIdent(s string) bool {
	tokens := directive.NewLexer(s).Tokenize()
	return len(tokens) == 1 && tokens[0].Kind == directive.TokenIdent
}

// Completer filters a fixed list of directive names.
type Completer struct {
	names []string
}

// New creates a Completer over names. An empty list falls back to
// DefaultNames.
func New(names []string) *Completer {
	if len(names) == 0 {
		names = defaultNames
	}
	return &Completer{names: append([]string(nil), names...)}
}

// Names returns the names the completer offers.
func (c *Completer) Names() []string {
	return append([]string(nil), c.names...)
}

// Suggest filters names against the directive name being typed in header.
// Only the text between '@' and the first blank counts; leading blanks are
// ignored. Text that does not start with '@' gets no suggestions.
func (c *Completer) Suggest(header string) Suggestions {
	filter, ok := Filter(header)
	if !ok {
		return Suggestions{}
	}

	lower := strings.ToLower(filter)
	s := Suggestions{Filter: filter, Open: true}
	for _, name := range c.names {
		nameLower := strings.ToLower(name)
		if strings.HasPrefix(nameLower, lower) {
			s.Matches = append(s.Matches, name)
		}
		if nameLower == lower {
			s.Exact = true
		}
	}
	if len(s.Matches) == 0 {
		s.Open = false
	}
	return s
}

// Filter extracts the partial directive name from header.
func Filter(header string) (string, bool) {
	trimmed := strings.TrimLeft(header, " \t")
	rest, ok := strings.CutPrefix(trimmed, "@")
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, " \t\r\n"); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

// Suggestions is the result of a Suggest call.
type Suggestions struct {
	Filter  string   // Text typed after '@'
	Matches []string // Names with Filter as a case-insensitive prefix, in list order
	Exact   bool     // Filter equals a known name, ignoring case
	Active  int      // Index into Matches of the highlighted entry
	Open    bool     // Whether a popup should be shown
}

// Unknown reports a non-empty filter that matches no known name.
func (s Suggestions) Unknown() bool {
	return s.Filter != "" && len(s.Matches) == 0
}

// Cycle moves the active entry forward or backward, wrapping at either end.
func (s Suggestions) Cycle(forward bool) Suggestions {
	n := len(s.Matches)
	if n == 0 {
		return s
	}
	if forward {
		s.Active = (s.Active + 1) % n
	} else {
		s.Active = (s.Active - 1 + n) % n
	}
	return s
}

// Selected returns the active name.
func (s Suggestions) Selected() (string, bool) {
	if s.Active < 0 || s.Active >= len(s.Matches) {
		return "", false
	}
	return s.Matches[s.Active], true
}

// Accept returns "@" followed by the active name.
func (s Suggestions) Accept() (string, bool) {
	name, ok := s.Selected()
	if !ok {
		return "", false
	}
	return "@" + name, true
}

// Hide closes the popup without touching the matches.
func (s Suggestions) Hide() Suggestions {
	s.Open = false
	return s
}

// Apply replaces the directive name in the first non-blank line of buffer
// with accepted. The name runs from '@' to the first blank, matching Filter.
func Apply(buffer, accepted string) string {
	lines := strings.SplitAfter(buffer, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		body := line[indent:]
		if !strings.HasPrefix(body, "@") {
			return buffer
		}
		end := len(body)
		if j := strings.IndexAny(body, " \t\r\n"); j >= 0 {
			end = j
		}
		lines[i] = line[:indent] + accepted + body[end:]
		return strings.Join(lines, "")
	}
	return buffer
}
