package directive

import "strings"

// DefaultMaxLineLength is the header length limit the CLI applies unless
// configured otherwise.
const DefaultMaxLineLength = 4096

// Options bounds the work done per call.
type Options struct {
	// MaxLineLength caps the header line length in bytes. Zero means no limit.
	MaxLineLength int
}

// ParseFirstLine parses the first non-blank line of buffer as a directive.
// A buffer with no such line yields an empty ParsedLine and a nil error.
// Failures are *ParseError.
func ParseFirstLine(buffer string) (ParsedLine, error) {
	return Options{}.Parse(buffer)
}

// TokenizeFirstLine lexes the first non-blank line of buffer. Span offsets
// index into buffer. It returns nil when there is nothing to highlight.
func TokenizeFirstLine(buffer string) []Span {
	return Options{}.Tokenize(buffer)
}

// Parse is ParseFirstLine with o's limits applied.
func (o Options) Parse(buffer string) (ParsedLine, error) {
	raw, _, ok := candidateLine(buffer)
	if !ok {
		return ParsedLine{}, nil
	}
	line := strings.TrimSpace(raw)

	if !strings.HasPrefix(line, "@") {
		return ParsedLine{}, missingMarker(line)
	}
	if o.exceeds(line) {
		return ParsedLine{}, tooLong(line, o.MaxLineLength)
	}

	d, err := NewParser(line).Parse()
	if err != nil {
		return ParsedLine{}, err
	}
	return ParsedLine{Directive: d}, nil
}

// Tokenize is TokenizeFirstLine with o's limits applied.
func (o Options) Tokenize(buffer string) []Span {
	line, base, ok := candidateLine(buffer)
	if !ok || o.exceeds(strings.TrimSpace(line)) {
		return nil
	}

	spans := NewLexer(line).Tokenize()
	for i := range spans {
		spans[i] = spans[i].Shift(base)
	}
	return spans
}

// exceeds measures the trimmed line so Parse and Tokenize agree on the limit.
func (o Options) exceeds(line string) bool {
	return o.MaxLineLength > 0 && len(line) > o.MaxLineLength
}
