// Package presentation renders command output as JSON, YAML or text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/headline/internal/directive"
)

// Format selects the structured output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q, want yaml or json", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// Format encodes v in the formatter's format.
func (f *Formatter) Format(v any) error {
	if f.format == FormatJSON {
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(v)
	}

	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatSpans writes the span wire format followed by a newline.
func (f *Formatter) FormatSpans(spans []directive.Span) error {
	data, err := directive.MarshalSpans(spans)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.writer, "%s\n", data)
	return err
}

// FormatCaret writes the error message and the header line with a caret
// under the offending column.
func (f *Formatter) FormatCaret(perr *directive.ParseError) error {
	_, err := fmt.Fprintf(f.writer, "%s\n%s\n", perr.Msg, perr.Caret())
	return err
}

// FormatLines writes one entry per line.
func (f *Formatter) FormatLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}
