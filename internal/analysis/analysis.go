// Package analysis runs the header parser and lexer over document buffers,
// remembers the last result per document and publishes every result to
// subscribers.
package analysis

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/headline/internal/directive"
)

// DocumentKey identifies a document, typically its path.
type DocumentKey string

// Analysis is the outcome of analyzing one buffer. Parsing and tokenizing
// run independently: Spans are present even when Err is set.
type Analysis struct {
	ID       uuid.UUID
	Document DocumentKey
	Source   string
	Parsed   directive.ParsedLine
	Err      error
	Spans    []directive.Span
	At       time.Time
	CacheHit bool
}

// Valid reports a parsed directive with no error.
func (a Analysis) Valid() bool {
	return a.Err == nil && !a.Parsed.IsEmpty()
}

// Empty reports a buffer without a header line.
func (a Analysis) Empty() bool {
	return a.Err == nil && a.Parsed.IsEmpty()
}

// ParseError returns Err as a *directive.ParseError.
func (a Analysis) ParseError() (*directive.ParseError, bool) {
	var perr *directive.ParseError
	if errors.As(a.Err, &perr) {
		return perr, true
	}
	return nil, false
}

// Header returns the trimmed header line of Source.
func (a Analysis) Header() string {
	line, _ := directive.HeaderLine(a.Source)
	return line
}

// result is the cacheable part of an analysis; it depends only on the
// buffer content.
type result struct {
	parsed directive.ParsedLine
	err    error
	spans  []directive.Span
}

func (r result) analysis(doc DocumentKey, source string, at time.Time, hit bool) Analysis {
	return Analysis{
		ID:       uuid.New(),
		Document: doc,
		Source:   source,
		Parsed:   cloneParsed(r.parsed),
		Err:      r.err,
		Spans:    slices.Clone(r.spans),
		At:       at,
		CacheHit: hit,
	}
}

// clone returns a copy that shares no slices or directive with a.
func (a Analysis) clone() Analysis {
	a.Parsed = cloneParsed(a.Parsed)
	a.Spans = slices.Clone(a.Spans)
	return a
}

// cloneParsed copies the directive so callers never share the cached one.
func cloneParsed(p directive.ParsedLine) directive.ParsedLine {
	if p.Directive == nil {
		return p
	}
	return directive.ParsedLine{Directive: &directive.Directive{
		Name:  p.Directive.Name,
		Pairs: slices.Clone(p.Directive.Pairs),
	}}
}
