package presentation

import (
	"errors"

	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/directive"
)

// ParseResultDTO is the printable outcome of parsing a header.
type ParseResultDTO struct {
	Empty     bool                 `json:"empty" yaml:"empty"`
	Directive *directive.Directive `json:"directive,omitempty" yaml:"directive,omitempty"`
	Error     *ErrorDTO            `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorDTO describes a rejected header.
type ErrorDTO struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	Column  int    `json:"column" yaml:"column"`
}

// SuggestionsDTO lists completion candidates.
type SuggestionsDTO struct {
	Filter  string   `json:"filter" yaml:"filter"`
	Matches []string `json:"matches" yaml:"matches"`
	Exact   bool     `json:"exact" yaml:"exact"`
}

// FromParse converts a parse outcome. Errors that are not *ParseError are
// reported with kind "unknown".
func FromParse(parsed directive.ParsedLine, err error) ParseResultDTO {
	if err != nil {
		return ParseResultDTO{Error: FromError(err)}
	}
	if parsed.IsEmpty() {
		return ParseResultDTO{Empty: true}
	}
	d := *parsed.Directive
	if d.Pairs == nil {
		d.Pairs = []directive.Pair{}
	}
	return ParseResultDTO{Directive: &d}
}

// FromError converts an error to its DTO.
func FromError(err error) *ErrorDTO {
	var perr *directive.ParseError
	if !errors.As(err, &perr) {
		return &ErrorDTO{Kind: "unknown", Message: err.Error()}
	}
	return &ErrorDTO{
		Kind:    perr.Kind.String(),
		Message: perr.Msg,
		Token:   perr.Token,
		Column:  perr.Column,
	}
}

// FromSuggestions converts completion results.
func FromSuggestions(s complete.Suggestions) SuggestionsDTO {
	matches := s.Matches
	if matches == nil {
		matches = []string{}
	}
	return SuggestionsDTO{Filter: s.Filter, Matches: matches, Exact: s.Exact}
}
