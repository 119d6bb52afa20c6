// Package directive implements the header directive language: the optional
// `@name key=value ...` line at the top of a document. It provides a strict
// parser for validation and an independent, best-effort lexer for
// highlighting.
package directive

import "fmt"

// TokenKind classifies a lexed span of the header line.
type TokenKind int

const (
	TokenIllegal TokenKind = iota
	TokenEOF

	TokenAt         // @
	TokenIdent      // name, key, or identifier-shaped value
	TokenEquals     // =
	TokenWhitespace // run of spaces and tabs
	TokenValue      // any other run of non-blank characters
)

// String returns the stable tag used on the wire.
func (k TokenKind) String() string {
	switch k {
	case TokenAt:
		return "At"
	case TokenIdent:
		return "Ident"
	case TokenEquals:
		return "Equals"
	case TokenWhitespace:
		return "Ws"
	case TokenValue:
		return "Value"
	case TokenEOF:
		return "EOF"
	default:
		return "ILLEGAL"
	}
}

// MarshalText encodes the kind as its wire tag.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire tag.
func (k *TokenKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "At":
		*k = TokenAt
	case "Ident":
		*k = TokenIdent
	case "Equals":
		*k = TokenEquals
	case "Ws":
		*k = TokenWhitespace
	case "Value":
		*k = TokenValue
	default:
		return fmt.Errorf("unknown token kind %q", text)
	}
	return nil
}

// Span is a classified slice of the original buffer.
// Start and End are byte offsets into the full buffer, not the header line.
type Span struct {
	Kind  TokenKind `json:"kind"`
	Start int       `json:"start"`
	End   int       `json:"end"`
	Text  string    `json:"text"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Shift returns the span moved right by base bytes.
func (s Span) Shift(base int) Span {
	s.Start += base
	s.End += base
	return s
}

// isLetter returns true if c can start an identifier.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isDigit returns true if c is a digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// isBlank reports the separators recognised inside a header line.
func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// isValueChar reports characters a directive value may contain.
func isValueChar(c byte) bool {
	return !isBlank(c) && c != '\n'
}

// isBareValueChar is the lexer's narrower value class: '@' and '=' are
// their own tokens there.
func isBareValueChar(c byte) bool {
	return isValueChar(c) && c != '@' && c != '='
}
