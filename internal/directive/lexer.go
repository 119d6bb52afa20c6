package directive

// Lexer splits a single header line into spans.
// It classifies every byte; it never validates.
type Lexer struct {
	input string
	pos   int // offset of the next unread byte
}

// NewLexer creates a lexer for one line of input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next span. Offsets are relative to the lexer input.
// At end of input it returns a TokenEOF span; an unclassifiable byte
// yields a one-byte TokenIllegal span.
func (l *Lexer) NextToken() Span {
	start := l.pos
	if start >= len(l.input) {
		return Span{Kind: TokenEOF, Start: start, End: start}
	}

	var kind TokenKind
	switch c := l.input[start]; {
	case c == '@':
		kind = TokenAt
		l.pos++
	case c == '=':
		kind = TokenEquals
		l.pos++
	case isBlank(c):
		kind = TokenWhitespace
		l.pos = l.scan(start, isBlank)
	default:
		kind, l.pos = l.longestWord(start)
	}

	if l.pos == start {
		l.pos++
		return Span{Kind: TokenIllegal, Start: start, End: l.pos, Text: l.input[start:l.pos]}
	}
	return Span{Kind: kind, Start: start, End: l.pos, Text: l.input[start:l.pos]}
}

// longestWord picks between an identifier and a bare value at start,
// preferring the identifier when both match the same length.
func (l *Lexer) longestWord(start int) (TokenKind, int) {
	identEnd := start
	if isLetter(l.input[start]) {
		identEnd = l.scan(start, isIdentChar)
	}
	valueEnd := l.scan(start, isBareValueChar)

	if identEnd > start && identEnd >= valueEnd {
		return TokenIdent, identEnd
	}
	if valueEnd > start {
		return TokenValue, valueEnd
	}
	return TokenIllegal, start
}

// scan returns the end of the run of bytes matching class from start.
func (l *Lexer) scan(start int, class func(byte) bool) int {
	end := start
	for end < len(l.input) && class(l.input[end]) {
		end++
	}
	return end
}

// Tokenize lexes the whole input. It returns nil if any byte could not be
// classified; a partial result is never returned.
func (l *Lexer) Tokenize() []Span {
	var spans []Span
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case TokenEOF:
			return spans
		case TokenIllegal:
			return nil
		}
		spans = append(spans, tok)
	}
}
