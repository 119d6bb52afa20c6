package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:  "directive with pair",
			input: "@option x=1",
			expected: []Span{
				{Kind: TokenAt, Start: 0, End: 1, Text: "@"},
				{Kind: TokenIdent, Start: 1, End: 7, Text: "option"},
				{Kind: TokenWhitespace, Start: 7, End: 8, Text: " "},
				{Kind: TokenIdent, Start: 8, End: 9, Text: "x"},
				{Kind: TokenEquals, Start: 9, End: 10, Text: "="},
				{Kind: TokenValue, Start: 10, End: 11, Text: "1"},
			},
		},
		{
			name:  "identifier-shaped value stays ident",
			input: "k=value",
			expected: []Span{
				{Kind: TokenIdent, Start: 0, End: 1, Text: "k"},
				{Kind: TokenEquals, Start: 1, End: 2, Text: "="},
				{Kind: TokenIdent, Start: 2, End: 7, Text: "value"},
			},
		},
		{
			name:  "longest match prefers value",
			input: "abc/def",
			expected: []Span{
				{Kind: TokenValue, Start: 0, End: 7, Text: "abc/def"},
			},
		},
		{
			name:  "path value",
			input: "path=/usr/local/bin",
			expected: []Span{
				{Kind: TokenIdent, Start: 0, End: 4, Text: "path"},
				{Kind: TokenEquals, Start: 4, End: 5, Text: "="},
				{Kind: TokenValue, Start: 5, End: 19, Text: "/usr/local/bin"},
			},
		},
		{
			name:  "mixed whitespace run",
			input: "a \t b",
			expected: []Span{
				{Kind: TokenIdent, Start: 0, End: 1, Text: "a"},
				{Kind: TokenWhitespace, Start: 1, End: 4, Text: " \t "},
				{Kind: TokenIdent, Start: 4, End: 5, Text: "b"},
			},
		},
		{
			name:  "markers and equals split values",
			input: "a=b=@c",
			expected: []Span{
				{Kind: TokenIdent, Start: 0, End: 1, Text: "a"},
				{Kind: TokenEquals, Start: 1, End: 2, Text: "="},
				{Kind: TokenIdent, Start: 2, End: 3, Text: "b"},
				{Kind: TokenEquals, Start: 3, End: 4, Text: "="},
				{Kind: TokenAt, Start: 4, End: 5, Text: "@"},
				{Kind: TokenIdent, Start: 5, End: 6, Text: "c"},
			},
		},
		{
			name:  "multi-byte value",
			input: "@x 日本",
			expected: []Span{
				{Kind: TokenAt, Start: 0, End: 1, Text: "@"},
				{Kind: TokenIdent, Start: 1, End: 2, Text: "x"},
				{Kind: TokenWhitespace, Start: 2, End: 3, Text: " "},
				{Kind: TokenValue, Start: 3, End: 9, Text: "日本"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewLexer(tt.input).Tokenize())
		})
	}
}

func TestLexer_NextTokenEOF(t *testing.T) {
	l := NewLexer("@")
	require.Equal(t, TokenAt, l.NextToken().Kind)

	eof := l.NextToken()
	require.Equal(t, TokenEOF, eof.Kind)
	require.Equal(t, 1, eof.Start)
	require.Equal(t, TokenEOF, l.NextToken().Kind, "EOF repeats")
}

func TestLexer_UnclassifiableInputYieldsNothing(t *testing.T) {
	require.Nil(t, NewLexer("@a\nb").Tokenize())
	require.Nil(t, NewLexer("").Tokenize())
}

func TestTokenizeFirstLine_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", " \t \n  "} {
		require.Empty(t, TokenizeFirstLine(input))
	}
}

func TestTokenizeFirstLine_Offsets(t *testing.T) {
	spans := TokenizeFirstLine("\n\n@option x=1\n")
	require.Len(t, spans, 6)
	require.Equal(t, Span{Kind: TokenAt, Start: 2, End: 3, Text: "@"}, spans[0])
	require.Equal(t, Span{Kind: TokenValue, Start: 12, End: 13, Text: "1"}, spans[5])
}

func TestTokenizeFirstLine_CRLFOffsets(t *testing.T) {
	buffer := "\r\n\r\n@option x=1\r\n"
	spans := TokenizeFirstLine(buffer)
	require.NotEmpty(t, spans)
	require.Equal(t, 4, spans[0].Start)
	last := spans[len(spans)-1]
	require.Equal(t, "1", last.Text)
	require.Equal(t, "1", buffer[last.Start:last.End], "trailing \\r is not part of the line")
}

func TestTokenizeFirstLine_LeadingIndent(t *testing.T) {
	spans := TokenizeFirstLine("  \t\n  @option")
	require.Equal(t, []Span{
		{Kind: TokenWhitespace, Start: 4, End: 6, Text: "  "},
		{Kind: TokenAt, Start: 6, End: 7, Text: "@"},
		{Kind: TokenIdent, Start: 7, End: 13, Text: "option"},
	}, spans)
}

func TestTokenizeFirstLine_InvalidDirectiveStillHighlights(t *testing.T) {
	buffer := "@option key="
	_, err := ParseFirstLine(buffer)
	require.Error(t, err)

	spans := TokenizeFirstLine(buffer)
	require.Len(t, spans, 5)
	require.Equal(t, TokenEquals, spans[4].Kind)
}

func TestTokenKind_Text(t *testing.T) {
	for _, kind := range []TokenKind{TokenAt, TokenIdent, TokenEquals, TokenWhitespace, TokenValue} {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var decoded TokenKind
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, kind, decoded)
	}

	var k TokenKind
	require.Error(t, k.UnmarshalText([]byte("Bogus")))
	require.Equal(t, "Ws", TokenWhitespace.String())
}
