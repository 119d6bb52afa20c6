package presentation

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/headline/internal/complete"
	"github.com/zjrosen/headline/internal/directive"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	require.Error(t, err)
}

func TestFormat_YAML(t *testing.T) {
	parsed, err := directive.ParseFirstLine("@option a=1 b=x")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatYAML).Format(FromParse(parsed, nil)))

	want := `empty: false
directive:
  name: option
  pairs:
    - key: a
      value: "1"
    - key: b
      value: x
`
	require.Equal(t, want, buf.String())
}

func TestFormat_JSON(t *testing.T) {
	parsed, err := directive.ParseFirstLine("@option")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatJSON).Format(FromParse(parsed, nil)))

	want := `{
  "empty": false,
  "directive": {
    "name": "option",
    "pairs": []
  }
}
`
	require.Equal(t, want, buf.String())
}

func TestFromParse_Empty(t *testing.T) {
	dto := FromParse(directive.ParsedLine{}, nil)
	require.True(t, dto.Empty)
	require.Nil(t, dto.Directive)
	require.Nil(t, dto.Error)
}

func TestFromParse_Error(t *testing.T) {
	_, err := directive.ParseFirstLine("hello")
	require.Error(t, err)

	dto := FromParse(directive.ParsedLine{}, err)
	require.False(t, dto.Empty)
	require.Equal(t, &ErrorDTO{
		Kind:    "missing_marker",
		Message: "First non-empty line must start with @",
		Token:   "hello",
		Column:  1,
	}, dto.Error)
}

func TestFromError_Foreign(t *testing.T) {
	dto := FromError(errors.New("boom"))
	require.Equal(t, "unknown", dto.Kind)
	require.Equal(t, "boom", dto.Message)
}

func TestFormatSpans(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatJSON).FormatSpans(directive.TokenizeFirstLine("@a")))
	require.Equal(t, `[{"kind":"At","start":0,"end":1,"text":"@"},{"kind":"Ident","start":1,"end":2,"text":"a"}]`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(&buf, FormatJSON).FormatSpans(nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatCaret(t *testing.T) {
	_, err := directive.ParseFirstLine("@option a")
	var perr *directive.ParseError
	require.ErrorAs(t, err, &perr)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatYAML).FormatCaret(perr))
	require.Equal(t, perr.Msg+"\n@option a\n         ^\n", buf.String())
}

func TestFromSuggestions(t *testing.T) {
	dto := FromSuggestions(complete.New(nil).Suggest("@zz"))
	require.Equal(t, SuggestionsDTO{Filter: "zz", Matches: []string{}}, dto)

	dto = FromSuggestions(complete.New(nil).Suggest("@option"))
	require.Equal(t, SuggestionsDTO{Filter: "option", Matches: []string{"option"}, Exact: true}, dto)
}
