package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalSpans_Empty(t *testing.T) {
	data, err := MarshalSpans(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	require.Equal(t, "[]", HighlightJSON("\n\n"))
}

func TestHighlightJSON(t *testing.T) {
	got := HighlightJSON("\n@a b=\"q\"<x>")
	want := `[{"kind":"At","start":1,"end":2,"text":"@"},` +
		`{"kind":"Ident","start":2,"end":3,"text":"a"},` +
		`{"kind":"Ws","start":3,"end":4,"text":" "},` +
		`{"kind":"Ident","start":4,"end":5,"text":"b"},` +
		`{"kind":"Equals","start":5,"end":6,"text":"="},` +
		`{"kind":"Value","start":6,"end":12,"text":"\"q\"<x>"}]`
	require.Equal(t, want, got)
}
