package headerdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{name: "identical", old: "@option a=1", new: "@option a=1", want: "@option a=1"},
		{name: "value replaced whole", old: "@option a=1", new: "@option a=12", want: "@option a=[-1-]{+12+}"},
		{name: "pair appended", old: "@option", new: "@option b=2", want: "@option{+ b=2+}"},
		{name: "name changed", old: "@option a=1", new: "@multi_option a=1", want: "@[-option-]{+multi_option+} a=1"},
		{name: "from empty", old: "", new: "@option", want: "{+@option+}"},
		{name: "to empty", old: "@option", new: "", want: "[-@option-]"},
		{name: "both empty", old: "", new: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Render(Compare(tt.old, tt.new)))
		})
	}
}

func TestCompare_FallsBackToCharacters(t *testing.T) {
	// Text with a newline does not tokenize, so the diff runs per character.
	segs := Compare("a\nb", "a\nc")
	require.True(t, Changed(segs))
	require.Equal(t, "a[-b-]{+c+}", Render(segs))
}

func TestChanged(t *testing.T) {
	require.False(t, Changed(Compare("@option", "@option")))
	require.False(t, Changed(nil))
	require.True(t, Changed(Compare("@option", "@options")))
}
