package directive

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Default highlight colors.
const (
	DefaultMarkerColor = "#C792EA"
	DefaultNameColor   = "#82AAFF"
	DefaultKeyColor    = "#FFCB6B"
	DefaultEqualsColor = "#89DDFF"
	DefaultValueColor  = "#C3E88D"
)

// Theme color keys as they appear in configuration.
const (
	ColorMarker = "marker"
	ColorName   = "name"
	ColorKey    = "key"
	ColorEquals = "equals"
	ColorValue  = "value"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme holds the styles used to render a highlighted header.
type Theme struct {
	Marker  lipgloss.Style // @
	Name    lipgloss.Style // directive name
	Key     lipgloss.Style // pair keys
	Equals  lipgloss.Style // =
	Value   lipgloss.Style // pair values
	Default lipgloss.Style // whitespace and stray tokens
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	theme, _ := ThemeFromColors(nil)
	return theme
}

// ThemeFromColors builds a theme from hex overrides keyed by the Color*
// constants. Unknown keys and malformed colors are errors.
func ThemeFromColors(colors map[string]string) (Theme, error) {
	resolved := map[string]string{
		ColorMarker: DefaultMarkerColor,
		ColorName:   DefaultNameColor,
		ColorKey:    DefaultKeyColor,
		ColorEquals: DefaultEqualsColor,
		ColorValue:  DefaultValueColor,
	}
	for key, hex := range colors {
		if _, ok := resolved[key]; !ok {
			return Theme{}, fmt.Errorf("unknown theme color %q", key)
		}
		if !ValidHexColor(hex) {
			return Theme{}, fmt.Errorf("theme color %s: invalid hex %q", key, hex)
		}
		resolved[key] = hex
	}

	return Theme{
		Marker: lipgloss.NewStyle().
			Foreground(lipgloss.Color(resolved[ColorMarker])).
			Bold(true),
		Name: lipgloss.NewStyle().
			Foreground(lipgloss.Color(resolved[ColorName])).
			Bold(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color(resolved[ColorKey])),
		Equals:  lipgloss.NewStyle().Foreground(lipgloss.Color(resolved[ColorEquals])),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(resolved[ColorValue])),
		Default: lipgloss.NewStyle(),
	}, nil
}

// ValidHexColor reports whether s is a #RGB or #RRGGBB color.
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
