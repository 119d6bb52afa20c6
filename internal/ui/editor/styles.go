package editor

import "github.com/charmbracelet/lipgloss"

var (
	textMutedColor     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#696969"}
	borderColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	statusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	statusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	statusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	selectedBgColor    = lipgloss.AdaptiveColor{Light: "#BBD6F0", Dark: "#264F78"}

	titleStyle   = lipgloss.NewStyle().Bold(true).PaddingRight(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(textMutedColor)
	okStyle      = lipgloss.NewStyle().Foreground(statusSuccessColor)
	warnStyle    = lipgloss.NewStyle().Foreground(statusWarningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(statusErrorColor)
	caretStyle   = lipgloss.NewStyle().Foreground(statusErrorColor).Bold(true)
	dividerStyle = lipgloss.NewStyle().Foreground(borderColor)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	popupItemStyle     = lipgloss.NewStyle()
	popupSelectedStyle = lipgloss.NewStyle().Background(selectedBgColor).Bold(true)
)
