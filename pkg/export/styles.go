package export

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	colorChange = lipgloss.AdaptiveColor{Light: "#00875F", Dark: "#04B575"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FFAF00"}
)

// styles maps the semantic names the text renderer uses to lipgloss
// styles.
type styles struct {
	Header lipgloss.Style
	Word   lipgloss.Style
	Rule   lipgloss.Style
	Muted  lipgloss.Style
	Change lipgloss.Style
	Warn   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header: r.NewStyle().Bold(true).Foreground(colorAccent),
		Word:   r.NewStyle().Bold(true),
		Rule:   r.NewStyle().Foreground(colorAccent).PaddingLeft(2),
		Muted:  r.NewStyle().Foreground(colorMuted),
		Change: r.NewStyle().Foreground(colorChange),
		Warn:   r.NewStyle().Foreground(colorWarn).PaddingLeft(2),
	}
}

// plainStyles renders everything unstyled.
func plainStyles() styles {
	return styles{
		Header: lipgloss.NewStyle(),
		Word:   lipgloss.NewStyle(),
		Rule:   lipgloss.NewStyle().PaddingLeft(2),
		Muted:  lipgloss.NewStyle(),
		Change: lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle().PaddingLeft(2),
	}
}
