package incident

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	active    lipgloss.Style
	resolved  lipgloss.Style
	cancelled lipgloss.Style
	detail    lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	auditTime lipgloss.Style
	auditTag  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		resolved:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		cancelled: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		auditTime: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		auditTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
