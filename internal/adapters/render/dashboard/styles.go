package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	robot      lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	key        lipgloss.Style
	meta       lipgloss.Style
	sharedTag  lipgloss.Style
	statValue  lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		robot:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		sharedTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		statValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func statusColor(status string) lipgloss.Color {
	switch status {
	case "active":
		return lipgloss.Color("42")
	case "charging":
		return lipgloss.Color("33")
	case "maintenance":
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("245")
	}
}

func batteryColor(band string) lipgloss.Color {
	switch band {
	case "high":
		return lipgloss.Color("42")
	case "medium":
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("203")
	}
}
