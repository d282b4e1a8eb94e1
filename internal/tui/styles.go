package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#6C5CE7")
	accent      = lipgloss.Color("#00B894")
	muted       = lipgloss.Color("#8A8F98")
	destructive = lipgloss.Color("#D63031")
)

// Styles holds the lipgloss styles used by every screen.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Footer    lipgloss.Style
}

// DefaultStyles returns the client's color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(muted),
		User: lipgloss.NewStyle().
			Bold(true),
		Assistant: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(accent),
		Selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted),
		Error:   lipgloss.NewStyle().Foreground(destructive).Bold(true),
		Success: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Footer:  lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
