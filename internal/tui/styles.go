// Package tui provides the interactive terminal interface of scoops and
// the text renderer it shares with the search command.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	Strawberry = lipgloss.Color("#e91e63")
	Pistachio  = lipgloss.Color("#8BC34A")
	Vanilla    = lipgloss.Color("#fff8e1")
	Chocolate  = lipgloss.Color("#5d4037")
	Muted      = lipgloss.Color("#9e9e9e")
	Gold       = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Title       lipgloss.Style
	Avatar      lipgloss.Style
	Card        lipgloss.Style
	CardActive  lipgloss.Style
	Name        lipgloss.Style
	Open        lipgloss.Style
	Closed      lipgloss.Style
	Rating      lipgloss.Style
	Label       lipgloss.Style
	Placeholder lipgloss.Style
	Review      lipgloss.Style
	Reviewer    lipgloss.Style
	Date        lipgloss.Style
	Message     lipgloss.Style
	Overlay     lipgloss.Style
	Underneath  lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(Strawberry),
		Avatar:      lipgloss.NewStyle().Bold(true).Foreground(Vanilla).Background(Strawberry).Padding(0, 1),
		Card:        card,
		CardActive:  card.BorderForeground(Strawberry),
		Name:        lipgloss.NewStyle().Bold(true),
		Open:        lipgloss.NewStyle().Foreground(Pistachio),
		Closed:      lipgloss.NewStyle().Foreground(Strawberry),
		Rating:      lipgloss.NewStyle().Foreground(Gold),
		Label:       lipgloss.NewStyle().Foreground(Muted),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(Muted),
		Review:      lipgloss.NewStyle().PaddingLeft(2),
		Reviewer:    lipgloss.NewStyle().Bold(true).Foreground(Chocolate),
		Date:        lipgloss.NewStyle().Foreground(Muted),
		Message:     lipgloss.NewStyle().Italic(true),
		Overlay:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Strawberry).Padding(0, 2).Bold(true),
		Underneath:  lipgloss.NewStyle().Faint(true),
		Help:        lipgloss.NewStyle().Foreground(Muted),
	}
}
