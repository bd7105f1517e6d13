package ui

import "github.com/charmbracelet/lipgloss"

var (
	pink   = lipgloss.Color("#F472B6")
	purple = lipgloss.Color("#C4B5FD")
	faint  = lipgloss.Color("#6B7280")
	red    = lipgloss.Color("#F87171")
)

type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Text         lipgloss.Style
	Button       lipgloss.Style
	Panel        lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Detail       lipgloss.Style
	Heading      lipgloss.Style
	Bar          lipgloss.Style
	Error        lipgloss.Style
	Footer       lipgloss.Style
	Highlight    lipgloss.Style
	Faint        lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	s.Subtitle = lipgloss.NewStyle().Bold(true).Foreground(pink)
	s.Text = lipgloss.NewStyle().Foreground(purple)
	s.Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#6D28D9")).
		Background(lipgloss.Color("#FFFFFF")).
		Padding(0, 2)
	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(purple).
		Padding(0, 1)
	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(faint).
		Padding(0, 1).
		Width(cardInnerWidth)
	s.CardSelected = s.Card.BorderForeground(pink)
	// Detail must keep a one cell border and one cell padding; the mouse seek
	// layout depends on it.
	s.Detail = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(pink).
		Padding(0, 1)
	s.Heading = lipgloss.NewStyle().Bold(true).Foreground(pink)
	s.Bar = lipgloss.NewStyle().Foreground(pink)
	s.Error = lipgloss.NewStyle().Foreground(red)
	s.Footer = lipgloss.NewStyle().Foreground(purple).Align(lipgloss.Center)
	s.Highlight = lipgloss.NewStyle().Bold(true).Foreground(pink)
	s.Faint = lipgloss.NewStyle().Foreground(faint)
	return s
}
