package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Description   lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Placeholder   lipgloss.Style
	Option        lipgloss.Style
	OptionCursor  lipgloss.Style
	Checked       lipgloss.Style
	Chip          lipgloss.Style
	Scroll        lipgloss.Style
	Dim           lipgloss.Style
	Button        lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Footer        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Input:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		InputFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Option:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		OptionCursor: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Checked:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("60")),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")),
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
