package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/weatherday/pkg/theme"
)

// styles holds the lipgloss styles derived from a theme.
type styles struct {
	// Background fills the space around the centred screen.
	Background lipgloss.Color

	Title       lipgloss.Style
	Input       lipgloss.Style
	Button      lipgloss.Style
	ButtonFocus lipgloss.Style
	ButtonDim   lipgloss.Style
	Error       lipgloss.Style
	Offline     lipgloss.Style
	Status      lipgloss.Style
	Card        lipgloss.Style
	City        lipgloss.Style
	Temperature lipgloss.Style
	Condition   lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogBody  lipgloss.Style
	Spinner     lipgloss.Style
	Help        help.Styles
}

func newStyles(t theme.Theme) styles {
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.ButtonText)).
		Background(lipgloss.Color(t.Accent)).
		Bold(true).
		Padding(0, 3).
		MarginBottom(1)

	h := help.New().Styles
	h.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpKey))
	h.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpDesc))
	h.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpDesc))

	return styles{
		Background: lipgloss.Color(t.Background),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Title)).
			MarginBottom(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1).
			MarginBottom(1),
		Button:      button,
		ButtonFocus: button.Underline(true),
		ButtonDim: button.
			Foreground(lipgloss.Color(t.Foreground)).
			Background(lipgloss.Color(t.Border)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			MarginTop(1),
		Offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Offline)).
			MarginTop(1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Dim)).
			MarginTop(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Background(lipgloss.Color(t.Surface)).
			Padding(1, 4).
			MarginTop(2).
			Align(lipgloss.Center),
		City: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Title)).
			Background(lipgloss.Color(t.Surface)),
		Temperature: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)).
			Background(lipgloss.Color(t.Surface)),
		Condition: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(t.Muted)).
			Background(lipgloss.Color(t.Surface)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 3).
			Align(lipgloss.Center),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Title)).
			MarginBottom(1),
		DialogBody: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Foreground)).
			MarginBottom(1),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Help:    h,
	}
}
