package tui

import "github.com/charmbracelet/lipgloss"

// One Dark palette
var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBgDark    = lipgloss.Color("#21252B")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	TaskStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	TaskCursorStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	ClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorBgDark).
			Bold(true).
			Padding(1, 4)

	ClockDoneStyle = ClockStyle.
			Background(ColorGreen)

	PhaseStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	CompletionStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)
