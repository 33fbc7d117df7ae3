package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	OfflineBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorOffline).
				Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Timer styles
var (
	BillableStyle = lipgloss.NewStyle().
			Foreground(ColorBillable)

	TimerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Padding(0, 1)
)

// Panel styles
var (
	DetailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMuted).
				Padding(0, 1)

	ListPanelStyle = lipgloss.NewStyle().
			Padding(0, 1)

	NotesFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorSecondary)

	NotesBlurredStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted)
)

// ErrorStyle renders the error line
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError)

// ModeStyle returns the badge style for a tracker mode
func ModeStyle(mode string) lipgloss.Style {
	color := ColorIdle
	switch mode {
	case "running":
		color = ColorRunning
	case "paused":
		color = ColorPaused
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// StatusStyle returns the style for a client workflow status
func StatusStyle(status string) lipgloss.Style {
	color := ColorStatusActive
	switch status {
	case "closed":
		color = ColorStatusClosed
	case "paused":
		color = ColorStatusPaused
	case "waiting":
		color = ColorStatusWaiting
	}
	return lipgloss.NewStyle().Foreground(color)
}
