package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Tracker mode colors
const (
	ColorIdle    Color = "8" // Gray - nothing tracked
	ColorPaused  Color = "3" // Yellow - client selected, clock stopped
	ColorRunning Color = "2" // Green - accruing
)

// Client status colors
const (
	ColorStatusActive  Color = "2"
	ColorStatusClosed  Color = "8"
	ColorStatusPaused  Color = "3"
	ColorStatusWaiting Color = "214"
)

// UI semantic colors
const (
	ColorBillable  Color = "46"  // Bright green - billable time
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorOffline   Color = "178" // Gold - offline badge
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)
