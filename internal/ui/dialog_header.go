package ui

import (
	"fmt"

	"focuswork/internal/theme"
)

// VersionInfo holds version information for display in UI headers.
// Populated by main.go from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

// DefaultVersionInfo provides default values when version info is not available
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Tagline:   "Track the work, bill the hours",
	Version:   "dev",
}

var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the global version info (called from main.go)
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader builds the app name line (with build details in dev mode), the
// tagline and an optional subtitle. badge is appended to the app name line.
func renderHeader(devMode bool, subtitle string, badge string) string {
	appNameLine := theme.AppNameStyle.Render("FocusWork")
	if devMode {
		commit := versionInfo.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		appNameLine += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			versionInfo.Version,
			commit,
			versionInfo.Date,
			versionInfo.GoVersion))
	}
	if badge != "" {
		appNameLine += "  " + badge
	}

	result := appNameLine + "\n"
	result += theme.TaglineStyle.Render(versionInfo.Tagline)
	if subtitle != "" {
		result += "\n\n" + theme.SubtitleStyle.Render(subtitle)
	}
	result += "\n"
	return result
}

// renderDialogHeader is only called by Dialog
func renderDialogHeader(devMode bool, formTitle string) string {
	return renderHeader(devMode, formTitle, "")
}
