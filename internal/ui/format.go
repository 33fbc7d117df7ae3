package ui

import "fmt"

// FormatDuration renders whole seconds as HH:MM:SS. Hours grow past 99.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatHours renders seconds as decimal hours, e.g. "2.50h"
func FormatHours(seconds int64) string {
	return fmt.Sprintf("%.2fh", float64(seconds)/3600)
}
