package domain

import "strings"

// ActivityKind identifies what tracked time is attributed to
type ActivityKind string

const (
	ActivityAdmin    ActivityKind = "admin"
	ActivityCalls    ActivityKind = "calls"
	ActivityMeetings ActivityKind = "meetings"
	ActivityTravel   ActivityKind = "travel"
	ActivityWork     ActivityKind = "work"
)

// KnownActivities lists the built-in activity kinds in display order
var KnownActivities = []ActivityKind{
	ActivityWork,
	ActivityCalls,
	ActivityMeetings,
	ActivityTravel,
	ActivityAdmin,
}

// ParseActivity normalizes user input into an ActivityKind.
// Unknown but non-empty kinds are accepted so older payloads keep their buckets.
func ParseActivity(s string) ActivityKind {
	return ActivityKind(strings.ToLower(strings.TrimSpace(s)))
}

// IsValid reports whether the kind can receive accrual
func (a ActivityKind) IsValid() bool {
	return strings.TrimSpace(string(a)) != ""
}
