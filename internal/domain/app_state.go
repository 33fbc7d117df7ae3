package domain

import (
	"maps"
	"time"
)

// TrackerMode is the derived state of the time accounting engine
type TrackerMode string

const (
	ModeIdle    TrackerMode = "idle"
	ModePaused  TrackerMode = "paused"
	ModeRunning TrackerMode = "running"
)

// AppState is the process-wide persisted tracking state (singleton record)
type AppState struct {
	CurrentActivity ActivityKind           `json:"currentActivity,omitempty"`
	CurrentClientID string                 `json:"currentClientId,omitempty"`
	Day             string                 `json:"day"`
	Focus           map[ActivityKind]int64 `json:"focus"`
	FocusSchedule   FocusSchedule          `json:"focusSchedule"`
	LastTick        time.Time              `json:"lastTick"`
	SessionElapsed  int64                  `json:"sessionElapsed"`
	ViewedClientID  string                 `json:"viewedClientId,omitempty"`
}

// NewAppState returns an idle state with a disabled schedule
func NewAppState() AppState {
	return AppState{
		Focus:         make(map[ActivityKind]int64),
		FocusSchedule: DefaultFocusSchedule(),
	}
}

// Normalize fills defaults for records written by older versions
func (s *AppState) Normalize() {
	if s.Focus == nil {
		s.Focus = make(map[ActivityKind]int64)
	}
	if s.FocusSchedule.Start == "" && s.FocusSchedule.End == "" {
		enabled := s.FocusSchedule.Enabled
		s.FocusSchedule = DefaultFocusSchedule()
		s.FocusSchedule.Enabled = enabled
	}
}

// Clone returns a deep copy
func (s AppState) Clone() AppState {
	out := s
	out.Focus = maps.Clone(s.Focus)
	return out
}

// Mode derives IDLE / PAUSED / RUNNING from the current client and activity
func (s AppState) Mode() TrackerMode {
	switch {
	case s.CurrentClientID == "":
		return ModeIdle
	case s.CurrentActivity == "":
		return ModePaused
	default:
		return ModeRunning
	}
}
