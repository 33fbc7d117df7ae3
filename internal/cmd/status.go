package cmd

import (
	"context"
	"fmt"
	"sort"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ui"
)

// StatusCmd prints the tracker state and connectivity
type StatusCmd struct {
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// statusReport is the json shape of the status command
type statusReport struct {
	Activity       domain.ActivityKind           `json:"activity,omitempty"`
	Backend        string                        `json:"search_backend"`
	ClientID       string                        `json:"client_id,omitempty"`
	ClientName     string                        `json:"client_name,omitempty"`
	Day            string                        `json:"day"`
	Focus          map[domain.ActivityKind]int64 `json:"focus"`
	LogDir         string                        `json:"log_dir,omitempty"`
	Mode           domain.TrackerMode            `json:"mode"`
	Offline        bool                          `json:"offline"`
	SessionElapsed int64                         `json:"session_elapsed"`
	SignedInAs     string                        `json:"signed_in_as,omitempty"`
	StoreAvailable bool                          `json:"store_available"`
}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	c := cli.Container
	snap := c.Tracker.Snapshot(context.Background())

	report := statusReport{
		Activity:       snap.Activity,
		Backend:        c.Search.Backend(),
		ClientID:       snap.ClientID,
		ClientName:     snap.ClientName,
		Day:            snap.Day,
		Focus:          snap.Focus,
		LogDir:         logging.GetLogDir(),
		Mode:           snap.Mode,
		Offline:        c.Offline.IsOffline(),
		SessionElapsed: snap.SessionElapsed,
		StoreAvailable: c.StoreAvailable(),
	}
	if session := c.Auth.Cached(); session != nil {
		report.SignedInAs = session.Email
	}
	if s.Format == "json" {
		return printJSON(report)
	}

	fmt.Printf("Tracker:   %s\n", report.Mode)
	if report.ClientID != "" {
		fmt.Printf("Client:    %s (%s)\n", report.ClientName, shortID(report.ClientID))
		if report.Activity != "" {
			fmt.Printf("Activity:  %s\n", report.Activity)
		}
		fmt.Printf("Session:   %s\n", ui.FormatDuration(report.SessionElapsed))
	}

	kinds := make([]string, 0, len(report.Focus))
	for k := range report.Focus {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	fmt.Printf("Today:     %s\n", report.Day)
	for _, k := range kinds {
		fmt.Printf("  %-9s %s\n", k, ui.FormatDuration(report.Focus[domain.ActivityKind(k)]))
	}

	store := "ok"
	if !report.StoreAvailable {
		store = "unavailable (read-only)"
	}
	fmt.Printf("Store:     %s\n", store)
	mode := "online"
	if report.Offline {
		mode = "offline"
	}
	fmt.Printf("Remote:    %s\n", mode)
	if report.SignedInAs != "" {
		fmt.Printf("Signed in: %s\n", report.SignedInAs)
	}
	fmt.Printf("Search:    %s\n", report.Backend)
	if cli.Debug && report.LogDir != "" {
		fmt.Printf("Logs:      %s\n", report.LogDir)
	}
	return nil
}
