package cmd

import (
	"context"
	"fmt"

	"focuswork/internal/domain"
)

// ScheduleCmd configures the focus window
type ScheduleCmd struct {
	Off  ScheduleOffCmd  `cmd:"off" help:"Count all tracked time as billable"`
	Set  ScheduleSetCmd  `cmd:"set" help:"Only count time inside the window as billable"`
	Show ScheduleShowCmd `cmd:"show" help:"Show the current window" default:"1"`
}

// ScheduleSetCmd enables the window
type ScheduleSetCmd struct {
	End   string `help:"Window end (HH:MM)" required:""`
	Start string `help:"Window start (HH:MM)" required:""`
}

// Run executes the set command
func (s *ScheduleSetCmd) Run(cli *CLI) error {
	schedule := domain.FocusSchedule{Enabled: true, End: s.End, Start: s.Start}
	if err := cli.Container.Tracker.SetSchedule(context.Background(), schedule); err != nil {
		return err
	}
	fmt.Printf("Billable window set to %s-%s\n", s.Start, s.End)
	return nil
}

// ScheduleOffCmd disables the window, keeping the configured times
type ScheduleOffCmd struct{}

// Run executes the off command
func (o *ScheduleOffCmd) Run(cli *CLI) error {
	schedule := cli.Container.Tracker.State().FocusSchedule
	schedule.Enabled = false
	if err := cli.Container.Tracker.SetSchedule(context.Background(), schedule); err != nil {
		return err
	}
	fmt.Println("Billable window disabled")
	return nil
}

// ScheduleShowCmd prints the window
type ScheduleShowCmd struct{}

// Run executes the show command
func (s *ScheduleShowCmd) Run(cli *CLI) error {
	schedule := cli.Container.Tracker.State().FocusSchedule
	state := "disabled"
	if schedule.Enabled {
		state = "enabled"
	}
	fmt.Printf("Billable window %s-%s (%s)\n", schedule.Start, schedule.End, state)
	return nil
}
