package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"focuswork/internal/cmd"
	"focuswork/internal/config"
	"focuswork/internal/ui"
)

// Build information injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0 -X main.Commit=abc123 ..."
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Tagline is the application's tagline used in help text and documentation
const Tagline = "Track the work, bill the hours"

// versionInfo returns formatted version information for CLI display
func versionInfo() string {
	return fmt.Sprintf("focuswork %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

func main() {
	ui.SetVersionInfo(ui.VersionInfo{
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Tagline:   Tagline,
		Version:   Version,
	})

	// Load settings from ~/.focuswork/settings.json
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{}
	}

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	cli.SetSettings(settings)
	ctx := kong.Parse(&cli,
		kong.Name("focuswork"),
		kong.Description(Tagline),
		kong.Vars{
			"version": versionInfo(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	runErr := ctx.Run()
	if err := cli.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
