package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"focuswork/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Show SettingsShowCmd `cmd:"show" help:"Show the effective configuration"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		var valueStr string
		switch v := example[key].(type) {
		case string:
			valueStr = v
		case map[string]any, []string:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		default:
			valueStr = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Create or edit this file to configure focuswork.")
	fmt.Println("All settings are optional and have sensible defaults.")
	return nil
}

// SettingsShowCmd prints the resolved runtime configuration with secrets hidden
type SettingsShowCmd struct{}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	rt := cli.Container.Runtime
	hidden := func(v string) string {
		if v == "" {
			return ""
		}
		return "********"
	}
	database := ""
	if rt.DatabaseURL != "" {
		database = redactURL(rt.DatabaseURL)
	}
	redis := ""
	if rt.RedisURL != "" {
		redis = redactURL(rt.RedisURL)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"settings_file", rt.SettingsPath},
		{"db_path", rt.DBPath},
		{"session_path", rt.SessionPath},
		{"database_url", database},
		{"redis_url", redis},
		{"meili_url", rt.MeiliURL},
		{"meili_api_key", hidden(rt.MeiliAPIKey)},
		{"blob_endpoint", rt.BlobEndpoint},
		{"blob_bucket", rt.BlobBucket},
		{"blob_secret_key", hidden(rt.BlobSecretKey)},
		{"offline", fmt.Sprintf("%t", rt.Offline)},
		{"poll_interval", rt.PollInterval.String()},
		{"reconnect_backoff", rt.ReconnectBackoff.String()},
		{"self_save_window", rt.SelfSaveWindow.String()},
		{"typing_cooldown", rt.TypingCooldown.String()},
		{"backup_delay", rt.BackupDelay.String()},
		{"backup_interval", rt.BackupInterval.String()},
		{"backup_keep", fmt.Sprintf("%d", rt.BackupKeep)},
		{"debug", fmt.Sprintf("%t", rt.Debug)},
		{"max_log_files", fmt.Sprintf("%d", rt.MaxLogFiles)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	return w.Flush()
}
