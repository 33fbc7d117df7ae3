package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

var _ ports.TextEditor = (*Editor)(nil)

// Editor implements ports.TextEditor with an external terminal editor
type Editor struct {
	command string
}

// NewEditor creates an editor. command overrides the environment lookup when set.
func NewEditor(command string) *Editor {
	return &Editor{command: command}
}

// Edit writes initial to a temporary markdown file, waits for the editor to
// exit and returns the saved content
func (e *Editor) Edit(ctx context.Context, name, initial string) (string, error) {
	editor := findEditor(e.command)
	if editor == "" {
		return "", fmt.Errorf("no suitable editor found. Set --editor flag, $FOCUSWORK_EDITOR, $VISUAL, or $EDITOR")
	}

	dir, err := os.MkdirTemp("", "focuswork-notes-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, sanitizeName(name)+".md")
	if err := os.WriteFile(path, []byte(initial), 0600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	logging.Logger.Info("Opening editor", "editor", editor, "path", path)

	cmd := editorCommand(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}

// findEditor picks the editor command.
// Priority: command → $FOCUSWORK_EDITOR → $VISUAL → $EDITOR → platform defaults
func findEditor(command string) string {
	if command != "" {
		return command
	}
	for _, env := range []string{"FOCUSWORK_EDITOR", "VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	for _, candidate := range defaultEditors {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "notes"
	}
	return string(out)
}
