//go:build !windows

package editor

import (
	"context"
	"os/exec"
)

var defaultEditors = []string{
	"nano",
	"vim",
	"vi",
}

// editorCommand runs through the shell so $EDITOR may carry arguments
func editorCommand(ctx context.Context, editor, path string) *exec.Cmd {
	return exec.CommandContext(ctx, "/bin/sh", "-c", editor+` "$1"`, "sh", path)
}
