//go:build windows

package editor

import (
	"context"
	"os/exec"
)

var defaultEditors = []string{
	"notepad.exe",
}

func editorCommand(ctx context.Context, editor, path string) *exec.Cmd {
	return exec.CommandContext(ctx, "cmd.exe", "/C", editor, path)
}
