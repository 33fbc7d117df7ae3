//go:build !windows

package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEditor_Precedence(t *testing.T) {
	t.Setenv("FOCUSWORK_EDITOR", "fw-editor")
	t.Setenv("VISUAL", "visual-editor")
	t.Setenv("EDITOR", "plain-editor")

	assert.Equal(t, "flag-editor", findEditor("flag-editor"))
	assert.Equal(t, "fw-editor", findEditor(""))

	t.Setenv("FOCUSWORK_EDITOR", "")
	assert.Equal(t, "visual-editor", findEditor(""))

	t.Setenv("VISUAL", "")
	assert.Equal(t, "plain-editor", findEditor(""))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Acme_Corp", sanitizeName("Acme Corp"))
	assert.Equal(t, "notes", sanitizeName(""))
}

func TestEdit_ReturnsSavedContent(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '\\n- follow up' >> \"$1\"\n"), 0700))

	out, err := NewEditor(script).Edit(context.Background(), "Acme", "# Acme")
	require.NoError(t, err)
	assert.Equal(t, "# Acme\n- follow up", out)
}
