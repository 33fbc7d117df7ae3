package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"focuswork/internal/theme"
)

// NotesEditor edits the notes of one client. The buffer is only replaced by
// Reset, which the model calls when a remote change lands for that client.
type NotesEditor struct {
	area     textarea.Model
	clientID string
	dirty    bool
}

// NewNotesEditor creates a blurred, empty editor
func NewNotesEditor() NotesEditor {
	area := textarea.New()
	area.Placeholder = "Notes..."
	area.ShowLineNumbers = false
	area.CharLimit = 0
	return NotesEditor{area: area}
}

// Load switches the editor to another client unless it is being edited
func (e *NotesEditor) Load(clientID, notes string) {
	if e.area.Focused() && e.clientID == clientID {
		return
	}
	e.Reset(clientID, notes)
}

// Reset discards the buffer and any unsaved edits
func (e *NotesEditor) Reset(clientID, notes string) {
	e.clientID = clientID
	e.area.SetValue(notes)
	e.dirty = false
}

func (e *NotesEditor) ClientID() string { return e.clientID }

func (e *NotesEditor) Dirty() bool { return e.dirty }

func (e *NotesEditor) Focused() bool { return e.area.Focused() }

func (e *NotesEditor) Focus() tea.Cmd { return e.area.Focus() }

func (e *NotesEditor) Blur() { e.area.Blur() }

func (e *NotesEditor) Value() string { return e.area.Value() }

// MarkSaved clears the dirty flag after a successful save
func (e *NotesEditor) MarkSaved() { e.dirty = false }

func (e *NotesEditor) SetSize(width, height int) {
	e.area.SetWidth(max(width, 10))
	e.area.SetHeight(max(height, 3))
}

// Update forwards input to the textarea and tracks unsaved edits
func (e *NotesEditor) Update(msg tea.Msg) tea.Cmd {
	before := e.area.Value()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	if e.area.Value() != before {
		e.dirty = true
	}
	return cmd
}

func (e *NotesEditor) View() string {
	style := theme.NotesBlurredStyle
	if e.area.Focused() {
		style = theme.NotesFocusedStyle
	}
	return style.Render(e.area.View())
}
