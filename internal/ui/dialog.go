package ui

import tea "github.com/charmbracelet/bubbletea"

// Dialog wraps any tea.Model content and prepends the application header with
// the dialog title. Forms never render their own header.
type Dialog struct {
	content tea.Model
	devMode bool
	title   string
}

// NewDialog creates a new dialog wrapper
func NewDialog(title string, content tea.Model, devMode bool) *Dialog {
	return &Dialog{
		content: content,
		devMode: devMode,
		title:   title,
	}
}

// Init delegates to wrapped content's Init method.
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to wrapped content's Update method and keeps the dialog
// as the returned model.
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedContent, cmd := d.content.Update(msg)
	d.content = updatedContent
	return d, cmd
}

// View renders the dialog header followed by the content
func (d *Dialog) View() string {
	return renderDialogHeader(d.devMode, d.title) + d.content.View()
}

// Content returns the wrapped content for type assertion, e.g.
//
//	if form, ok := dialog.Content().(*ClientForm); ok && form.Completed { ... }
func (d *Dialog) Content() tea.Model {
	return d.content
}
