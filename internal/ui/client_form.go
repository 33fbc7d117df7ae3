package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ClientFormResult contains the values entered in the new client dialog
type ClientFormResult struct {
	Cancelled bool
	Company   string
	Name      string
}

// ClientForm is a Bubble Tea component for creating clients
type ClientForm struct {
	Completed bool
	form      *huh.Form
	result    ClientFormResult
}

// NewClientForm creates a new client form
func NewClientForm() *ClientForm {
	cf := &ClientForm{}
	cf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client name").
				Value(&cf.result.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("client name required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Company").
				Description("Optional").
				Value(&cf.result.Company),
		),
	)
	return cf
}

func (cf *ClientForm) Init() tea.Cmd {
	return cf.form.Init()
}

func (cf *ClientForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		cf.result.Cancelled = true
		cf.Completed = true
		return cf, nil
	}

	form, cmd := cf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		cf.form = f
	}
	switch cf.form.State {
	case huh.StateCompleted:
		cf.Completed = true
	case huh.StateAborted:
		cf.result.Cancelled = true
		cf.Completed = true
	}
	return cf, cmd
}

func (cf *ClientForm) View() string {
	if cf.Completed {
		return ""
	}
	return cf.form.View()
}

// Result returns the trimmed form values
func (cf *ClientForm) Result() ClientFormResult {
	r := cf.result
	r.Company = strings.TrimSpace(r.Company)
	r.Name = strings.TrimSpace(r.Name)
	return r
}
