package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"focuswork/internal/domain"
)

// KeyMap holds every binding of the tracker screen. It implements help.KeyMap.
type KeyMap struct {
	Activities []key.Binding
	Down       key.Binding
	EditNotes  key.Binding
	Help       key.Binding
	NewClient  key.Binding
	Pause      key.Binding
	Quit       key.Binding
	SaveNotes  key.Binding
	Stop       key.Binding
	Track      key.Binding
	Up         key.Binding
}

// DefaultKeyMap returns the standard bindings. Digits select activities in the
// order of domain.KnownActivities.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		EditNotes: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit notes"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NewClient: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new client"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause/resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SaveNotes: key.NewBinding(
			key.WithKeys("ctrl+s", "esc"),
			key.WithHelp("ctrl+s/esc", "save notes"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Track: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "track client"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
	}

	digits := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for i, activity := range domain.KnownActivities {
		if i >= len(digits) {
			break
		}
		km.Activities = append(km.Activities, key.NewBinding(
			key.WithKeys(digits[i]),
			key.WithHelp(digits[i], string(activity)),
		))
	}
	return km
}

// ActivityFor returns the activity bound to msg, if any
func (k KeyMap) ActivityFor(keyName string) (domain.ActivityKind, bool) {
	for i, b := range k.Activities {
		for _, name := range b.Keys() {
			if name == keyName {
				return domain.KnownActivities[i], true
			}
		}
	}
	return "", false
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Track, k.Pause, k.Stop, k.EditNotes, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Track, k.Pause, k.Stop},
		k.Activities,
		{k.NewClient, k.EditNotes, k.SaveNotes, k.Help, k.Quit},
	}
}
