package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/services"
	"focuswork/internal/theme"
)

const (
	eventBuffer = 64
	listWidth   = 32
)

type uiState int

const (
	stateList uiState = iota
	stateNotes
	stateNewClient
	stateHelp
)

// Deps are the services the tracker screen drives
type Deps struct {
	Clients    *services.ClientService
	DevMode    bool
	Offline    func() bool
	Reconciler *services.Reconciler
	Tracker    *services.Tracker
}

// Model is the tracker screen: client list, detail panel and notes editor.
// Snapshots and sync events reach it through a channel fed by service listeners.
type Model struct {
	clients    []domain.Client
	closeOnce  sync.Once
	ctx        context.Context
	cursor     int
	deps       Deps
	dialog     *Dialog
	done       chan struct{}
	err        error
	events     chan tea.Msg
	height     int
	help       help.Model
	keys       KeyMap
	notes      NotesEditor
	snapshot   services.TrackerSnapshot
	state      uiState
	width      int
}

// NewModel creates the model and subscribes it to tracker and sync events
func NewModel(ctx context.Context, deps Deps) *Model {
	m := &Model{
		ctx:    ctx,
		deps:   deps,
		done:   make(chan struct{}),
		events: make(chan tea.Msg, eventBuffer),
		help:   help.New(),
		keys:   DefaultKeyMap(),
		notes:  NewNotesEditor(),
	}
	if deps.Tracker != nil {
		m.snapshot = deps.Tracker.Snapshot(ctx)
		deps.Tracker.OnTick(func(s services.TrackerSnapshot) {
			// a newer snapshot follows shortly, so a full buffer drops this one
			select {
			case m.events <- snapshotMsg{snapshot: s}:
			default:
			}
		})
	}
	if deps.Reconciler != nil {
		deps.Reconciler.OnSync(func(ev services.SyncEvent) {
			select {
			case m.events <- syncMsg{event: ev}:
			case <-m.done:
			}
		})
	}
	return m
}

// Close releases listeners blocked on a model that is no longer running
func (m *Model) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadClients(false), m.waitForEvent())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.notes.SetSize(m.width-listWidth-8, m.height/3)
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.applySnapshotTotal()
		return m, m.waitForEvent()

	case syncMsg:
		return m, tea.Batch(m.loadClients(msg.event.ResetEditors), m.waitForEvent())

	case clientsLoadedMsg:
		m.setClients(msg.clients, msg.selectID, msg.resetNotes)
		return m, nil

	case clientCreatedMsg:
		return m, m.loadClientsSelecting(msg.client.ID)

	case notesSavedMsg:
		if m.notes.ClientID() == msg.clientID {
			m.notes.MarkSaved()
		}
		return m, m.loadClients(false)

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case stateNotes:
		return m.updateNotes(msg)
	case stateNewClient:
		return m.updateNewClient(msg)
	case stateHelp:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.help.ShowAll = false
			m.state = stateList
		}
		return m, nil
	}
	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.err = nil

	if activity, ok := m.keys.ActivityFor(keyMsg.String()); ok {
		return m, m.trackerCmd(func(ctx context.Context) error {
			return m.deps.Tracker.SwitchActivity(ctx, activity)
		})
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		return m, m.moveCursor(-1)

	case key.Matches(keyMsg, m.keys.Down):
		return m, m.moveCursor(1)

	case key.Matches(keyMsg, m.keys.Track):
		c := m.selected()
		if c == nil {
			return m, nil
		}
		activity := m.snapshot.Activity
		if activity == "" {
			activity = domain.ActivityWork
		}
		id := c.ID
		return m, m.trackerCmd(func(ctx context.Context) error {
			return m.deps.Tracker.Select(ctx, id, activity)
		})

	case key.Matches(keyMsg, m.keys.Pause):
		switch m.snapshot.Mode {
		case domain.ModeRunning:
			return m, m.trackerCmd(m.deps.Tracker.Pause)
		case domain.ModePaused:
			return m, m.trackerCmd(func(ctx context.Context) error {
				return m.deps.Tracker.Resume(ctx, "")
			})
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Stop):
		return m, m.trackerCmd(m.deps.Tracker.Stop)

	case key.Matches(keyMsg, m.keys.EditNotes):
		c := m.selected()
		if c == nil {
			return m, nil
		}
		m.notes.Load(c.ID, c.Notes)
		m.state = stateNotes
		return m, m.notes.Focus()

	case key.Matches(keyMsg, m.keys.NewClient):
		m.dialog = NewDialog("New client", NewClientForm(), m.deps.DevMode)
		m.state = stateNewClient
		return m, m.dialog.Init()

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = true
		m.state = stateHelp
		return m, nil
	}
	return m, nil
}

func (m *Model) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.notes.Update(msg)
	}
	if key.Matches(keyMsg, m.keys.SaveNotes) {
		m.notes.Blur()
		m.state = stateList
		return m, m.saveNotes()
	}
	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.deps.Reconciler != nil {
		m.deps.Reconciler.MarkTyping()
	}
	return m, m.notes.Update(msg)
}

func (m *Model) updateNewClient(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dialog == nil {
		m.state = stateList
		return m, nil
	}
	_, cmd := m.dialog.Update(msg)
	form, ok := m.dialog.Content().(*ClientForm)
	if !ok || !form.Completed {
		return m, cmd
	}

	m.dialog = nil
	m.state = stateList
	result := form.Result()
	if result.Cancelled {
		return m, nil
	}
	return m, m.createClient(result)
}

func (m *Model) View() string {
	if m.state == stateNewClient && m.dialog != nil {
		return m.dialog.View()
	}

	badge := theme.ModeStyle(string(m.snapshot.Mode)).Render(strings.ToUpper(string(m.snapshot.Mode)))
	if m.deps.Offline != nil && m.deps.Offline() {
		badge += " " + theme.OfflineBadgeStyle.Render("OFFLINE")
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.deps.DevMode, "", badge))
	b.WriteString("\n")
	b.WriteString(m.renderTimer())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		theme.ListPanelStyle.Width(listWidth).Render(m.renderList()),
		m.renderDetail(),
	))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(m.err, max(m.width, 40))))
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderTimer() string {
	s := m.snapshot
	if s.Mode == domain.ModeIdle {
		return theme.LabelStyle.Render("Not tracking")
	}
	line := theme.TimerStyle.Render(FormatDuration(s.SessionElapsed)) +
		theme.NormalStyle.Render(s.ClientName)
	if s.Activity != "" {
		line += theme.LabelStyle.Render(" · " + string(s.Activity))
	}
	line += theme.LabelStyle.Render("  total ") + theme.NormalStyle.Render(FormatDuration(s.ClientTotal))
	if s.Schedule.Enabled {
		line += theme.LabelStyle.Render("  billable ") + theme.BillableStyle.Render(FormatDuration(s.Billable))
	}
	return line
}

func (m *Model) renderList() string {
	if len(m.clients) == 0 {
		return theme.LabelStyle.Render("No clients yet. Press n to add one.")
	}
	var b strings.Builder
	for i, c := range m.clients {
		cursor := "  "
		style := theme.NormalStyle
		if i == m.cursor {
			cursor = "> "
			style = theme.SelectedStyle
		}
		marker := " "
		if c.ID == m.snapshot.ClientID {
			marker = theme.ModeStyle(string(m.snapshot.Mode)).Render("●")
		}
		b.WriteString(cursor + marker + " " + style.Render(c.Name) + "\n")
	}
	return b.String()
}

func (m *Model) renderDetail() string {
	c := m.selected()
	if c == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.SelectedStyle.Render(c.Name))
	b.WriteString("  " + theme.StatusStyle(string(c.Status)).Render(string(c.Status)) + "\n")
	if c.Company != "" {
		b.WriteString(theme.LabelStyle.Render(c.Company) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.LabelStyle.Render("Total    ") + FormatDuration(c.Total) + "\n")
	b.WriteString(theme.LabelStyle.Render("Billable ") + theme.BillableStyle.Render(FormatDuration(c.BillableTime)) + "\n")
	if len(c.ExtraHours) > 0 {
		var extra int64
		for _, e := range c.ExtraHours {
			extra += e.Seconds
		}
		b.WriteString(theme.LabelStyle.Render("Extra    ") + FormatHours(extra) + "\n")
	}

	kinds := make([]string, 0, len(c.Activities))
	for kind := range c.Activities {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		b.WriteString(theme.LabelStyle.Render(fmt.Sprintf("  %-9s", kind)) +
			FormatDuration(c.Activities[domain.ActivityKind(kind)]) + "\n")
	}
	if c.DeliveryDate != "" {
		b.WriteString(theme.LabelStyle.Render("Delivery ") + c.DeliveryDate + "\n")
	}

	b.WriteString("\n")
	if m.state == stateNotes || m.notes.ClientID() == c.ID {
		b.WriteString(m.notes.View())
	} else {
		b.WriteString(theme.NotesBlurredStyle.Render(c.Notes))
	}
	return theme.DetailPanelStyle.Render(b.String())
}

func (m *Model) selected() *domain.Client {
	if m.cursor < 0 || m.cursor >= len(m.clients) {
		return nil
	}
	return &m.clients[m.cursor]
}

// applySnapshotTotal keeps the list row of the tracked client current between reloads
func (m *Model) applySnapshotTotal() {
	for i := range m.clients {
		if m.clients[i].ID == m.snapshot.ClientID {
			m.clients[i].Total = m.snapshot.ClientTotal
			return
		}
	}
}

func (m *Model) setClients(clients []domain.Client, selectID string, resetNotes bool) {
	selectedID := selectID
	if c := m.selected(); c != nil && selectedID == "" {
		selectedID = c.ID
	}
	m.clients = clients
	m.cursor = 0
	for i, c := range clients {
		if c.ID == selectedID {
			m.cursor = i
			break
		}
	}

	c := m.selected()
	if c == nil {
		return
	}
	if resetNotes && m.notes.ClientID() == c.ID {
		// a remote change won over the local buffer
		m.notes.Reset(c.ID, c.Notes)
		return
	}
	m.notes.Load(c.ID, c.Notes)
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.clients) == 0 {
		return nil
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.clients) {
		return nil
	}
	m.cursor = next
	c := m.clients[next]
	if m.state != stateNotes {
		m.notes.Load(c.ID, c.Notes)
	}
	return m.viewedCmd(c.ID)
}

func (m *Model) viewedCmd(id string) tea.Cmd {
	if m.deps.Tracker == nil {
		return nil
	}
	return func() tea.Msg {
		if err := m.deps.Tracker.SetViewed(m.ctx, id); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *Model) trackerCmd(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(m.ctx); err != nil {
			logging.Logger.Warn("Tracker operation failed", "error", err)
			return errMsg{err: err}
		}
		return m.loadClients(false)()
	}
}

func (m *Model) saveNotes() tea.Cmd {
	if !m.notes.Dirty() {
		return nil
	}
	id, notes := m.notes.ClientID(), m.notes.Value()
	return func() tea.Msg {
		if _, err := m.deps.Clients.SetNotes(m.ctx, id, notes); err != nil {
			return errMsg{err: fmt.Errorf("failed to save notes: %w", err)}
		}
		return notesSavedMsg{clientID: id}
	}
}

func (m *Model) createClient(result ClientFormResult) tea.Cmd {
	return func() tea.Msg {
		c, err := m.deps.Clients.Create(m.ctx, result.Name)
		if err != nil {
			return errMsg{err: err}
		}
		if result.Company != "" {
			company := result.Company
			if c, err = m.deps.Clients.SetContact(m.ctx, c.ID, services.ContactDetails{Company: &company}); err != nil {
				return errMsg{err: err}
			}
		}
		return clientCreatedMsg{client: c}
	}
}

func (m *Model) loadClients(resetNotes bool) tea.Cmd {
	return func() tea.Msg {
		clients, err := m.deps.Clients.List(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return clientsLoadedMsg{clients: clients, resetNotes: resetNotes}
	}
}

func (m *Model) loadClientsSelecting(id string) tea.Cmd {
	return func() tea.Msg {
		clients, err := m.deps.Clients.List(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return clientsLoadedMsg{clients: clients, selectID: id}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.done:
			return nil
		}
	}
}
