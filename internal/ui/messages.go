package ui

import (
	"focuswork/internal/domain"
	"focuswork/internal/services"
)

// snapshotMsg carries a tracker snapshot published by OnTick
type snapshotMsg struct {
	snapshot services.TrackerSnapshot
}

// syncMsg carries a remote change applied by the reconciler
type syncMsg struct {
	event services.SyncEvent
}

// clientsLoadedMsg replaces the client list. resetNotes asks the notes editor
// to drop its buffer for the viewed client; selectID moves the cursor.
type clientsLoadedMsg struct {
	clients    []domain.Client
	resetNotes bool
	selectID   string
}

// clientCreatedMsg is sent after the new client dialog saved a client
type clientCreatedMsg struct {
	client domain.Client
}

// notesSavedMsg reports a completed notes save
type notesSavedMsg struct {
	clientID string
}

type errMsg struct {
	err error
}
