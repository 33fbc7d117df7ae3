package services

import (
	"sync"
	"time"
)

// SaveStamp remembers when something last happened so that events arriving
// shortly afterwards can be recognised as echoes. The reconciler keeps one for
// local saves and one for typing in the notes editor.
type SaveStamp struct {
	last time.Time
	mu   sync.Mutex
	now  func() time.Time
}

// NewSaveStamp creates an unmarked stamp
func NewSaveStamp() *SaveStamp {
	return &SaveStamp{now: time.Now}
}

// Mark records the current instant
func (s *SaveStamp) Mark() {
	s.mu.Lock()
	s.last = s.now()
	s.mu.Unlock()
}

// Within reports whether the last mark is less than window ago
func (s *SaveStamp) Within(window time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last.IsZero() {
		return false
	}
	return s.now().Sub(s.last) < window
}

// Last returns the last marked instant, zero if never marked
func (s *SaveStamp) Last() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
