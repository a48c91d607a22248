package ui

import (
	"sync"
	"time"
)

// StateSnapshot captures the status bar contents for one frame.
type StateSnapshot struct {
	Backend     string
	Devices     int
	LastError   error
	LastUpdated time.Time
	DarkMode    bool
}

// AppState tracks status shown around the device panel. It is safe for use
// from the frame loop and from callers outside it.
type AppState struct {
	mu sync.RWMutex

	backend     string
	devices     int
	lastError   error
	lastUpdated time.Time
	darkMode    bool
}

// NewState returns a state for the named backend.
func NewState(backend string, darkMode bool) *AppState {
	return &AppState{backend: backend, darkMode: darkMode}
}

// Snapshot returns a copy of the current state.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StateSnapshot{
		Backend:     s.backend,
		Devices:     s.devices,
		LastError:   s.lastError,
		LastUpdated: s.lastUpdated,
		DarkMode:    s.darkMode,
	}
}

// SetPolled records the result of a poll.
func (s *AppState) SetPolled(devices int, at time.Time) {
	s.mu.Lock()
	s.devices = devices
	s.lastUpdated = at
	s.mu.Unlock()
}

// SetError records the latest backend error; nil clears it. It reports
// whether the state switched between failing and healthy.
func (s *AppState) SetError(err error) (changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed = (s.lastError == nil) != (err == nil)
	s.lastError = err
	return changed
}

func (s *AppState) SetDarkMode(dark bool) {
	s.mu.Lock()
	s.darkMode = dark
	s.mu.Unlock()
}

func (s *AppState) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}
