// ABOUTME: Per-game gateway list store with has-data, changed and last-error state
// ABOUTME: Pure data holder, no I/O; mutation operations live in mutate.go

package lists

import (
	"bytes"

	"github.com/2389/gateway-editor/internal/codec"
)

// gameState is everything the store tracks for one game.
type gameState struct {
	entries []codec.Entry
	header  []byte
	hasData bool
	changed bool
}

// Store owns the gateway lists of all supported games.
type Store struct {
	games     map[codec.GameID]*gameState
	lastError string
}

// New creates a store with an empty list for every supported game.
func New() *Store {
	s := &Store{games: make(map[codec.GameID]*gameState, len(codec.Games))}
	for _, g := range codec.Games {
		s.games[g] = &gameState{}
	}
	return s
}

func (s *Store) state(game codec.GameID) (*gameState, bool) {
	st, ok := s.games[game]
	return st, ok
}

// List returns a copy of the game's entries in order.
func (s *Store) List(game codec.GameID) []codec.Entry {
	st, ok := s.state(game)
	if !ok {
		return nil
	}
	out := make([]codec.Entry, len(st.entries))
	for i, e := range st.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of entries in the game's list.
func (s *Store) Len(game codec.GameID) int {
	st, ok := s.state(game)
	if !ok {
		return 0
	}
	return len(st.entries)
}

// SetList replaces the game's entries. It does not mark the game changed;
// the coordinator uses it to populate freshly decoded data.
func (s *Store) SetList(game codec.GameID, entries []codec.Entry) {
	st, ok := s.state(game)
	if !ok {
		return
	}
	st.entries = make([]codec.Entry, len(entries))
	for i, e := range entries {
		st.entries[i] = e.Clone()
	}
}

// Header returns a copy of the header preserved for the game, or nil when
// no container was loaded.
func (s *Store) Header(game codec.GameID) []byte {
	st, ok := s.state(game)
	if !ok || st.header == nil {
		return nil
	}
	return bytes.Clone(st.header)
}

// SetHeader stores the opaque container header for the game.
func (s *Store) SetHeader(game codec.GameID, header []byte) {
	if st, ok := s.state(game); ok {
		st.header = bytes.Clone(header)
	}
}

// HasData reports whether a container existed for the game at load time.
func (s *Store) HasData(game codec.GameID) bool {
	st, ok := s.state(game)
	return ok && st.hasData
}

// SetHasData records whether the game had a container at load.
func (s *Store) SetHasData(game codec.GameID, has bool) {
	if st, ok := s.state(game); ok {
		st.hasData = has
	}
}

// Changed reports whether the game's list was edited since it was loaded
// or last saved.
func (s *Store) Changed(game codec.GameID) bool {
	st, ok := s.state(game)
	return ok && st.changed
}

// MarkChanged flags the game as having unsaved edits.
func (s *Store) MarkChanged(game codec.GameID) {
	if st, ok := s.state(game); ok {
		st.changed = true
	}
}

// ClearChanged drops the game's unsaved-edits flag after a successful save.
func (s *Store) ClearChanged(game codec.GameID) {
	if st, ok := s.state(game); ok {
		st.changed = false
	}
}

// AnyChanged reports whether any game has unsaved edits.
func (s *Store) AnyChanged() bool {
	for _, st := range s.games {
		if st.changed {
			return true
		}
	}
	return false
}

// LastError returns the most recent failure message, or "" if none.
func (s *Store) LastError() string {
	return s.lastError
}

// SetLastError overwrites the most recent failure message.
func (s *Store) SetLastError(msg string) {
	s.lastError = msg
}

// ClearLastError forgets the last failure message.
func (s *Store) ClearLastError() {
	s.lastError = ""
}

// Reset drops the game's entries, header and flags.
func (s *Store) Reset(game codec.GameID) {
	if _, ok := s.state(game); ok {
		s.games[game] = &gameState{}
	}
}
