// ABOUTME: Mutation operations on a game's gateway list
// ABOUTME: Out-of-range indexes are silent no-ops; successful edits mark the game changed

package lists

import "github.com/2389/gateway-editor/internal/codec"

// AddEntry appends an entry to the game's list. A default entry takes the
// default flag away from every other entry.
func (s *Store) AddEntry(game codec.GameID, entry codec.Entry) bool {
	st, ok := s.state(game)
	if !ok {
		return false
	}
	if entry.Default {
		clearDefaults(st.entries)
	}
	st.entries = append(st.entries, entry.Clone())
	st.changed = true
	return true
}

// RemoveEntryAt deletes the entry at index, shifting later entries down.
func (s *Store) RemoveEntryAt(game codec.GameID, index int) bool {
	st, ok := s.inRange(game, index)
	if !ok {
		return false
	}
	st.entries = append(st.entries[:index], st.entries[index+1:]...)
	st.changed = true
	return true
}

// SetDefaultAt makes the entry at index the only default entry.
func (s *Store) SetDefaultAt(game codec.GameID, index int) bool {
	st, ok := s.inRange(game, index)
	if !ok {
		return false
	}
	clearDefaults(st.entries)
	st.entries[index].Default = true
	st.changed = true
	return true
}

// MoveUpFrom swaps the entry at index with the one before it.
func (s *Store) MoveUpFrom(game codec.GameID, index int) bool {
	st, ok := s.inRange(game, index)
	if !ok || index == 0 {
		return false
	}
	st.entries[index-1], st.entries[index] = st.entries[index], st.entries[index-1]
	st.changed = true
	return true
}

// MoveDownFrom swaps the entry at index with the one after it.
func (s *Store) MoveDownFrom(game codec.GameID, index int) bool {
	st, ok := s.inRange(game, index)
	if !ok || index == len(st.entries)-1 {
		return false
	}
	st.entries[index], st.entries[index+1] = st.entries[index+1], st.entries[index]
	st.changed = true
	return true
}

// DefaultIndex returns the index of the game's default entry, or -1.
func (s *Store) DefaultIndex(game codec.GameID) int {
	st, ok := s.state(game)
	if !ok {
		return -1
	}
	for i, e := range st.entries {
		if e.Default {
			return i
		}
	}
	return -1
}

func (s *Store) inRange(game codec.GameID, index int) (*gameState, bool) {
	st, ok := s.state(game)
	if !ok || index < 0 || index >= len(st.entries) {
		return nil, false
	}
	return st, true
}

func clearDefaults(entries []codec.Entry) {
	for i := range entries {
		entries[i].Default = false
	}
}
