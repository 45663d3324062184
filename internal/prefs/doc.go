// Package prefs moves gateway lists between a lists.Store and the
// preference containers held by a ResourceStore.
//
// Load reads every game's container, decodes it and populates the store.
// Save encodes and writes back every game with unsaved edits. Both work game
// by game: a missing container, an unreadable container or a failed write
// affects only that game, is recorded as the store's last error, and is
// returned as part of a joined error once every game has been attempted.
//
// A game that had no container at load time can still be edited. Saving it
// writes a new container with a zeroed header of that game's layout. A game
// whose container exists but failed to read or decode is never written: Save
// reports ErrNotLoaded for it and leaves it changed until it is reloaded.
package prefs
