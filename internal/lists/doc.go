// Package lists holds the in-memory gateway lists for every supported game
// together with their load and edit state.
//
// A Store keeps, per game, the ordered entry list, the container header that
// was read at load time, a has-data flag and a changed flag. It also keeps
// the most recent error message reported by the persistence layer.
//
// The mutation methods (AddEntry, RemoveEntryAt, SetDefaultAt, MoveUpFrom,
// MoveDownFrom) never fail: an out-of-range index or an unknown game is a
// no-op that leaves both the list and the changed flag untouched. They
// report whether the list was modified.
//
// A Store is not safe for concurrent use.
package lists
