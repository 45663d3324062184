// Package resource provides prefs.ResourceStore implementations that hold
// the raw gateway containers of each game.
//
// SQLiteStore keeps one container per game together with the resource name
// and id it was written under. Every overwrite first copies the previous
// container into a revision history keyed by a random UUID, so an earlier
// list can be inspected or restored.
//
// Two database/sql drivers are supported:
//
//   - "sqlite": modernc.org/sqlite, pure Go (default)
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// MockStore is an in-memory store for tests. Read and write failures can be
// injected per game.
package resource
