// ABOUTME: SQLite-backed container store using modernc.org/sqlite or mattn/go-sqlite3
// ABOUTME: Keeps the current container per game plus a UUID-keyed revision history

package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/2389/gateway-editor/internal/codec"
	"github.com/2389/gateway-editor/internal/prefs"
)

// Driver names accepted by Open.
const (
	DriverModernc = "sqlite"
	DriverCGO     = "sqlite3"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Revision describes a container that was replaced by a later write.
type Revision struct {
	ID         string
	Game       codec.GameID
	Name       string
	ResID      int
	Size       int
	ReplacedAt time.Time
}

// SQLiteStore implements prefs.ResourceStore on top of SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the container database at path using the given
// driver ("" selects DriverModernc). Parent directories are created if needed.
func Open(driver, path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "resource")

	if driver == "" {
		driver = DriverModernc
	}
	if driver != DriverModernc && driver != DriverCGO {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("container store initialized", "driver", driver, "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS containers (
			game          TEXT PRIMARY KEY,
			resource_name TEXT NOT NULL,
			resource_id   INTEGER NOT NULL,
			data          BLOB NOT NULL,
			updated_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS container_revisions (
			revision_id   TEXT PRIMARY KEY,
			game          TEXT NOT NULL,
			resource_name TEXT NOT NULL,
			resource_id   INTEGER NOT NULL,
			data          BLOB NOT NULL,
			replaced_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_revisions_game
			ON container_revisions(game, replaced_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SetBusyTimeout makes SQLite wait up to d for a locked database.
func (s *SQLiteStore) SetBusyTimeout(d time.Duration) error {
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", d.Milliseconds())); err != nil {
		return fmt.Errorf("setting busy timeout: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing container store")
	return s.db.Close()
}

// ReadContainer returns the game's current container.
// Returns prefs.ErrNotFound if none was ever written.
func (s *SQLiteStore) ReadContainer(ctx context.Context, game codec.GameID) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM containers WHERE game = ?`, string(game)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, prefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying container: %w", err)
	}
	return data, nil
}

// WriteContainer replaces the game's container, moving the previous one
// into the revision history.
func (s *SQLiteStore) WriteContainer(ctx context.Context, game codec.GameID, name string, resID int, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timeLayout)
	revisionID := uuid.New().String()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO container_revisions (revision_id, game, resource_name, resource_id, data, replaced_at)
		SELECT ?, game, resource_name, resource_id, data, ?
		FROM containers WHERE game = ?
	`, revisionID, now, string(game))
	if err != nil {
		return fmt.Errorf("archiving previous container: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO containers (game, resource_name, resource_id, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(game), name, resID, data, now)
	if err != nil {
		return fmt.Errorf("writing container: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing container: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		s.logger.Debug("archived container", "game", game, "revision_id", revisionID)
	}
	s.logger.Debug("wrote container", "game", game, "resource", name, "id", resID, "size", len(data))
	return nil
}

// Revisions lists the game's replaced containers, newest first.
func (s *SQLiteStore) Revisions(ctx context.Context, game codec.GameID, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT revision_id, game, resource_name, resource_id, length(data), replaced_at
		FROM container_revisions
		WHERE game = ?
		ORDER BY replaced_at DESC, rowid DESC
		LIMIT ?
	`, string(game), limit)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var (
			r          Revision
			g          string
			replacedAt string
		)
		if err := rows.Scan(&r.ID, &g, &r.Name, &r.ResID, &r.Size, &replacedAt); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		r.Game = codec.GameID(g)
		r.ReplacedAt, err = time.Parse(timeLayout, replacedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing replaced_at: %w", err)
		}
		revs = append(revs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revision rows: %w", err)
	}

	return revs, nil
}

// RevisionData returns the raw container stored under a revision id.
// Returns prefs.ErrNotFound for an unknown id.
func (s *SQLiteStore) RevisionData(ctx context.Context, id string) (codec.GameID, []byte, error) {
	var (
		game string
		data []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT game, data FROM container_revisions WHERE revision_id = ?`, id,
	).Scan(&game, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, prefs.ErrNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("querying revision: %w", err)
	}
	return codec.GameID(game), data, nil
}
