// Package saveindex keeps a SQLite table of the map snapshots that have been
// written, so saves can be listed without opening them.
package saveindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MobRulesGames/isomap/logging"
)

// Entry is one recorded snapshot.
type Entry struct {
	ID       int64
	Path     string
	Width    int
	Height   int
	Passable int
	Objects  int
	Digest   string
	SavedAt  time.Time
}

// Fixed width, so saved_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Index struct {
	db *sql.DB
}

// Open opens, creating if necessary, the index database at path.
func Open(path string) (*Index, error) {
	if path == "" {
		return nil, errors.New("empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			passable INTEGER NOT NULL,
			objects INTEGER NOT NULL,
			digest TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_path ON snapshots(path, saved_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Index) Close() error {
	return idx.db.Close()
}

// Record adds e to the index and returns its id. A zero SavedAt is replaced
// by the current time.
func (idx *Index) Record(ctx context.Context, e Entry) (int64, error) {
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now()
	}
	res, err := idx.db.ExecContext(ctx,
		`INSERT INTO snapshots(path,width,height,passable,objects,digest,saved_at) VALUES(?,?,?,?,?,?,?)`,
		e.Path, e.Width, e.Height, e.Passable, e.Objects, e.Digest, e.SavedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("couldn't record snapshot %q: %w", e.Path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	logging.Debug("indexed snapshot", "id", id, "path", e.Path, "digest", e.Digest)
	return id, nil
}

// List returns every entry, oldest first.
func (idx *Index) List(ctx context.Context) ([]Entry, error) {
	return idx.query(ctx, `SELECT id,path,width,height,passable,objects,digest,saved_at FROM snapshots ORDER BY saved_at, id`)
}

// History returns the entries for one snapshot path, newest first.
func (idx *Index) History(ctx context.Context, path string) ([]Entry, error) {
	return idx.query(ctx, `SELECT id,path,width,height,passable,objects,digest,saved_at FROM snapshots WHERE path=? ORDER BY saved_at DESC, id DESC`, path)
}

func (idx *Index) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := idx.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []Entry
	for rows.Next() {
		var e Entry
		var savedAt string
		if err := rows.Scan(&e.ID, &e.Path, &e.Width, &e.Height, &e.Passable, &e.Objects, &e.Digest, &savedAt); err != nil {
			return nil, err
		}
		if e.SavedAt, err = time.Parse(timeLayout, savedAt); err != nil {
			return nil, fmt.Errorf("snapshot %d: bad saved_at %q: %w", e.ID, savedAt, err)
		}
		ret = append(ret, e)
	}
	return ret, rows.Err()
}
