package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// ErrNotFound is returned by Load when no catalog has ever been saved.
var ErrNotFound = errors.New("catalog not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS catalog_meta (
		id INTEGER PRIMARY KEY,
		saved BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		position INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		source_url TEXT NOT NULL,
		provider TEXT NOT NULL,
		playlist_id TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS episodes (
		entry_position INTEGER NOT NULL,
		ordinal INTEGER NOT NULL,
		number INTEGER NOT NULL
	)`,
}

// Repository persists the catalog in a DuckDB database file.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog database at path.
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init catalog schema: %w", err)
		}
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Load returns the persisted catalog in saved order. It returns ErrNotFound
// if Save has never been called on this database; the caller decides whether
// that means "error" or "empty catalog".
func (r *Repository) Load() (Catalog, error) {
	var saved bool
	err := r.db.QueryRow(`SELECT saved FROM catalog_meta WHERE id = 0`).Scan(&saved)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !saved) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	rows, err := r.db.Query(`SELECT position, title, source_url, provider, playlist_id FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var catalog Catalog
	positions := []int{}
	for rows.Next() {
		var pos int
		var e Entry
		if err := rows.Scan(&pos, &e.Title, &e.SourceURL, &e.Provider, &e.PlaylistID); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		catalog = append(catalog, e)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	for i, pos := range positions {
		episodes, err := r.loadEpisodes(pos)
		if err != nil {
			return nil, err
		}
		catalog[i].Episodes = episodes
	}
	return catalog, nil
}

func (r *Repository) loadEpisodes(position int) ([]int, error) {
	rows, err := r.db.Query(`SELECT number FROM episodes WHERE entry_position = ? ORDER BY ordinal`, position)
	if err != nil {
		return nil, fmt.Errorf("load episodes: %w", err)
	}
	defer rows.Close()

	var episodes []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, n)
	}
	return episodes, rows.Err()
}

// Save replaces the persisted catalog with c in a single transaction, so a
// reader never observes a partially written catalog.
func (r *Repository) Save(c Catalog) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM episodes`); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	for pos, e := range c {
		if _, err := tx.Exec(
			`INSERT INTO entries (position, title, source_url, provider, playlist_id) VALUES (?, ?, ?, ?, ?)`,
			pos, e.Title, e.SourceURL, e.Provider, e.PlaylistID,
		); err != nil {
			return fmt.Errorf("save entry %q: %w", e.Title, err)
		}
		for ord, n := range e.Episodes {
			if _, err := tx.Exec(
				`INSERT INTO episodes (entry_position, ordinal, number) VALUES (?, ?, ?)`,
				pos, ord, n,
			); err != nil {
				return fmt.Errorf("save episodes of %q: %w", e.Title, err)
			}
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO catalog_meta (id, saved) VALUES (0, true)`); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return tx.Commit()
}
