package database

import (
	"database/sql"
	"fmt"

	"github.com/bryan-buckman/redditviewer/internal/model"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Ensure DB implements Store interface.
var _ Store = (*DB)(nil)

// New opens or creates an SQLite database at the given path.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrency.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	// One writer at a time; SaveRecent rewrites the table in a transaction.
	conn.SetMaxOpenConns(1)
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// DatabaseType returns the database backend name.
func (db *DB) DatabaseType() string {
	return "SQLite"
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent_threads (
		thread_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		subreddit TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		created_utc REAL NOT NULL DEFAULT 0,
		loaded_at INTEGER NOT NULL,
		source TEXT NOT NULL,
		original_url TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recent_threads_position ON recent_threads(position);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	INSERT OR IGNORE INTO settings (key, value) VALUES ('recent_open', 'true');
	`
	_, err := db.conn.Exec(schema)
	return err
}

// --- Recent Thread Methods ---

// LoadRecent returns the cached threads, newest first.
func (db *DB) LoadRecent() ([]model.RecentEntry, error) {
	rows, err := db.conn.Query("SELECT " + recentColumns + " FROM recent_threads ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecent(rows)
}

// SaveRecent replaces the stored list with entries.
func (db *DB) SaveRecent(entries []model.RecentEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM recent_threads"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO recent_threads (" + recentColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		r, err := toRow(i, e)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(r.ThreadID, r.Position, r.Title, r.Subreddit, r.Author,
			r.CreatedUTC, r.LoadedAt, r.Source, r.OriginalURL, string(r.Payload)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// --- Settings Methods ---

// GetSetting retrieves a setting value.
func (db *DB) GetSetting(key string) (string, error) {
	var val string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	return val, err
}

// SetSetting saves a setting.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec("INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = ?", key, value, value)
	return err
}
