// Package database provides storage backends for the recent-threads cache
// and UI settings.
package database

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

// Store defines the interface for persistence operations.
// SQLite, PostgreSQL and Redis implementations satisfy this interface.
type Store interface {
	Close() error

	// DatabaseType returns the name of the backend ("SQLite", "PostgreSQL" or "Redis").
	DatabaseType() string

	// Recent thread operations. SaveRecent replaces the whole list.
	LoadRecent() ([]model.RecentEntry, error)
	SaveRecent(entries []model.RecentEntry) error

	// Settings operations
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// recentRow is the column layout shared by the SQL backends.
type recentRow struct {
	ThreadID    string
	Position    int
	Title       string
	Subreddit   string
	Author      string
	CreatedUTC  float64
	LoadedAt    int64
	Source      string
	OriginalURL string
	Payload     []byte
}

func toRow(position int, e model.RecentEntry) (recentRow, error) {
	payload, err := json.Marshal(e.Thread)
	if err != nil {
		return recentRow{}, fmt.Errorf("encode thread %s: %w", e.ThreadID, err)
	}
	return recentRow{
		ThreadID:    e.ThreadID,
		Position:    position,
		Title:       e.Title,
		Subreddit:   e.Subreddit,
		Author:      e.Author,
		CreatedUTC:  e.Timestamp,
		LoadedAt:    e.LoadedAt,
		Source:      string(e.Source),
		OriginalURL: e.OriginalURL,
		Payload:     payload,
	}, nil
}

func (r recentRow) entry() (model.RecentEntry, error) {
	e := model.RecentEntry{
		ThreadID:    r.ThreadID,
		Title:       r.Title,
		Subreddit:   r.Subreddit,
		Author:      r.Author,
		Timestamp:   r.CreatedUTC,
		LoadedAt:    r.LoadedAt,
		Source:      model.Origin(r.Source),
		OriginalURL: r.OriginalURL,
	}
	if err := json.Unmarshal(r.Payload, &e.Thread); err != nil {
		return e, fmt.Errorf("decode thread %s: %w", r.ThreadID, err)
	}
	return e, nil
}

// scanner is satisfied by *sql.Rows.
type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanRecent reads rows selected with recentColumns. Rows whose payload
// cannot be decoded are logged and skipped.
func scanRecent(rows scanner) ([]model.RecentEntry, error) {
	var entries []model.RecentEntry
	for rows.Next() {
		var r recentRow
		if err := rows.Scan(&r.ThreadID, &r.Position, &r.Title, &r.Subreddit, &r.Author,
			&r.CreatedUTC, &r.LoadedAt, &r.Source, &r.OriginalURL, &r.Payload); err != nil {
			return nil, err
		}
		e, err := r.entry()
		if err != nil {
			skipEntry(r.ThreadID, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// decodeRecentList decodes a JSON array of entries, skipping elements that
// do not decode.
func decodeRecentList(raw []byte) ([]model.RecentEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode recent threads: %w", err)
	}
	entries := make([]model.RecentEntry, 0, len(items))
	for i, item := range items {
		var e model.RecentEntry
		if err := json.Unmarshal(item, &e); err != nil {
			skipEntry(fmt.Sprintf("#%d", i), err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func skipEntry(id string, err error) {
	slog.Warn("skipping unreadable recent thread", slog.String("thread_id", id), slog.Any("error", err))
}

const recentColumns = "thread_id, position, title, subreddit, author, created_utc, loaded_at, source, original_url, payload"
