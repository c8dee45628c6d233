// Package recent keeps the most recently loaded threads so that work on a
// thread survives switching away from it and restarting the process.
package recent

import (
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/model"
	"github.com/bryan-buckman/redditviewer/internal/thread"
)

// Capacity is the maximum number of cached threads.
const Capacity = 15

// Persister saves the cache between runs. database.Store satisfies it.
type Persister interface {
	LoadRecent() ([]model.RecentEntry, error)
	SaveRecent(entries []model.RecentEntry) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Cache is a most-recently-used list of threads, newest first.
// Patch methods mirror thread.Store mutations onto the cached copy of a
// thread; they do nothing when the thread is not cached.
type Cache struct {
	mu      sync.Mutex
	entries []model.RecentEntry
	open    bool
	store   Persister
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a cache and loads any persisted state. A nil store keeps the
// cache in memory only.
func New(store Persister, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{open: true, store: store, logger: logger, now: time.Now}
	if store == nil {
		return c, nil
	}

	entries, err := store.LoadRecent()
	if err != nil {
		return nil, err
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	c.entries = entries

	if v, err := store.GetSetting(model.SettingRecentOpen); err == nil {
		if open, err := strconv.ParseBool(v); err == nil {
			c.open = open
		}
	}
	logger.Info("recent threads restored", slog.Int("count", len(entries)))
	return c, nil
}

// SetClock replaces the time source used for load and edit timestamps.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Upsert puts a copy of thread at the front, replacing any entry with the
// same id, and evicts entries beyond Capacity.
func (c *Cache) Upsert(t model.Thread, origin model.Origin, sourceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := model.NewRecentEntry(t, origin, sourceURL, c.now())
	c.entries = slices.DeleteFunc(c.entries, func(e model.RecentEntry) bool {
		return e.ThreadID == entry.ThreadID
	})
	c.entries = slices.Insert(c.entries, 0, entry)
	if len(c.entries) > Capacity {
		c.entries = c.entries[:Capacity]
	}
	c.persist()
}

// Remove drops one entry.
func (c *Cache) Remove(threadID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = slices.DeleteFunc(c.entries, func(e model.RecentEntry) bool {
		return e.ThreadID == threadID
	})
	if len(c.entries) == n {
		return false
	}
	c.persist()
	return true
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.persist()
}

// Get returns a copy of the entry for threadID.
func (c *Cache) Get(threadID string) (model.RecentEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.find(threadID)
	if e == nil {
		return model.RecentEntry{}, false
	}
	cp := *e
	cp.Thread = e.Thread.Clone()
	return cp, true
}

// List returns copies of all entries, newest first.
func (c *Cache) List() []model.RecentEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.RecentEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e
		out[i].Thread = e.Thread.Clone()
	}
	return out
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Open reports the persisted open/closed flag of the recent list.
func (c *Cache) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetOpen sets the open/closed flag.
func (c *Cache) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setOpen(open)
}

// Toggle flips the open/closed flag and returns the new value.
func (c *Cache) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setOpen(!c.open)
	return c.open
}

func (c *Cache) setOpen(open bool) {
	c.open = open
	if c.store == nil {
		return
	}
	if err := c.store.SetSetting(model.SettingRecentOpen, strconv.FormatBool(open)); err != nil {
		c.logger.Error("persist recent open flag", slog.Any("error", err))
	}
}

// PatchPostFields mirrors a post edit. A title edit also updates the
// entry's listing title.
func (c *Cache) PatchPostFields(threadID string, field model.Field, value string) bool {
	return c.patch(threadID, func(e *model.RecentEntry) bool {
		if !thread.EditPost(&e.Thread, field, value, c.now()) {
			return false
		}
		if field == model.FieldTitle {
			e.Title = value
		}
		return true
	})
}

// PatchCommentBody mirrors a comment edit.
func (c *Cache) PatchCommentBody(threadID, commentID, body string) bool {
	return c.patch(threadID, func(e *model.RecentEntry) bool {
		return thread.EditComment(&e.Thread, commentID, body, c.now())
	})
}

// PatchSubtreeDeletion mirrors a subtree deletion.
func (c *Cache) PatchSubtreeDeletion(threadID, commentID string) bool {
	return c.patch(threadID, func(e *model.RecentEntry) bool {
		return thread.DeleteSubtree(&e.Thread, commentID)
	})
}

// PatchTranslations applies a batch of recorded translations in one write.
func (c *Cache) PatchTranslations(threadID string, items []model.ItemTranslation) bool {
	return c.patch(threadID, func(e *model.RecentEntry) bool {
		changed := false
		for _, item := range items {
			if thread.TranslateFrom(&e.Thread, item) {
				changed = true
			}
		}
		return changed
	})
}

// PatchReversion mirrors reverting the given targets.
func (c *Cache) PatchReversion(threadID string, targets []model.Target) bool {
	return c.patch(threadID, func(e *model.RecentEntry) bool {
		changed := false
		for _, target := range targets {
			if thread.Revert(&e.Thread, target) {
				changed = true
			}
		}
		return changed
	})
}

func (c *Cache) patch(threadID string, apply func(e *model.RecentEntry) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.find(threadID)
	if e == nil || !apply(e) {
		return false
	}
	c.persist()
	return true
}

func (c *Cache) find(threadID string) *model.RecentEntry {
	for i := range c.entries {
		if c.entries[i].ThreadID == threadID {
			return &c.entries[i]
		}
	}
	return nil
}

// persist writes the whole list. Failures are logged; the in-memory list
// stays authoritative for the session.
func (c *Cache) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveRecent(c.entries); err != nil {
		c.logger.Error("persist recent threads",
			slog.Int("count", len(c.entries)),
			slog.Any("error", err),
		)
	}
}
