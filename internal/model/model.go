// Package model defines shared data structures.
package model

import (
	"slices"
	"time"
)

// Origin tells where the active thread came from.
type Origin string

const (
	OriginFetched  Origin = "fetched"
	OriginImported Origin = "imported"
)

// Valid reports whether o is one of the known origins.
func (o Origin) Valid() bool {
	return o == OriginFetched || o == OriginImported
}

// Post is the root submission of a thread.
type Post struct {
	ID                string
	Title             Text
	Selftext          Text
	SelftextHTML      *string // nil once the body has been edited
	Author            string
	Subreddit         string
	SubredditPrefixed string
	Score             int
	UpvoteRatio       float64
	NumComments       int
	CreatedUTC        float64
	Permalink         string
	URL               string
	IsSelf            bool
	Thumbnail         string

	Edited      bool
	EditedAt    int64 // epoch milliseconds
	Translated  bool
	Translating bool
}

// Comment is one node of the flattened comment tree.
// Depth and position in Thread.Comments define the structure; ParentID is informational.
type Comment struct {
	ID            string
	Author        string
	Body          Text
	BodyHTML      string
	Score         int
	CreatedUTC    float64
	Depth         int
	ParentID      string
	Permalink     string
	IsSubmitter   bool
	Stickied      bool
	Distinguished *string

	Edited      bool
	EditedAt    int64 // epoch milliseconds
	Translated  bool
	Translating bool
}

// Thread is a post plus its comments in pre-order.
type Thread struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// Clone returns a copy of t that shares no mutable state with it.
func (t Thread) Clone() Thread {
	return Thread{
		Post:     t.Post,
		Comments: slices.Clone(t.Comments),
	}
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (t Thread) CommentIndex(id string) int {
	return slices.IndexFunc(t.Comments, func(c Comment) bool { return c.ID == id })
}

// MarkEdited flags the post as locally edited.
func (p *Post) MarkEdited(now time.Time) {
	p.Edited = true
	p.EditedAt = now.UnixMilli()
}

// MarkEdited flags the comment as locally edited.
func (c *Comment) MarkEdited(now time.Time) {
	c.Edited = true
	c.EditedAt = now.UnixMilli()
}

// HasText reports whether the post has a non-blank title or body.
func (p Post) HasText() bool {
	return !p.Title.IsBlank() || !p.Selftext.IsBlank()
}

// RecentEntry is a cached snapshot of a previously loaded thread.
type RecentEntry struct {
	ThreadID    string  `json:"id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	Author      string  `json:"author"`
	Timestamp   float64 `json:"timestamp"`
	LoadedAt    int64   `json:"loadedAt"`
	Source      Origin  `json:"source"`
	OriginalURL string  `json:"originalUrl,omitempty"`
	Thread      Thread  `json:"data"`
}

// NewRecentEntry builds a cache entry for thread loaded at now.
func NewRecentEntry(thread Thread, source Origin, originalURL string, now time.Time) RecentEntry {
	return RecentEntry{
		ThreadID:    thread.Post.ID,
		Title:       thread.Post.Title.Value(),
		Subreddit:   thread.Post.Subreddit,
		Author:      thread.Post.Author,
		Timestamp:   thread.Post.CreatedUTC,
		LoadedAt:    now.UnixMilli(),
		Source:      source,
		OriginalURL: originalURL,
		Thread:      thread.Clone(),
	}
}

// Stats summarizes translation progress over a thread.
type Stats struct {
	Total       int `json:"total"`
	Translated  int `json:"translated"`
	Translating int `json:"translating"`
}

// Settings key constants.
const (
	SettingRecentOpen = "recent_open"
)
