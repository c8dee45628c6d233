// Package workspace coordinates the active thread, the recent cache, the
// Reddit source and the translation orchestrator. Every mutation of the
// active thread goes to the store first and is then mirrored into the cached
// copy of the same thread.
package workspace

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/codec"
	"github.com/bryan-buckman/redditviewer/internal/model"
	"github.com/bryan-buckman/redditviewer/internal/recent"
	"github.com/bryan-buckman/redditviewer/internal/thread"
	"github.com/bryan-buckman/redditviewer/internal/translate"
)

// Source fetches a thread by URL. reddit.Client satisfies it.
type Source interface {
	FetchURL(ctx context.Context, rawURL string) (model.Thread, error)
}

// Export formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Workspace is the single-user session.
type Workspace struct {
	store        *thread.Store
	cache        *recent.Cache
	source       Source
	translations *translate.Orchestrator
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a workspace.
func New(store *thread.Store, cache *recent.Cache, source Source, translations *translate.Orchestrator, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		store:        store,
		cache:        cache,
		source:       source,
		translations: translations,
		logger:       logger,
		now:          time.Now,
	}
}

// SetClock replaces the time source used for exports.
func (w *Workspace) SetClock(now func() time.Time) {
	w.now = now
}

// Translations returns the translation orchestrator.
func (w *Workspace) Translations() *translate.Orchestrator { return w.translations }

// Recent returns the recent-threads cache.
func (w *Workspace) Recent() *recent.Cache { return w.cache }

// State returns the active thread and load status.
func (w *Workspace) State() thread.State {
	return w.store.State()
}

// Fetch loads a thread from Reddit, makes it active and caches it. On
// failure the error text is recorded on the store and returned.
func (w *Workspace) Fetch(ctx context.Context, rawURL string) (thread.State, error) {
	w.store.SetLoading(true)

	t, err := w.source.FetchURL(ctx, rawURL)
	if err != nil {
		w.store.SetError(err.Error())
		w.logger.Warn("fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		return w.store.State(), err
	}

	w.store.Load(t, model.OriginFetched, rawURL)
	w.cache.Upsert(t, model.OriginFetched, rawURL)
	return w.store.State(), nil
}

// Import loads a thread from an export file, makes it active and caches it.
func (w *Workspace) Import(r io.Reader) (thread.State, error) {
	w.store.SetLoading(true)

	doc, err := codec.Parse(r)
	if err != nil {
		w.store.SetError(err.Error())
		w.logger.Warn("import failed", slog.Any("error", err))
		return w.store.State(), err
	}

	t := doc.Thread()
	w.store.Load(t, model.OriginImported, doc.OriginalURL)
	w.cache.Upsert(t, model.OriginImported, doc.OriginalURL)
	w.logger.Info("thread imported",
		slog.String("thread_id", t.Post.ID),
		slog.Int("comments", len(t.Comments)),
	)
	return w.store.State(), nil
}

// LoadRecent makes a cached thread active. The cache order is unchanged.
func (w *Workspace) LoadRecent(threadID string) (thread.State, error) {
	e, ok := w.cache.Get(threadID)
	if !ok {
		return thread.State{}, apperr.NotFound("Recent thread not found")
	}
	w.store.Load(e.Thread, e.Source, e.OriginalURL)
	return w.store.State(), nil
}

// Clear drops the active thread. The cache is untouched.
func (w *Workspace) Clear() {
	w.store.Clear()
}

// EditPost sets the post title or body.
func (w *Workspace) EditPost(field model.Field, value string) (bool, error) {
	threadID, ok := w.store.ThreadID()
	if !ok {
		return false, apperr.NoActiveThread()
	}
	stored, changed := w.store.EditPostField(field, value)
	if changed {
		w.cache.PatchPostFields(threadID, field, stored)
	}
	return changed, nil
}

// EditComment sets a comment body.
func (w *Workspace) EditComment(commentID, body string) (bool, error) {
	threadID, ok := w.store.ThreadID()
	if !ok {
		return false, apperr.NoActiveThread()
	}
	stored, changed := w.store.EditCommentBody(commentID, body)
	if changed {
		w.cache.PatchCommentBody(threadID, commentID, stored)
	}
	return changed, nil
}

// DeleteComment removes a comment and its replies from the active thread
// and its cached copy.
func (w *Workspace) DeleteComment(commentID string) (bool, error) {
	threadID, ok := w.store.ThreadID()
	if !ok {
		return false, apperr.NoActiveThread()
	}
	if !w.store.DeleteCommentSubtree(commentID) {
		return false, nil
	}
	w.cache.PatchSubtreeDeletion(threadID, commentID)
	return true, nil
}

// Tree returns the comments of the active thread as a nested tree.
func (w *Workspace) Tree() ([]*thread.Node, error) {
	t, ok := w.store.Snapshot()
	if !ok {
		return nil, apperr.NoActiveThread()
	}
	return thread.BuildTree(t.Comments), nil
}

// Editable is the plain-text form of every editable field.
type Editable struct {
	Title    string            `json:"title"`
	Selftext string            `json:"selftext"`
	Comments []EditableComment `json:"comments"`
}

// EditableComment is the plain-text body of one comment.
type EditableComment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// Editable returns the active thread's text prepared for editing.
func (w *Workspace) Editable() (Editable, error) {
	t, ok := w.store.Snapshot()
	if !ok {
		return Editable{}, apperr.NoActiveThread()
	}
	out := Editable{
		Title:    translate.CleanText(t.Post.Title.Value()),
		Selftext: translate.PlainForEdit(t.Post.Selftext.Value()),
		Comments: make([]EditableComment, len(t.Comments)),
	}
	for i, c := range t.Comments {
		out.Comments[i] = EditableComment{ID: c.ID, Body: translate.PlainForEdit(c.Body.Value())}
	}
	return out, nil
}

// Download is a rendered export.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export renders the active thread as JSON or text.
func (w *Workspace) Export(format string) (Download, error) {
	st := w.store.State()
	if st.Thread == nil {
		return Download{}, apperr.NoActiveThread()
	}
	now := w.now()
	switch format {
	case "", FormatJSON:
		data, err := codec.Encode(*st.Thread, st.SourceURL, now)
		if err != nil {
			return Download{}, apperr.Internal(err)
		}
		return Download{
			Filename:    codec.Filename(st.Thread.Post, "json", now),
			ContentType: "application/json",
			Data:        data,
		}, nil
	case FormatText:
		return Download{
			Filename:    codec.Filename(st.Thread.Post, "txt", now),
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(codec.EncodeAsText(*st.Thread, st.SourceURL)),
		}, nil
	}
	return Download{}, apperr.BadRequest("format must be json or text")
}
