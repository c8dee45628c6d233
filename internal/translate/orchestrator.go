// Package translate calls the machine translation service and applies the
// results to the active thread.
package translate

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/model"
	"github.com/bryan-buckman/redditviewer/internal/thread"
)

// DefaultConcurrency bounds concurrent comment translations in TranslateAll.
const DefaultConcurrency = 4

// Recorder receives translation changes for the cached copy of a thread.
// recent.Cache satisfies it.
type Recorder interface {
	PatchTranslations(threadID string, items []model.ItemTranslation) bool
	PatchReversion(threadID string, targets []model.Target) bool
}

// Orchestrator translates and reverts items of the active thread and
// mirrors the results into the recent cache.
type Orchestrator struct {
	store       *thread.Store
	cache       Recorder
	translator  Translator
	concurrency int
	logger      *slog.Logger
}

// NewOrchestrator creates an orchestrator. A nil cache disables mirroring.
func NewOrchestrator(store *thread.Store, cache Recorder, translator Translator, concurrency int, logger *slog.Logger) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		store:       store,
		cache:       cache,
		translator:  translator,
		concurrency: concurrency,
		logger:      logger,
	}
}

// TranslatePost translates the post title and body in parallel. Either both
// results apply or neither does.
func (o *Orchestrator) TranslatePost(ctx context.Context, opts Options) error {
	snap, ok := o.store.Snapshot()
	if !ok {
		return apperr.NoActiveThread()
	}
	if err := o.translatePost(context.WithoutCancel(ctx), snap, opts); err != nil {
		return err
	}
	o.record(snap.Post.ID, model.PostTarget())
	return nil
}

// TranslateComment translates one comment body. Missing comments and blank
// bodies are no-ops.
func (o *Orchestrator) TranslateComment(ctx context.Context, commentID string, opts Options) error {
	snap, ok := o.store.Snapshot()
	if !ok {
		return apperr.NoActiveThread()
	}
	i := snap.CommentIndex(commentID)
	if i < 0 || snap.Comments[i].Body.IsBlank() {
		return nil
	}
	if err := o.translateComment(context.WithoutCancel(ctx), snap.Post.ID, snap.Comments[i], opts); err != nil {
		return err
	}
	o.record(snap.Post.ID, model.CommentTarget(commentID))
	return nil
}

// TranslateAll translates the post, then every untranslated comment with a
// non-blank body through a bounded worker pool. Item failures are logged and
// leave the item untranslated. Once every call has settled the translated
// items, with the shadows held by the store, are written to the cache in one
// batch.
func (o *Orchestrator) TranslateAll(ctx context.Context, opts Options) (model.Stats, error) {
	snap, ok := o.store.Snapshot()
	if !ok {
		return model.Stats{}, apperr.NoActiveThread()
	}
	ctx = context.WithoutCancel(ctx)
	threadID := snap.Post.ID

	var targets []model.Target
	if snap.Post.HasText() {
		targets = append(targets, model.PostTarget())
		if err := o.translatePost(ctx, snap, opts); err != nil {
			o.logger.Warn("post translation failed", slog.String("thread_id", threadID), slog.Any("error", err))
		}
	}

	var pending []model.Comment
	for _, c := range snap.Comments {
		if c.Body.IsBlank() || c.Translated {
			continue
		}
		pending = append(pending, c)
		targets = append(targets, model.CommentTarget(c.ID))
		o.store.SetTranslating(threadID, model.CommentTarget(c.ID), true)
	}
	failed := o.translateComments(ctx, threadID, pending, opts)

	var items []model.ItemTranslation
	for _, target := range targets {
		if item, ok := o.store.Recorded(threadID, target); ok {
			items = append(items, item)
		}
	}
	if o.cache != nil && len(items) > 0 {
		o.cache.PatchTranslations(threadID, items)
	}

	stats := o.store.Stats()
	o.logger.Info("bulk translation finished",
		slog.String("thread_id", threadID),
		slog.Int("comments", len(pending)),
		slog.Int("failed", failed),
		slog.Int("translated", stats.Translated),
		slog.Int("total", stats.Total),
	)
	return stats, nil
}

// RevertPost restores the post's original title and body.
func (o *Orchestrator) RevertPost() (bool, error) {
	return o.revert(model.PostTarget())
}

// RevertComment restores a comment's original body.
func (o *Orchestrator) RevertComment(commentID string) (bool, error) {
	return o.revert(model.CommentTarget(commentID))
}

// RevertAll reverts every translated item and returns the final stats.
func (o *Orchestrator) RevertAll() (model.Stats, error) {
	snap, ok := o.store.Snapshot()
	if !ok {
		return model.Stats{}, apperr.NoActiveThread()
	}
	var reverted []model.Target
	if snap.Post.Translated && o.store.RevertTranslation(model.PostTarget()) {
		reverted = append(reverted, model.PostTarget())
	}
	for _, c := range snap.Comments {
		target := model.CommentTarget(c.ID)
		if c.Translated && o.store.RevertTranslation(target) {
			reverted = append(reverted, target)
		}
	}
	if o.cache != nil && len(reverted) > 0 {
		o.cache.PatchReversion(snap.Post.ID, reverted)
	}
	return o.store.Stats(), nil
}

// Stats returns translation progress over the active thread.
func (o *Orchestrator) Stats() model.Stats {
	return o.store.Stats()
}

func (o *Orchestrator) revert(target model.Target) (bool, error) {
	threadID, ok := o.store.ThreadID()
	if !ok {
		return false, apperr.NoActiveThread()
	}
	if !o.store.RevertTranslation(target) {
		return false, nil
	}
	if o.cache != nil {
		o.cache.PatchReversion(threadID, []model.Target{target})
	}
	return true, nil
}

func (o *Orchestrator) translatePost(ctx context.Context, snap model.Thread, opts Options) error {
	post := snap.Post
	if !post.HasText() {
		return nil
	}
	target := model.PostTarget()
	o.store.SetTranslating(post.ID, target, true)

	var title, body string
	g, gctx := errgroup.WithContext(ctx)
	if !post.Title.IsBlank() {
		g.Go(func() error {
			var err error
			title, err = o.translator.Translate(gctx, post.Title.Value(), opts)
			return err
		})
	}
	if !post.Selftext.IsBlank() {
		g.Go(func() error {
			var err error
			body, err = o.translator.Translate(gctx, post.Selftext.Value(), opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		o.store.SetTranslating(post.ID, target, false)
		return serviceError(err)
	}

	values := make(map[model.Field]string, 2)
	if !post.Title.IsBlank() {
		values[model.FieldTitle] = title
	}
	if !post.Selftext.IsBlank() {
		values[model.FieldSelftext] = body
	}
	o.store.ApplyTranslation(post.ID, target, values)
	return nil
}

func (o *Orchestrator) translateComment(ctx context.Context, threadID string, c model.Comment, opts Options) error {
	target := model.CommentTarget(c.ID)
	o.store.SetTranslating(threadID, target, true)

	body, err := o.translator.Translate(ctx, c.Body.Value(), opts)
	if err != nil {
		o.store.SetTranslating(threadID, target, false)
		return serviceError(err)
	}
	o.store.ApplyTranslation(threadID, target, map[model.Field]string{model.FieldBody: body})
	return nil
}

// translateComments runs translateComment over comments with a worker pool
// and returns the number of failures.
func (o *Orchestrator) translateComments(ctx context.Context, threadID string, comments []model.Comment, opts Options) int {
	if len(comments) == 0 {
		return 0
	}
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	jobs := make(chan model.Comment, len(comments))
	for _, c := range comments {
		jobs <- c
	}
	close(jobs)

	workers := min(o.concurrency, len(comments))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				if err := o.translateComment(ctx, threadID, c, opts); err != nil {
					o.logger.Warn("comment translation failed",
						slog.String("thread_id", threadID),
						slog.String("comment_id", c.ID),
						slog.Any("error", err),
					)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return failed
}

// record mirrors one translated item into the cache.
func (o *Orchestrator) record(threadID string, target model.Target) {
	if o.cache == nil {
		return
	}
	if item, ok := o.store.Recorded(threadID, target); ok {
		o.cache.PatchTranslations(threadID, []model.ItemTranslation{item})
	}
}

func serviceError(err error) error {
	if apperr.As(err) != nil {
		return err
	}
	return apperr.TranslationService(err)
}
