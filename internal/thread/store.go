// Package thread holds the active thread and the operations that edit,
// translate and prune it.
package thread

import (
	"strings"
	"sync"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

// State is a point-in-time view of the store.
type State struct {
	Thread    *model.Thread `json:"thread"`
	Origin    model.Origin  `json:"origin,omitempty"`
	SourceURL string        `json:"url"`
	Loading   bool          `json:"loading"`
	Error     string        `json:"error,omitempty"`
}

// Store holds the active thread. Each method is one logical operation and
// runs under the store lock. Operations that reference a missing thread or
// comment do nothing and report false.
type Store struct {
	mu        sync.Mutex
	thread    *model.Thread
	origin    model.Origin
	sourceURL string
	loading   bool
	err       string
	now       func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// SetClock replaces the time source used for edit timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load replaces the active thread. The store keeps its own copy.
func (s *Store) Load(t model.Thread, origin model.Origin, sourceURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := t.Clone()
	s.thread = &cp
	s.origin = origin
	s.sourceURL = sourceURL
	s.loading = false
	s.err = ""
}

// Clear drops the active thread.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thread = nil
	s.origin = ""
	s.sourceURL = ""
	s.loading = false
	s.err = ""
}

// SetLoading marks a load in progress. Starting a load clears the error.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
	if loading {
		s.err = ""
	}
}

// SetError records a user-visible error and ends loading.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
	s.loading = false
}

// State returns a copy of the store state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Origin:    s.origin,
		SourceURL: s.sourceURL,
		Loading:   s.loading,
		Error:     s.err,
	}
	if s.thread != nil {
		cp := s.thread.Clone()
		st.Thread = &cp
	}
	return st
}

// Snapshot returns a copy of the active thread.
func (s *Store) Snapshot() (model.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return model.Thread{}, false
	}
	return s.thread.Clone(), true
}

// ThreadID returns the id of the active thread's post.
func (s *Store) ThreadID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return "", false
	}
	return s.thread.Post.ID, true
}

// EditPostField sets the title or body of the post to the trimmed value.
// It returns the stored value, or false when there is no thread or the
// value is unchanged.
func (s *Store) EditPostField(field model.Field, value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thread == nil {
		return "", false
	}
	var current string
	switch field {
	case model.FieldTitle:
		current = s.thread.Post.Title.Value()
	case model.FieldSelftext:
		current = s.thread.Post.Selftext.Value()
	default:
		return "", false
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == current {
		return "", false
	}
	return trimmed, EditPost(s.thread, field, trimmed, s.now())
}

// EditCommentBody sets a comment body to the trimmed value, with the same
// no-op rules as EditPostField. A blank body is refused.
func (s *Store) EditCommentBody(id, value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := comment(s.thread, id)
	if c == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == c.Body.Value() {
		return "", false
	}
	return trimmed, EditComment(s.thread, id, trimmed, s.now())
}

// DeleteCommentSubtree removes a comment and all of its replies.
// The removal cannot be undone.
func (s *Store) DeleteCommentSubtree(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeleteSubtree(s.thread, id)
}

// SetTranslating sets the pending flag of the target. threadID must name
// the active thread, so a late result for a replaced thread is dropped.
func (s *Store) SetTranslating(threadID string, target model.Target, flag bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SetTranslating(s.active(threadID), target, flag)
}

// ApplyTranslation shows translated values on the target and settles it,
// with the same threadID rule as SetTranslating.
func (s *Store) ApplyTranslation(threadID string, target model.Target, values map[model.Field]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Translate(s.active(threadID), target, values)
}

// Recorded returns the translated fields of target as currently stored.
func (s *Store) Recorded(threadID string, target model.Target) (model.ItemTranslation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Record(s.active(threadID), target)
}

// RevertTranslation restores the target's original text.
func (s *Store) RevertTranslation(target model.Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Revert(s.thread, target)
}

// Stats returns translation progress over the active thread.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats(s.thread)
}

func (s *Store) active(threadID string) *model.Thread {
	if s.thread == nil || s.thread.Post.ID != threadID {
		return nil
	}
	return s.thread
}
