package thread_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-buckman/redditviewer/internal/model"
	"github.com/bryan-buckman/redditviewer/internal/thread"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleThread() model.Thread {
	html := "<p>B</p>"
	return model.Thread{
		Post: model.Post{
			ID:           "p1",
			Title:        model.NewText("Hello"),
			Selftext:     model.NewText("B"),
			SelftextHTML: &html,
			Author:       "a",
			Subreddit:    "s",
		},
		Comments: []model.Comment{
			{ID: "c1", Body: model.NewText("one"), BodyHTML: "<p>one</p>", Depth: 0},
			{ID: "c2", Body: model.NewText("two"), Depth: 1},
			{ID: "c3", Body: model.NewText("three"), Depth: 2},
			{ID: "c4", Body: model.NewText("four"), Depth: 1},
			{ID: "c5", Body: model.NewText("five"), Depth: 0},
		},
	}
}

func newStore(t *testing.T) *thread.Store {
	t.Helper()
	s := thread.NewStore()
	s.SetClock(func() time.Time { return fixedNow })
	s.Load(sampleThread(), model.OriginFetched, "https://www.reddit.com/r/s/comments/p1/")
	return s
}

func snapshot(t *testing.T, s *thread.Store) model.Thread {
	t.Helper()
	th, ok := s.Snapshot()
	require.True(t, ok)
	return th
}

func TestStore_LoadCopiesAndClearsError(t *testing.T) {
	s := thread.NewStore()
	s.SetLoading(true)
	s.SetError("boom")
	assert.False(t, s.State().Loading)

	src := sampleThread()
	s.Load(src, model.OriginImported, "")
	src.Comments[0].Body.Set("mutated")

	st := s.State()
	require.NotNil(t, st.Thread)
	assert.Equal(t, "one", st.Thread.Comments[0].Body.Value())
	assert.Equal(t, model.OriginImported, st.Origin)
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
}

func TestStore_SetLoadingClearsError(t *testing.T) {
	s := thread.NewStore()
	s.SetError("old")
	s.SetLoading(true)

	st := s.State()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestStore_EditPostField(t *testing.T) {
	s := newStore(t)

	value, ok := s.EditPostField(model.FieldSelftext, "  New body \n")
	require.True(t, ok)
	assert.Equal(t, "New body", value)

	th := snapshot(t, s)
	assert.Equal(t, "New body", th.Post.Selftext.Value())
	assert.Nil(t, th.Post.SelftextHTML)
	assert.True(t, th.Post.Edited)
	assert.Equal(t, fixedNow.UnixMilli(), th.Post.EditedAt)
}

func TestStore_EditPostField_NoOps(t *testing.T) {
	s := newStore(t)

	_, ok := s.EditPostField(model.FieldTitle, "  Hello  ")
	assert.False(t, ok, "unchanged after trim")
	assert.False(t, snapshot(t, s).Post.Edited)

	_, ok = s.EditPostField(model.Field("score"), "3")
	assert.False(t, ok)

	empty := thread.NewStore()
	_, ok = empty.EditPostField(model.FieldTitle, "x")
	assert.False(t, ok)
}

func TestStore_EditCommentBody(t *testing.T) {
	s := newStore(t)

	_, ok := s.EditCommentBody("missing", "x")
	assert.False(t, ok)
	_, ok = s.EditCommentBody("c1", "one ")
	assert.False(t, ok)
	_, ok = s.EditCommentBody("c1", "   ")
	assert.False(t, ok, "blank body is refused")
	_, ok = s.EditCommentBody("c1", "")
	assert.False(t, ok)
	assert.Equal(t, "one", snapshot(t, s).Comments[0].Body.Value())

	value, ok := s.EditCommentBody("c1", "uno")
	require.True(t, ok)
	assert.Equal(t, "uno", value)

	c := snapshot(t, s).Comments[0]
	assert.Equal(t, "uno", c.Body.Value())
	assert.Empty(t, c.BodyHTML)
	assert.True(t, c.Edited)
}

func TestStore_DeleteCommentSubtree(t *testing.T) {
	s := newStore(t)

	assert.False(t, s.DeleteCommentSubtree("nope"))
	assert.Len(t, snapshot(t, s).Comments, 5)

	assert.True(t, s.DeleteCommentSubtree("c2"))
	assert.Equal(t, []string{"c1", "c4", "c5"}, ids(snapshot(t, s).Comments))

	assert.True(t, s.DeleteCommentSubtree("c1"))
	got := snapshot(t, s).Comments
	assert.Equal(t, []string{"c5"}, ids(got))
	assert.Equal(t, 0, got[0].Depth)
}

func TestStore_TranslateThenRevertRestoresOriginal(t *testing.T) {
	s := newStore(t)

	require.True(t, s.SetTranslating("p1", model.CommentTarget("c2"), true))
	require.True(t, s.ApplyTranslation("p1", model.CommentTarget("c2"), map[model.Field]string{model.FieldBody: "hai"}))

	c := snapshot(t, s).Comments[1]
	assert.Equal(t, "hai", c.Body.Value())
	assert.True(t, c.Translated)
	assert.False(t, c.Translating)

	require.True(t, s.RevertTranslation(model.CommentTarget("c2")))
	c = snapshot(t, s).Comments[1]
	assert.Equal(t, "two", c.Body.Value())
	assert.False(t, c.Translated)
	assert.False(t, c.Body.IsTranslated())

	assert.False(t, s.RevertTranslation(model.CommentTarget("c2")), "nothing left to revert")
}

func TestStore_DoubleTranslateKeepsFirstOriginal(t *testing.T) {
	s := newStore(t)
	post := model.PostTarget()

	s.ApplyTranslation("p1", post, map[model.Field]string{model.FieldTitle: "Xin chào", model.FieldSelftext: "Bê"})
	s.ApplyTranslation("p1", post, map[model.Field]string{model.FieldTitle: "Bonjour"})

	p := snapshot(t, s).Post
	original, ok := p.Title.Original()
	require.True(t, ok)
	assert.Equal(t, "Hello", original)
	assert.Equal(t, "Bonjour", p.Title.Value())

	require.True(t, s.RevertTranslation(post))
	p = snapshot(t, s).Post
	assert.Equal(t, "Hello", p.Title.Value())
	assert.Equal(t, "B", p.Selftext.Value())
	assert.False(t, p.Translated)
}

func TestStore_MissingTargetsAreNoOps(t *testing.T) {
	s := newStore(t)
	missing := model.CommentTarget("zzz")

	assert.False(t, s.SetTranslating("p1", missing, true))
	assert.False(t, s.ApplyTranslation("p1", missing, map[model.Field]string{model.FieldBody: "x"}))
	assert.False(t, s.RevertTranslation(missing))
	assert.False(t, s.RevertTranslation(model.PostTarget()))

	empty := thread.NewStore()
	assert.False(t, empty.ApplyTranslation("p1", model.PostTarget(), nil))
	assert.False(t, empty.DeleteCommentSubtree("c1"))
	assert.Equal(t, model.Stats{}, empty.Stats())
}

func TestStore_Stats(t *testing.T) {
	s := thread.NewStore()
	s.Load(model.Thread{
		Post: model.Post{ID: "p", Title: model.NewText("T")},
		Comments: []model.Comment{
			{ID: "a", Body: model.NewText("x")},
			{ID: "b", Body: model.NewText("  ")},
			{ID: "c", Body: model.NewText("y")},
		},
	}, model.OriginImported, "")

	assert.Equal(t, model.Stats{Total: 3}, s.Stats())

	s.SetTranslating("p", model.CommentTarget("a"), true)
	s.ApplyTranslation("p", model.CommentTarget("c"), map[model.Field]string{model.FieldBody: "z"})
	assert.Equal(t, model.Stats{Total: 3, Translated: 1, Translating: 1}, s.Stats())
}

func TestStore_ClearAndThreadID(t *testing.T) {
	s := newStore(t)
	id, ok := s.ThreadID()
	assert.True(t, ok)
	assert.Equal(t, "p1", id)

	s.Clear()
	_, ok = s.ThreadID()
	assert.False(t, ok)
	assert.Nil(t, s.State().Thread)
}

func TestStore_StaleThreadIDIsIgnored(t *testing.T) {
	s := newStore(t)

	assert.False(t, s.SetTranslating("other", model.PostTarget(), true))
	assert.False(t, s.ApplyTranslation("other", model.PostTarget(), map[model.Field]string{model.FieldTitle: "x"}))
	assert.Equal(t, "Hello", snapshot(t, s).Post.Title.Value())
}

func TestStore_Recorded(t *testing.T) {
	s := newStore(t)

	_, ok := s.Recorded("p1", model.CommentTarget("c1"))
	assert.False(t, ok, "not translated yet")

	s.ApplyTranslation("p1", model.CommentTarget("c1"), map[model.Field]string{model.FieldBody: "mot"})
	item, ok := s.Recorded("p1", model.CommentTarget("c1"))
	require.True(t, ok)
	assert.Equal(t, []model.FieldTranslation{{Field: model.FieldBody, Value: "mot", Original: "one"}}, item.Fields)

	s.ApplyTranslation("p1", model.PostTarget(), map[model.Field]string{model.FieldTitle: "Xin chao"})
	item, ok = s.Recorded("p1", model.PostTarget())
	require.True(t, ok)
	assert.Equal(t, []model.FieldTranslation{{Field: model.FieldTitle, Value: "Xin chao", Original: "Hello"}}, item.Fields)

	_, ok = s.Recorded("other", model.PostTarget())
	assert.False(t, ok)
}
