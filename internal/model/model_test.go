package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

func TestText_TranslateKeepsFirstOriginal(t *testing.T) {
	text := model.NewText("hello")

	text.Translate("xin chào")
	text.Translate("chào")

	original, ok := text.Original()
	require.True(t, ok)
	assert.Equal(t, "hello", original)
	assert.Equal(t, "chào", text.Value())

	assert.True(t, text.Revert())
	assert.Equal(t, "hello", text.Value())
	assert.False(t, text.IsTranslated())
	assert.False(t, text.Revert())
}

func TestText_SetKeepsShadow(t *testing.T) {
	text := model.NewText("a")
	text.Translate("b")
	text.Set("c")

	original, ok := text.Original()
	assert.True(t, ok)
	assert.Equal(t, "a", original)
	assert.Equal(t, "c", text.Value())
}

func TestComment_DecodeRedditEditedTimestamp(t *testing.T) {
	raw := `{"id":"c1","author":"b","body":"hi","edited":1700000000.5,"distinguished":null}`

	var c model.Comment
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.True(t, c.Edited)
	assert.Equal(t, int64(1700000000500), c.EditedAt)
	assert.Nil(t, c.Distinguished)
	assert.False(t, c.Body.IsTranslated())
}

func TestPost_ShadowFieldsOnlyWhileTranslated(t *testing.T) {
	p := model.Post{ID: "p1", Title: model.NewText("Hello")}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "original_title")

	p.Title.Translate("Xin chào")
	p.Translated = true
	out, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"original_title":"Hello"`)

	var back model.Post
	require.NoError(t, json.Unmarshal(out, &back))
	original, ok := back.Title.Original()
	assert.True(t, ok)
	assert.Equal(t, "Hello", original)
	assert.Equal(t, "Xin chào", back.Title.Value())
	assert.False(t, back.Selftext.IsTranslated())
}

func TestThread_CloneIsIndependent(t *testing.T) {
	th := model.Thread{
		Post:     model.Post{ID: "p1"},
		Comments: []model.Comment{{ID: "c1", Body: model.NewText("x")}},
	}

	cp := th.Clone()
	cp.Comments[0].Body.Set("y")
	cp.Post.Title.Set("changed")

	assert.Equal(t, "x", th.Comments[0].Body.Value())
	assert.Equal(t, "", th.Post.Title.Value())
	assert.Equal(t, 0, th.CommentIndex("c1"))
	assert.Equal(t, -1, th.CommentIndex("nope"))
}

func TestDecode_TranslatedFollowsShadow(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"shadow_without_flag", `{"id":"c1","body":"vi:hi","original_body":"hi"}`, true},
		{"flag_without_shadow", `{"id":"c1","body":"hi","translated":true}`, false},
		{"both", `{"id":"c1","body":"vi:hi","original_body":"hi","translated":true}`, true},
		{"neither", `{"id":"c1","body":"hi"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c model.Comment
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c.Translated)
			assert.Equal(t, tt.want, c.Body.IsTranslated())
		})
	}
}

func TestDecode_PostTranslatedByEitherShadow(t *testing.T) {
	var p model.Post
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","title":"T","selftext":"vi:b","original_selftext":"b"}`), &p))
	assert.True(t, p.Translated)
	assert.False(t, p.Title.IsTranslated())
	assert.True(t, p.Selftext.IsTranslated())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","title":"T","translated":true}`), &p))
	assert.False(t, p.Translated)
}
