package codec

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/model"
)

var exportTime = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func sampleThread() model.Thread {
	return model.Thread{
		Post: model.Post{
			ID:         "abc",
			Title:      model.TranslatedText("Xin chào", "Hello"),
			Selftext:   model.NewText("Body &amp; soul"),
			Author:     "op",
			Subreddit:  "golang",
			Score:      1234,
			IsSelf:     true,
			CreatedUTC: 1700000000,
		},
		Comments: []model.Comment{
			{ID: "c1", Author: "a", Body: model.NewText("top"), Score: 5, Depth: 0},
			{ID: "c2", Author: "b", Body: model.NewText("line1\nline2"), Score: 2, Depth: 1},
			{ID: "c3", Author: "c", Body: model.NewText("[deleted]"), Depth: 2},
			{ID: "c4", Author: "d", Body: model.NewText("second"), Score: 999, Depth: 0},
		},
	}
}

const minimalExport = `{
	"version": "1.0",
	"exportedAt": "2026-03-01T00:00:00.000Z",
	"originalUrl": "",
	"post": {"id": "x", "title": "T", "author": "a", "subreddit": "s", "created_utc": 1, "extra": true},
	"comments": [],
	"metadata": {"totalComments": 0, "exportTimestamp": 1}
}`

func TestEncodeDecode_RoundTrip(t *testing.T) {
	th := sampleThread()
	raw, err := Encode(th, "https://www.reddit.com/r/golang/comments/abc/", exportTime)
	require.NoError(t, err)
	assert.True(t, Validate(raw))

	doc, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, "2026-03-01T12:30:00.000Z", doc.ExportedAt)
	assert.Equal(t, 4, doc.Metadata.TotalComments)
	assert.Equal(t, exportTime.UnixMilli(), doc.Metadata.ExportTimestamp)
	assert.Equal(t, "https://www.reddit.com/r/golang/comments/abc/", doc.OriginalURL)

	got := doc.Thread()
	assert.Equal(t, th.Post, got.Post)
	assert.Equal(t, th.Comments, got.Comments)
	original, ok := got.Post.Title.Original()
	assert.True(t, ok)
	assert.Equal(t, "Hello", original)
}

func TestEncode_EmptyComments(t *testing.T) {
	th := sampleThread()
	th.Comments = nil
	raw, err := Encode(th, "", exportTime)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, []any{}, generic["comments"])
	assert.True(t, Validate(raw))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"minimal", minimalExport, true},
		{"not_object", `[1,2]`, false},
		{"not_json", `{`, false},
		{"missing_version", strings.Replace(minimalExport, `"version": "1.0",`, "", 1), false},
		{"null_post", strings.Replace(minimalExport, `"post": {"id": "x", "title": "T", "author": "a", "subreddit": "s", "created_utc": 1, "extra": true}`, `"post": null`, 1), false},
		{"string_created", strings.Replace(minimalExport, `"created_utc": 1`, `"created_utc": "1"`, 1), false},
		{"comments_not_array", strings.Replace(minimalExport, `"comments": []`, `"comments": {}`, 1), false},
		{"bad_comment", strings.Replace(minimalExport, `"comments": []`, `"comments": [{"id": "c", "author": "a"}]`, 1), false},
		{"good_comment", strings.Replace(minimalExport, `"comments": []`, `"comments": [{"id": "c", "author": "a", "body": ""}]`, 1), true},
		{"metadata_string", strings.Replace(minimalExport, `"totalComments": 0`, `"totalComments": "0"`, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate([]byte(tt.doc)))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("not json"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidImportFormat, apperr.KindOf(err))
	assert.Equal(t, "Invalid JSON file. Please select a valid Reddit export file.", err.Error())

	_, err = Parse(strings.NewReader(`{"version": "1.0"}`))
	require.Error(t, err)
	assert.Equal(t, "Invalid file format. Please select a valid Reddit export file.", err.Error())

	doc, err := Parse(strings.NewReader(minimalExport))
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Thread().Post.ID)
	assert.NotNil(t, doc.Thread().Comments)
}

func TestEncodeAsText(t *testing.T) {
	got := EncodeAsText(sampleThread(), "")
	want := strings.Join([]string{
		"r/golang",
		"u/op (1.2k points)",
		"Xin chào",
		separator,
		"Link Reddit: https://redd.it/abc",
		separator,
		"Body & soul",
		separator,
		"u/a (5 points)",
		">u/b (2 points)",
		">line1",
		">line2",
		separator,
		"u/d (999 points)",
		"second",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestEncodeAsText_LeadingReplyAndLink(t *testing.T) {
	th := model.Thread{
		Post: model.Post{ID: "p", Title: model.NewText("T"), Author: "a", Subreddit: "s"},
		Comments: []model.Comment{
			{ID: "r", Author: "x", Body: model.NewText("reply<br>more"), Depth: 2},
			{ID: "t", Author: "y", Body: model.NewText("top"), Depth: 0},
		},
	}
	got := EncodeAsText(th, "https://example.com/thread")
	assert.Contains(t, got, "Link Reddit: https://example.com/thread\n")
	assert.Contains(t, got, ">>u/x (0 points)\n>>reply\n>>more\n")
	assert.Contains(t, got, separator+"\nu/y (0 points)\ntop\n")
	assert.NotContains(t, got, "Body")
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "999 points", formatPoints(999))
	assert.Equal(t, "1.0k points", formatPoints(1000))
	assert.Equal(t, "1.3k points", formatPoints(1250))
	assert.Equal(t, "12.3k points", formatPoints(12345))
	assert.Equal(t, "-4 points", formatPoints(-4))
}

func TestFilename(t *testing.T) {
	post := model.Post{ID: "abc", Title: model.NewText("Tiếng Việt: what's   new?!"), Subreddit: "golang"}
	assert.Equal(t, "reddit-golang-Tieng-Viet-whats-new-2026-03-01.json", Filename(post, "json", exportTime))

	post.Title = model.NewText("???")
	assert.Equal(t, "reddit-golang-abc-2026-03-01.txt", Filename(post, "txt", exportTime))

	post.Title = model.NewText(strings.Repeat("word ", 30))
	name := Filename(post, "json", exportTime)
	slug := strings.TrimSuffix(strings.TrimPrefix(name, "reddit-golang-"), "-2026-03-01.json")
	assert.LessOrEqual(t, len(slug), 50)
	assert.False(t, strings.HasSuffix(slug, "-"))
}
