package database

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func entry(id string) model.RecentEntry {
	th := model.Thread{
		Post: model.Post{ID: id, Title: model.NewText("T " + id), Subreddit: "golang", Author: "gopher", CreatedUTC: 1700000000},
		Comments: []model.Comment{
			{ID: id + "c1", Author: "x", Body: model.TranslatedText("xin chao", "hello"), Translated: true},
			{ID: id + "c2", Author: "y", Body: model.NewText("reply"), Depth: 1, ParentID: "t1_" + id + "c1"},
		},
	}
	return model.RecentEntry{
		ThreadID:    id,
		Title:       th.Post.Title.Value(),
		Subreddit:   th.Post.Subreddit,
		Author:      th.Post.Author,
		Timestamp:   th.Post.CreatedUTC,
		LoadedAt:    1700000123000,
		Source:      model.OriginFetched,
		OriginalURL: "https://www.reddit.com/r/golang/comments/" + id + "/",
		Thread:      th,
	}
}

func TestDB_RecentRoundTrip(t *testing.T) {
	db := openTestDB(t)

	got, err := db.LoadRecent()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, db.SaveRecent([]model.RecentEntry{entry("b"), entry("a")}))
	got, err = db.LoadRecent()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ThreadID)
	assert.Equal(t, "a", got[1].ThreadID)

	first := got[0]
	assert.Equal(t, "T b", first.Title)
	assert.Equal(t, model.OriginFetched, first.Source)
	assert.Equal(t, int64(1700000123000), first.LoadedAt)
	require.Len(t, first.Thread.Comments, 2)
	body := first.Thread.Comments[0].Body
	assert.Equal(t, "xin chao", body.Value())
	original, ok := body.Original()
	assert.True(t, ok)
	assert.Equal(t, "hello", original)
	assert.Equal(t, 1, first.Thread.Comments[1].Depth)
}

func TestDB_LoadRecentSkipsCorruptRows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveRecent([]model.RecentEntry{entry("a"), entry("b")}))
	_, err := db.conn.Exec("UPDATE recent_threads SET payload = '{not json' WHERE thread_id = 'a'")
	require.NoError(t, err)

	got, err := db.LoadRecent()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ThreadID)
}

func TestDecodeRecentList(t *testing.T) {
	raw, err := json.Marshal([]model.RecentEntry{entry("a")})
	require.NoError(t, err)
	mixed := append([]byte(`[{"id":"x","data":{"post":{"id":7}}},`), raw[1:]...)

	got, err := decodeRecentList(mixed)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ThreadID)

	_, err = decodeRecentList([]byte("nope"))
	assert.Error(t, err)
}

func TestDB_SaveRecentReplaces(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveRecent([]model.RecentEntry{entry("a"), entry("b")}))
	require.NoError(t, db.SaveRecent([]model.RecentEntry{entry("c")}))

	got, err := db.LoadRecent()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ThreadID)

	require.NoError(t, db.SaveRecent(nil))
	got, err = db.LoadRecent()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDB_Settings(t *testing.T) {
	db := openTestDB(t)

	v, err := db.GetSetting(model.SettingRecentOpen)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, db.SetSetting(model.SettingRecentOpen, "false"))
	v, err = db.GetSetting(model.SettingRecentOpen)
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	_, err = db.GetSetting("missing")
	assert.Error(t, err)
	assert.Equal(t, "SQLite", db.DatabaseType())
}
