package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// editedFlag decodes Reddit's "edited" field, which is either false or the
// edit time in epoch seconds.
type editedFlag struct {
	set bool
	at  float64
}

func (e editedFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.set)
}

func (e *editedFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*e = editedFlag{}
		return nil
	case bytes.Equal(data, []byte("true")):
		*e = editedFlag{set: true}
		return nil
	case bytes.Equal(data, []byte("false")):
		*e = editedFlag{}
		return nil
	}
	var at float64
	if err := json.Unmarshal(data, &at); err != nil {
		return fmt.Errorf("edited: %w", err)
	}
	*e = editedFlag{set: at != 0, at: at}
	return nil
}

func (e editedFlag) millis(explicit int64) int64 {
	if explicit != 0 || e.at == 0 {
		return explicit
	}
	return int64(e.at * 1000)
}

type postJSON struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Selftext          string     `json:"selftext"`
	SelftextHTML      *string    `json:"selftext_html"`
	Author            string     `json:"author"`
	Subreddit         string     `json:"subreddit"`
	SubredditPrefixed string     `json:"subreddit_name_prefixed"`
	Score             int        `json:"score"`
	UpvoteRatio       float64    `json:"upvote_ratio"`
	NumComments       int        `json:"num_comments"`
	CreatedUTC        float64    `json:"created_utc"`
	Permalink         string     `json:"permalink"`
	URL               string     `json:"url"`
	IsSelf            bool       `json:"is_self"`
	Thumbnail         string     `json:"thumbnail"`
	Edited            editedFlag `json:"edited"`
	EditedAt          int64      `json:"edited_at,omitempty"`
	OriginalTitle     *string    `json:"original_title,omitempty"`
	OriginalSelftext  *string    `json:"original_selftext,omitempty"`
	Translated        bool       `json:"translated"`
	Translating       bool       `json:"translating"`
}

// MarshalJSON renders the post in Reddit's field naming. Shadow fields are
// present only while the matching field is translated.
func (p Post) MarshalJSON() ([]byte, error) {
	w := postJSON{
		ID:                p.ID,
		Title:             p.Title.Value(),
		Selftext:          p.Selftext.Value(),
		SelftextHTML:      p.SelftextHTML,
		Author:            p.Author,
		Subreddit:         p.Subreddit,
		SubredditPrefixed: p.SubredditPrefixed,
		Score:             p.Score,
		UpvoteRatio:       p.UpvoteRatio,
		NumComments:       p.NumComments,
		CreatedUTC:        p.CreatedUTC,
		Permalink:         p.Permalink,
		URL:               p.URL,
		IsSelf:            p.IsSelf,
		Thumbnail:         p.Thumbnail,
		Edited:            editedFlag{set: p.Edited},
		EditedAt:          p.EditedAt,
		OriginalTitle:     shadow(p.Title),
		OriginalSelftext:  shadow(p.Selftext),
		Translated:        p.Translated,
		Translating:       p.Translating,
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts both Reddit API data and exported posts. The post
// counts as translated exactly when a shadow field is present.
func (p *Post) UnmarshalJSON(data []byte) error {
	var w postJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Post{
		ID:                w.ID,
		Title:             restore(w.Title, w.OriginalTitle),
		Selftext:          restore(w.Selftext, w.OriginalSelftext),
		SelftextHTML:      w.SelftextHTML,
		Author:            w.Author,
		Subreddit:         w.Subreddit,
		SubredditPrefixed: w.SubredditPrefixed,
		Score:             w.Score,
		UpvoteRatio:       w.UpvoteRatio,
		NumComments:       w.NumComments,
		CreatedUTC:        w.CreatedUTC,
		Permalink:         w.Permalink,
		URL:               w.URL,
		IsSelf:            w.IsSelf,
		Thumbnail:         w.Thumbnail,
		Edited:            w.Edited.set,
		EditedAt:          w.Edited.millis(w.EditedAt),
		Translated:        w.OriginalTitle != nil || w.OriginalSelftext != nil,
		Translating:       w.Translating,
	}
	return nil
}

type commentJSON struct {
	ID            string     `json:"id"`
	Author        string     `json:"author"`
	Body          string     `json:"body"`
	BodyHTML      string     `json:"body_html"`
	Score         int        `json:"score"`
	CreatedUTC    float64    `json:"created_utc"`
	Depth         int        `json:"depth"`
	ParentID      string     `json:"parent_id"`
	Permalink     string     `json:"permalink"`
	IsSubmitter   bool       `json:"is_submitter"`
	Stickied      bool       `json:"stickied"`
	Distinguished *string    `json:"distinguished"`
	Edited        editedFlag `json:"edited"`
	EditedAt      int64      `json:"edited_at,omitempty"`
	OriginalBody  *string    `json:"original_body,omitempty"`
	Translated    bool       `json:"translated"`
	Translating   bool       `json:"translating"`
}

// MarshalJSON renders the comment in Reddit's field naming.
func (c Comment) MarshalJSON() ([]byte, error) {
	w := commentJSON{
		ID:            c.ID,
		Author:        c.Author,
		Body:          c.Body.Value(),
		BodyHTML:      c.BodyHTML,
		Score:         c.Score,
		CreatedUTC:    c.CreatedUTC,
		Depth:         c.Depth,
		ParentID:      c.ParentID,
		Permalink:     c.Permalink,
		IsSubmitter:   c.IsSubmitter,
		Stickied:      c.Stickied,
		Distinguished: c.Distinguished,
		Edited:        editedFlag{set: c.Edited},
		EditedAt:      c.EditedAt,
		OriginalBody:  shadow(c.Body),
		Translated:    c.Translated,
		Translating:   c.Translating,
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts both Reddit API data and exported comments.
// Nested replies are ignored here; the flattener walks them.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var w commentJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = Comment{
		ID:            w.ID,
		Author:        w.Author,
		Body:          restore(w.Body, w.OriginalBody),
		BodyHTML:      w.BodyHTML,
		Score:         w.Score,
		CreatedUTC:    w.CreatedUTC,
		Depth:         w.Depth,
		ParentID:      w.ParentID,
		Permalink:     w.Permalink,
		IsSubmitter:   w.IsSubmitter,
		Stickied:      w.Stickied,
		Distinguished: w.Distinguished,
		Edited:        w.Edited.set,
		EditedAt:      w.Edited.millis(w.EditedAt),
		Translated:    w.OriginalBody != nil,
		Translating:   w.Translating,
	}
	return nil
}

func shadow(t Text) *string {
	if original, ok := t.Original(); ok {
		return &original
	}
	return nil
}

func restore(current string, original *string) Text {
	if original == nil {
		return NewText(current)
	}
	return TranslatedText(current, *original)
}
