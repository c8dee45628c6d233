package reddit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

// Thing kinds used by the listing endpoints.
const (
	KindComment = "t1"
	KindPost    = "t3"
	KindMore    = "more"
)

// Listing is Reddit's {kind, data:{children}} envelope.
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []Thing `json:"children"`
	} `json:"data"`
}

// Thing is one child of a listing. Only posts and comments are decoded;
// other kinds keep just their Kind.
type Thing struct {
	Kind    string
	Post    *model.Post
	Comment model.Comment
	Replies *Listing
}

func (t *Thing) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind string          `json:"kind"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Thing{Kind: raw.Kind}
	switch raw.Kind {
	case KindPost:
		var p model.Post
		if err := json.Unmarshal(raw.Data, &p); err != nil {
			return fmt.Errorf("decode post: %w", err)
		}
		t.Post = &p
	case KindComment:
		if err := json.Unmarshal(raw.Data, &t.Comment); err != nil {
			return fmt.Errorf("decode comment: %w", err)
		}
		var nested struct {
			Replies json.RawMessage `json:"replies"`
		}
		if err := json.Unmarshal(raw.Data, &nested); err != nil {
			return fmt.Errorf("decode replies: %w", err)
		}
		// Reddit sends "" when there are no replies.
		if r := bytes.TrimSpace(nested.Replies); len(r) > 0 && r[0] == '{' {
			var replies Listing
			if err := json.Unmarshal(r, &replies); err != nil {
				return fmt.Errorf("decode replies: %w", err)
			}
			t.Replies = &replies
		}
	}
	return nil
}

// Flatten walks the listing in pre-order: each comment is yielded before its
// replies, siblings in listing order. Depth starts at 0 for the listing's
// direct children. Non-comment children such as "more" stubs are skipped.
// The sequence can be ranged over any number of times.
func Flatten(listing *Listing) iter.Seq[model.Comment] {
	return func(yield func(model.Comment) bool) {
		walk(listing, 0, yield)
	}
}

// FlattenAll collects Flatten into a slice.
func FlattenAll(listing *Listing) []model.Comment {
	comments := slices.Collect(Flatten(listing))
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments
}

func walk(l *Listing, depth int, yield func(model.Comment) bool) bool {
	if l == nil {
		return true
	}
	for _, child := range l.Data.Children {
		if child.Kind != KindComment {
			continue
		}
		c := child.Comment
		c.Depth = depth
		if !yield(c) {
			return false
		}
		if !walk(child.Replies, depth+1, yield) {
			return false
		}
	}
	return true
}
