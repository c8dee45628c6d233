package thread

import (
	"time"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

// The functions below mutate a thread in place. Store and the recent cache
// both go through them so the two copies of a thread change the same way.
// Each returns false when nothing matched.

// EditPost sets a post field, drops the cached HTML of the body and marks the
// post edited.
func EditPost(t *model.Thread, field model.Field, value string, now time.Time) bool {
	if t == nil {
		return false
	}
	switch field {
	case model.FieldTitle:
		t.Post.Title.Set(value)
	case model.FieldSelftext:
		t.Post.Selftext.Set(value)
		t.Post.SelftextHTML = nil
	default:
		return false
	}
	t.Post.MarkEdited(now)
	return true
}

// EditComment sets a comment body, drops its cached HTML and marks it edited.
func EditComment(t *model.Thread, id, body string, now time.Time) bool {
	c := comment(t, id)
	if c == nil {
		return false
	}
	c.Body.Set(body)
	c.BodyHTML = ""
	c.MarkEdited(now)
	return true
}

// DeleteSubtree removes the comment with id and all of its descendants.
func DeleteSubtree(t *model.Thread, id string) bool {
	if t == nil {
		return false
	}
	i := t.CommentIndex(id)
	if i < 0 {
		return false
	}
	t.Comments = RemoveSpan(t.Comments, i)
	return true
}

// SetTranslating sets the pending flag of the target.
func SetTranslating(t *model.Thread, target model.Target, flag bool) bool {
	if t == nil {
		return false
	}
	if target.IsPost() {
		t.Post.Translating = flag
		return true
	}
	c := comment(t, target.CommentID)
	if c == nil {
		return false
	}
	c.Translating = flag
	return true
}

// Translate shows the translated values. The first translation of a field
// captures its original; later translations keep it.
func Translate(t *model.Thread, target model.Target, values map[model.Field]string) bool {
	if t == nil {
		return false
	}
	if target.IsPost() {
		p := &t.Post
		if v, ok := values[model.FieldTitle]; ok {
			p.Title.Translate(v)
		}
		if v, ok := values[model.FieldSelftext]; ok {
			p.Selftext.Translate(v)
		}
		p.Translated = true
		p.Translating = false
		return true
	}
	c := comment(t, target.CommentID)
	if c == nil {
		return false
	}
	if v, ok := values[model.FieldBody]; ok {
		c.Body.Translate(v)
	}
	c.Translated = true
	c.Translating = false
	return true
}

// TranslateFrom applies a recorded translation. The recorded original is used
// as the shadow only when the field has none; pending flags are untouched.
func TranslateFrom(t *model.Thread, item model.ItemTranslation) bool {
	if t == nil || len(item.Fields) == 0 {
		return false
	}
	if item.Target.IsPost() {
		for _, f := range item.Fields {
			switch f.Field {
			case model.FieldTitle:
				t.Post.Title.TranslateFrom(f.Value, f.Original)
			case model.FieldSelftext:
				t.Post.Selftext.TranslateFrom(f.Value, f.Original)
			}
		}
		t.Post.Translated = true
		return true
	}
	c := comment(t, item.Target.CommentID)
	if c == nil {
		return false
	}
	for _, f := range item.Fields {
		if f.Field == model.FieldBody {
			c.Body.TranslateFrom(f.Value, f.Original)
		}
	}
	c.Translated = true
	return true
}

// Record returns the translated fields of target with their originals.
// It reports false when the target is missing or not translated.
func Record(t *model.Thread, target model.Target) (model.ItemTranslation, bool) {
	item := model.ItemTranslation{Target: target}
	if t == nil {
		return item, false
	}
	add := func(field model.Field, text model.Text) {
		if original, ok := text.Original(); ok {
			item.Fields = append(item.Fields, model.FieldTranslation{Field: field, Value: text.Value(), Original: original})
		}
	}
	if target.IsPost() {
		if !t.Post.Translated {
			return item, false
		}
		add(model.FieldTitle, t.Post.Title)
		add(model.FieldSelftext, t.Post.Selftext)
		return item, len(item.Fields) > 0
	}
	c := comment(t, target.CommentID)
	if c == nil || !c.Translated {
		return item, false
	}
	add(model.FieldBody, c.Body)
	return item, len(item.Fields) > 0
}

// Revert restores original text and clears the translated and pending flags.
// It is a no-op when the target carries no translation.
func Revert(t *model.Thread, target model.Target) bool {
	if t == nil {
		return false
	}
	if target.IsPost() {
		p := &t.Post
		title := p.Title.Revert()
		body := p.Selftext.Revert()
		if !title && !body && !p.Translated {
			return false
		}
		p.Translated = false
		p.Translating = false
		return true
	}
	c := comment(t, target.CommentID)
	if c == nil {
		return false
	}
	if !c.Body.Revert() && !c.Translated {
		return false
	}
	c.Translated = false
	c.Translating = false
	return true
}

// Stats counts translatable items. The post counts when its title or body is
// non-blank; a comment counts when its body is non-blank.
func Stats(t *model.Thread) model.Stats {
	var s model.Stats
	if t == nil {
		return s
	}
	if t.Post.HasText() {
		s.Total++
		if t.Post.Translated {
			s.Translated++
		}
		if t.Post.Translating {
			s.Translating++
		}
	}
	for i := range t.Comments {
		c := &t.Comments[i]
		if c.Body.IsBlank() {
			continue
		}
		s.Total++
		if c.Translated {
			s.Translated++
		}
		if c.Translating {
			s.Translating++
		}
	}
	return s
}

func comment(t *model.Thread, id string) *model.Comment {
	if t == nil {
		return nil
	}
	i := t.CommentIndex(id)
	if i < 0 {
		return nil
	}
	return &t.Comments[i]
}
