package model

import "fmt"

// Field names a mutable text field.
type Field string

const (
	FieldTitle    Field = "title"
	FieldSelftext Field = "selftext"
	FieldBody     Field = "body"
)

// ParsePostField maps an API field name to a post field. Both "body" and
// "selftext" name the post body.
func ParsePostField(name string) (Field, error) {
	switch name {
	case "title":
		return FieldTitle, nil
	case "body", "selftext":
		return FieldSelftext, nil
	}
	return "", fmt.Errorf("unknown post field %q", name)
}

// Target addresses the post, or a comment when CommentID is set.
type Target struct {
	CommentID string
}

// PostTarget addresses the post.
func PostTarget() Target { return Target{} }

// CommentTarget addresses a comment.
func CommentTarget(id string) Target { return Target{CommentID: id} }

// IsPost reports whether t addresses the post.
func (t Target) IsPost() bool { return t.CommentID == "" }

func (t Target) String() string {
	if t.IsPost() {
		return "post"
	}
	return "comment " + t.CommentID
}

// FieldTranslation is the before and after text of one field.
type FieldTranslation struct {
	Field    Field
	Value    string
	Original string
}

// ItemTranslation records the translated fields of one post or comment.
type ItemTranslation struct {
	Target Target
	Fields []FieldTranslation
}
