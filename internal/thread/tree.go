package thread

import (
	"slices"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

// SubtreeEnd returns the index one past the last descendant of comments[i].
// Descendants are the comments after i up to the next one whose depth is not
// greater than comments[i].Depth.
func SubtreeEnd(comments []model.Comment, i int) int {
	depth := comments[i].Depth
	j := i + 1
	for j < len(comments) && comments[j].Depth > depth {
		j++
	}
	return j
}

// RemoveSpan deletes comments[i] and its descendants in one pass.
// Order and depth of the remaining comments are unchanged.
func RemoveSpan(comments []model.Comment, i int) []model.Comment {
	return slices.Delete(comments, i, SubtreeEnd(comments, i))
}

// Node is a comment with its direct replies.
type Node struct {
	Comment  model.Comment `json:"comment"`
	Children []*Node       `json:"children,omitempty"`
}

// BuildTree rebuilds the reply tree from a pre-order comment sequence.
// A comment's parent is the nearest earlier comment with a smaller depth.
func BuildTree(comments []model.Comment) []*Node {
	roots := []*Node{}
	var path []*Node
	for _, c := range comments {
		n := &Node{Comment: c}
		for len(path) > 0 && path[len(path)-1].Comment.Depth >= c.Depth {
			path = path[:len(path)-1]
		}
		if len(path) == 0 {
			roots = append(roots, n)
		} else {
			parent := path[len(path)-1]
			parent.Children = append(parent.Children, n)
		}
		path = append(path, n)
	}
	return roots
}
