package codec

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

const separator = "_____________________"

var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// EncodeAsText renders t as a plain-text digest. Replies are prefixed with
// one ">" per level of depth on every line.
func EncodeAsText(t model.Thread, sourceURL string) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	post := t.Post
	line("r/" + post.Subreddit)
	line(fmt.Sprintf("u/%s (%s)", post.Author, formatPoints(post.Score)))
	line(cleanText(post.Title.Value()))
	line(separator)
	link := sourceURL
	if link == "" {
		link = "https://redd.it/" + post.ID
	}
	line("Link Reddit: " + link)
	line(separator)

	if post.IsSelf && !post.Selftext.IsBlank() {
		line(cleanText(post.Selftext.Value()))
		line(separator)
	}

	for i, c := range t.Comments {
		body := c.Body.Value()
		if body == "" || body == "[deleted]" || body == "[removed]" {
			continue
		}
		if c.Depth == 0 && i > 0 {
			line(separator)
		}
		indent := strings.Repeat(">", c.Depth)
		line(fmt.Sprintf("%su/%s (%s)", indent, c.Author, formatPoints(c.Score)))

		text := cleanText(body)
		if c.Depth > 0 {
			lines := strings.Split(text, "\n")
			for j := range lines {
				lines[j] = indent + lines[j]
			}
			text = strings.Join(lines, "\n")
		}
		line(text)
	}
	return b.String()
}

// formatPoints renders a score, abbreviating thousands with one decimal.
func formatPoints(score int) string {
	if score >= 1000 {
		return fmt.Sprintf("%.1fk points", math.Round(float64(score)/100)/10)
	}
	return fmt.Sprintf("%d points", score)
}

func cleanText(s string) string {
	return strings.TrimSpace(brTag.ReplaceAllString(html.UnescapeString(s), "\n"))
}
