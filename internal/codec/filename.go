package codec

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bryan-buckman/redditviewer/internal/model"
)

const maxSlugLen = 50

var (
	nonWord    = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Filename names an export of post taken at now, e.g.
// "reddit-golang-Generics-are-here-2026-03-01.json".
func Filename(post model.Post, ext string, now time.Time) string {
	slug := slugify(post.Title.Value())
	if slug == "" {
		slug = post.ID
	}
	return "reddit-" + slugify(post.Subreddit) + "-" + slug + "-" + now.UTC().Format("2006-01-02") + "." + ext
}

// slugify strips accents, drops everything but ASCII letters, digits and
// spaces, joins words with hyphens and caps the length.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}
