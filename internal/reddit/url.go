package reddit

import (
	"net/url"
	"regexp"
)

// threadPath matches /r/{subreddit}/comments/{postId}/{optional slug}.
var threadPath = regexp.MustCompile(`^/r/([^/]+)/comments/([^/]+)`)

// ParsedURL is the result of ParseURL.
type ParsedURL struct {
	Subreddit string `json:"subreddit"`
	PostID    string `json:"postId"`
	IsValid   bool   `json:"isValid"`
}

// ParseURL extracts the subreddit and post id from a thread URL.
func ParseURL(raw string) ParsedURL {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ParsedURL{}
	}
	m := threadPath.FindStringSubmatch(u.Path)
	if m == nil {
		return ParsedURL{}
	}
	return ParsedURL{Subreddit: m[1], PostID: m[2], IsValid: true}
}
