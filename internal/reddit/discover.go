package reddit

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
)

// DefaultDiscoverLimit caps how many threads Discover returns.
const DefaultDiscoverLimit = 25

// ThreadLink is a thread advertised in a subreddit feed.
type ThreadLink struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Subreddit string    `json:"subreddit"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author,omitempty"`
	Published time.Time `json:"published,omitempty"`
}

// Discover reads a subreddit's RSS feed and returns the thread links in it.
// Entries whose link is not a thread URL are dropped.
func (c *Client) Discover(ctx context.Context, subreddit string, limit int) ([]ThreadLink, error) {
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}
	endpoint := fmt.Sprintf("%s/r/%s/.rss", c.baseURL, url.PathEscape(subreddit))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := c.parser.Parse(io.LimitReader(body, maxResponseBytes))
	if err != nil {
		return nil, apperr.FetchFailed(fmt.Errorf("parse feed %s: %w", endpoint, err))
	}

	links := make([]ThreadLink, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(links) == limit {
			break
		}
		parsed := ParseURL(item.Link)
		if !parsed.IsValid {
			continue
		}
		link := ThreadLink{
			Title:     item.Title,
			URL:       item.Link,
			Subreddit: parsed.Subreddit,
			PostID:    parsed.PostID,
		}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			link.Author = item.Authors[0].Name
		}
		switch {
		case item.PublishedParsed != nil:
			link.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			link.Published = *item.UpdatedParsed
		}
		links = append(links, link)
	}
	return links, nil
}
