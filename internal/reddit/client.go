// Package reddit provides thread fetching, comment flattening and subreddit
// feed discovery.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
	"github.com/bryan-buckman/redditviewer/internal/model"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "RedditViewer/1.0"

// maxResponseBytes caps the size of a thread or feed response.
const maxResponseBytes = 32 << 20

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	// RequestsPerSecond limits outbound requests. Zero disables limiting.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client fetches thread data from Reddit.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	parser    *gofeed.Parser
	logger    *slog.Logger
}

// NewClient creates a client.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		parser:    gofeed.NewParser(),
		logger:    opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = "https://www.reddit.com"
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// FetchURL parses a thread URL and fetches the thread it names.
func (c *Client) FetchURL(ctx context.Context, rawURL string) (model.Thread, error) {
	parsed := ParseURL(rawURL)
	if !parsed.IsValid {
		return model.Thread{}, apperr.InvalidURL()
	}
	return c.FetchThread(ctx, parsed.Subreddit, parsed.PostID)
}

// FetchThread fetches a post and its flattened comments.
func (c *Client) FetchThread(ctx context.Context, subreddit, postID string) (model.Thread, error) {
	endpoint := fmt.Sprintf("%s/r/%s/comments/%s.json",
		c.baseURL, url.PathEscape(subreddit), url.PathEscape(postID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return model.Thread{}, err
	}
	defer body.Close()

	var listings []Listing
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBytes)).Decode(&listings); err != nil {
		return model.Thread{}, apperr.FetchFailed(fmt.Errorf("decode response: %w", err))
	}
	if len(listings) < 2 {
		return model.Thread{}, apperr.FetchFailed(errors.New("invalid Reddit API response format"))
	}

	children := listings[0].Data.Children
	if len(children) == 0 || children[0].Post == nil {
		return model.Thread{}, apperr.FetchFailed(errors.New("no post data found"))
	}

	thread := model.Thread{
		Post:     *children[0].Post,
		Comments: FlattenAll(&listings[1]),
	}
	c.logger.Info("thread fetched",
		slog.String("subreddit", subreddit),
		slog.String("post_id", postID),
		slog.Int("comments", len(thread.Comments)),
	)
	return thread, nil
}

// get issues a rate-limited GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.FetchFailed(fmt.Errorf("rate limit cancelled: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.FetchFailed(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.FetchFailed(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		c.logger.Warn("reddit request failed",
			slog.String("url", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperr.FetchStatus(resp.StatusCode)
	}
	return resp.Body, nil
}
