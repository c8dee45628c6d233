package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bryan-buckman/redditviewer/internal/apperr"
)

const (
	// DefaultURL is the public HTML translation endpoint.
	DefaultURL = "https://translate-pa.googleapis.com/v1/translateHtml"
	// DefaultTarget is used when no target language is given.
	DefaultTarget = "vi"
	// AutoDetect asks the service to detect the source language.
	AutoDetect = "auto"

	maxResponseBytes = 4 << 20
)

// Options selects the source and target languages of one call.
type Options struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Translator translates one text.
type Translator interface {
	Translate(ctx context.Context, text string, opts Options) (string, error)
}

// GoogleOptions configures a Google client.
type GoogleOptions struct {
	URL    string
	APIKey string
	// Target is the language used when a call names none.
	Target string
	// RequestsPerSecond limits outbound calls. Zero disables limiting.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Google calls the translateHtml endpoint.
type Google struct {
	url     string
	apiKey  string
	target  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ Translator = (*Google)(nil)

// NewGoogle creates a client.
func NewGoogle(opts GoogleOptions) *Google {
	g := &Google{
		url:     opts.URL,
		apiKey:  opts.APIKey,
		target:  opts.Target,
		http:    opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  opts.Logger,
	}
	if g.url == "" {
		g.url = DefaultURL
	}
	if g.target == "" {
		g.target = DefaultTarget
	}
	if g.http == nil {
		g.http = &http.Client{Timeout: 30 * time.Second}
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if opts.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return g
}

// Translate converts markdown to plain text, sends it with line breaks
// encoded as <br/> and decodes the response. Blank input is returned as is
// without a call.
func (g *Google) Translate(ctx context.Context, text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	from := opts.From
	if from == "" {
		from = AutoDetect
	}
	to := opts.To
	if to == "" {
		to = g.target
	}

	payload, err := json.Marshal([]any{[]any{[]string{prepare(text)}, from, to}, "wt_lib"})
	if err != nil {
		return "", apperr.TranslationService(err)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", apperr.TranslationService(fmt.Errorf("rate limit cancelled: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.TranslationService(err)
	}
	req.Header.Set("Content-Type", "application/json+protobuf")
	req.Header.Set("X-Goog-API-Key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", apperr.TranslationService(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("translation request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("to", to),
		)
		return "", apperr.TranslationStatus(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	translated, err := decodeResponse(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperr.TranslationService(err)
	}
	return restore(translated), nil
}

// decodeResponse extracts data[0][0] from a [[translated, ...], ...] body.
func decodeResponse(r io.Reader) (string, error) {
	var data []json.RawMessage
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty response")
	}
	var first []json.RawMessage
	if err := json.Unmarshal(data[0], &first); err != nil || len(first) == 0 {
		return "", errors.New("unexpected response shape")
	}
	var s string
	if err := json.Unmarshal(first[0], &s); err != nil {
		return "", fmt.Errorf("decode translated text: %w", err)
	}
	return s, nil
}
