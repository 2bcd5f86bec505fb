// Package googlebooks searches the Google Books volumes API for candidate
// descriptions of a catalog entry.
package googlebooks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"

	"github.com/open-shelves/enricher/internal/catalog"
)

const (
	// DefaultDelay is the minimum pause between consecutive API calls.
	DefaultDelay = 1 * time.Second
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxResults is how many candidates a search returns.
	DefaultMaxResults = 3
	// DefaultLanguage restricts results to a language.
	DefaultLanguage = "en"
)

// Config controls a Client. Zero values fall back to the defaults above.
type Config struct {
	APIKey     string
	MaxResults int64
	Language   string
	Delay      time.Duration
	Timeout    time.Duration

	// Endpoint overrides the API base URL, for tests.
	Endpoint string
}

// Client queries the volumes API. It enforces a minimum delay between
// consecutive calls and a per-request timeout. Not safe for concurrent use;
// the enrichment run is strictly sequential.
type Client struct {
	svc        *books.Service
	maxResults int64
	language   string
	delay      time.Duration
	timeout    time.Duration
	lastCall   time.Time
}

// NewClient builds a volumes API client. An API key is optional; the
// volumes search endpoint answers unauthenticated requests.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var opts []option.ClientOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}

	return &Client{
		svc:        svc,
		maxResults: cfg.MaxResults,
		language:   cfg.Language,
		delay:      cfg.Delay,
		timeout:    cfg.Timeout,
	}, nil
}

// Search queries the volumes API for a title, optionally narrowed by
// author, and returns up to MaxResults candidates in Google's ranking
// order. Any API failure surfaces as an error; callers treat that the same
// as zero results.
func (c *Client) Search(ctx context.Context, title, author string) ([]catalog.Candidate, error) {
	c.throttle()

	query := title
	if author != "" {
		query = title + " " + author
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Volumes.List(query).
		MaxResults(c.maxResults).
		LangRestrict(c.language).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("volumes search failed: %w", err)
	}

	candidates := make([]catalog.Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := item.VolumeInfo
		if info == nil {
			continue
		}
		candidates = append(candidates, catalog.Candidate{
			Title:       info.Title,
			Description: info.Description,
			Authors:     info.Authors,
			Year:        yearOf(info.PublishedDate),
			Publisher:   info.Publisher,
			PageCount:   info.PageCount,
		})
	}

	slog.Debug("Volumes search", "query", query, "results", len(candidates))

	return candidates, nil
}

// throttle sleeps off whatever remains of the minimum inter-call delay.
func (c *Client) throttle() {
	if !c.lastCall.IsZero() {
		if elapsed := time.Since(c.lastCall); elapsed < c.delay {
			time.Sleep(c.delay - elapsed)
		}
	}
	c.lastCall = time.Now()
}

// yearOf reduces a published-date string ("2005-07-12", "2005") to its
// leading 4-digit year, or "" when there is no date.
func yearOf(publishedDate string) string {
	if len(publishedDate) > 4 {
		return publishedDate[:4]
	}
	return publishedDate
}
