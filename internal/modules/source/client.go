// Package source fetches candidate news items from the NewsData upstream.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUpstream marks a failed batch fetch. The whole ingestion run aborts on it.
var ErrUpstream = errors.New("news upstream request failed")

const pubDateLayout = "2006-01-02 15:04:05"

// Item is a raw candidate news entry, not yet admitted or enriched.
// Consumed once per run; not owned by this system.
type Item struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"image_url"`
	Category    []string `json:"category"`
	SourceID    string   `json:"source_id"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
}

// FirstCategory returns the item's primary category, or "General".
func (i Item) FirstCategory() string {
	if len(i.Category) > 0 && strings.TrimSpace(i.Category[0]) != "" {
		return i.Category[0]
	}
	return "General"
}

// PublishedAt parses the upstream publish timestamp, falling back to now
// when the source omits or mangles it.
func (i Item) PublishedAt(now time.Time) time.Time {
	raw := strings.TrimSpace(i.PubDate)
	if raw == "" {
		return now
	}
	if t, err := time.Parse(pubDateLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return now
}

// Client talks to the NewsData latest-news endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	categories string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a source client for the given endpoint and category set.
func New(baseURL, apiKey, categories string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		categories: categories,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Fetch retrieves one batch of English-language candidate items.
// Any transport error or non-2xx status wraps ErrUpstream.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	c.logger.Info("fetching news batch", zap.String("url", c.RedactedURL()))

	query := neturl.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("language", "en")
	query.Set("category", c.categories)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		Results []Item `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return payload.Results, nil
}

// RedactedURL returns the request URL with the API key hidden, for logging.
func (c *Client) RedactedURL() string {
	return fmt.Sprintf("%s?apikey=HIDDEN_KEY&language=en&category=%s", c.baseURL, c.categories)
}
