package articles

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/easynews/core/internal/models"
	"github.com/easynews/core/internal/pkg/redis"
	"github.com/easynews/core/internal/pkg/response"
	"go.uber.org/zap"
)

const cachePrefix = "articles:list:"

// cachedPage is the serialized form of one list page.
type cachedPage struct {
	Items      []models.ArticleModel `json:"items"`
	Pagination response.Pagination   `json:"pagination"`
}

// ListCache stores rendered list pages in Redis. A nil *ListCache is a
// valid no-op cache, so the read path works without Redis.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListCache {
	if client == nil {
		return nil
	}
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(page, limit int, category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d:%d", cachePrefix, category, page, limit)
}

// Get returns a cached page, or (nil, false) on miss or any Redis error.
func (c *ListCache) Get(ctx context.Context, page, limit int, category string) (*cachedPage, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(page, limit, category))
	if err != nil {
		c.logger.Warn("article cache read failed", zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var cached cachedPage
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

// Put stores a page. Failures are logged and otherwise ignored.
func (c *ListCache) Put(ctx context.Context, page, limit int, category string, items []models.ArticleModel, p response.Pagination) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(cachedPage{Items: items, Pagination: p})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(page, limit, category), raw, c.ttl); err != nil {
		c.logger.Warn("article cache write failed", zap.Error(err))
	}
}

// Invalidate drops every cached list page. Called after ingestion persists
// new articles.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.DelPrefix(ctx, cachePrefix); err != nil {
		c.logger.Warn("article cache invalidation failed", zap.Error(err))
	}
}
