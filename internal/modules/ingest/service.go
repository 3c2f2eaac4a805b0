// Package ingest drives the fetch → filter → enrich → persist pipeline.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/models"
	"github.com/easynews/core/internal/modules/enrich"
	"github.com/easynews/core/internal/modules/source"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fetcher retrieves one batch of candidate items from the news upstream.
type Fetcher interface {
	Fetch(ctx context.Context) ([]source.Item, error)
}

// Invalidator drops cached read-path views after a run persisted new records.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// RunConfig echoes the effective configuration in the run summary for
// operator debugging.
type RunConfig struct {
	RequireImage     bool   `json:"requireImage"`
	MinContentLength int    `json:"minContentLength"`
	ArticlesPerRun   int    `json:"articlesPerRun"`
	Categories       string `json:"categories"`
}

// ItemDebug is a compact per-item diagnostic carried in the summary when a
// run skipped anything, so operators can see why a batch produced little.
type ItemDebug struct {
	Title      string `json:"title"`
	ContentLen int    `json:"contentLen"`
	HasImage   bool   `json:"hasImage"`
}

// Summary aggregates the outcome of one pipeline run.
type Summary struct {
	TotalFetched   int            `json:"totalFetched"`
	Processed      int            `json:"processed"`
	Skipped        int            `json:"skipped"`
	SkippedReasons map[Reason]int `json:"skippedReasons"`
	SkippedItems   []ItemDebug    `json:"debug_skippedItems,omitempty"`
	Configuration  RunConfig      `json:"configuration"`
}

// Service is the ingestion orchestrator.
type Service struct {
	cfg      config.NewsConfig
	fetcher  Fetcher
	enricher enrich.Enricher
	store    Store
	cache    Invalidator
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the orchestrator. cache may be nil when no read-path
// cache is configured.
func NewService(cfg config.NewsConfig, fetcher Fetcher, enricher enrich.Enricher, store Store, cache Invalidator, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		enricher: enricher,
		store:    store,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one complete pipeline run: fetch a batch, process items in
// fetch order until articlesPerRun records have been persisted, and report
// the tally. Items are enriched one at a time; there is no fan-out.
//
// An upstream fetch failure aborts the run before any item is touched.
// Per-item filter and enrichment failures are counted and skipped. A storage
// failure is fatal, except a violated unique index, which is the expected
// outcome of two overlapping runs racing the same item.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	items, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("fetched candidate batch", zap.Int("count", len(items)))

	summary := &Summary{
		TotalFetched: len(items),
		SkippedReasons: map[Reason]int{
			ReasonAlreadyExists: 0,
			ReasonNoImage:       0,
			ReasonTooShort:      0,
			ReasonLLMFailed:     0,
		},
		Configuration: RunConfig{
			RequireImage:     s.cfg.RequireImage,
			MinContentLength: s.cfg.MinContentLength,
			ArticlesPerRun:   s.cfg.ArticlesPerRun,
			Categories:       s.cfg.Categories,
		},
	}

	filterCfg := FilterConfig{
		RequireImage:     s.cfg.RequireImage,
		MinContentLength: s.cfg.MinContentLength,
	}

	for _, item := range items {
		if summary.Processed >= s.cfg.ArticlesPerRun {
			break
		}

		exists, err := s.store.Exists(ctx, item.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("existence check: %w", err)
		}

		content := SelectContent(item)
		if reason, ok := Admit(filterCfg, item, exists, content); !ok {
			summary.SkippedReasons[reason]++
			if reason != ReasonAlreadyExists {
				summary.Skipped++
			}
			if reason == ReasonTooShort {
				s.logger.Debug("skipping short article",
					zap.String("title", truncateTitle(item.Title)),
					zap.Int("length", len(content)),
					zap.Int("min", s.cfg.MinContentLength),
				)
			}
			continue
		}

		result, err := s.enricher.Enrich(ctx, item.Title, content)
		if err != nil {
			s.logger.Warn("enrichment failed, skipping item",
				zap.String("original_id", item.ArticleID),
				zap.Error(err),
			)
			summary.SkippedReasons[ReasonLLMFailed]++
			summary.Skipped++
			continue
		}

		article := &models.ArticleModel{
			OriginalID:        item.ArticleID,
			Title:             item.Title,
			SimplifiedText:    result.SimplifiedText,
			CoreVocabulary:    result.CoreVocabulary,
			VocabularyDetails: result.VocabularyDetails,
			ChineseSummary:    result.ChineseSummary,
			PubDate:           item.PublishedAt(s.now()),
			ImageURL:          item.ImageURL,
			Category:          item.FirstCategory(),
			Source:            item.SourceID,
			OriginalURL:       item.Link,
		}
		if err := s.store.Create(ctx, article); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent run persisted the same item between our
				// pre-check and this write. Expected, not fatal.
				summary.SkippedReasons[ReasonAlreadyExists]++
				continue
			}
			return nil, fmt.Errorf("persist article %s: %w", item.ArticleID, err)
		}
		summary.Processed++
	}

	if summary.Skipped > 0 {
		for _, item := range items {
			if len(summary.SkippedItems) == 3 {
				break
			}
			summary.SkippedItems = append(summary.SkippedItems, ItemDebug{
				Title:      item.Title,
				ContentLen: len(firstNonEmpty(item.Content, item.Description, item.Title)),
				HasImage:   item.ImageURL != "",
			})
		}
	}

	if summary.Processed > 0 && s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("run summary",
		zap.Int("total_fetched", summary.TotalFetched),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Any("reasons", summary.SkippedReasons),
	)
	return summary, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 20 {
		return title
	}
	return string(runes[:20]) + "..."
}
