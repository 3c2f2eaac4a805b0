package app

import (
	"time"

	"github.com/easynews/core/internal/middleware"
	"github.com/easynews/core/internal/modules/articles"
	"github.com/easynews/core/internal/modules/enrich"
	"github.com/easynews/core/internal/modules/health"
	"github.com/easynews/core/internal/modules/ingest"
	"github.com/easynews/core/internal/modules/source"
	"github.com/easynews/core/internal/pkg/ratelimit"
	pkgredis "github.com/easynews/core/internal/pkg/redis"
)

// registerRoutes wires every module under /api and returns the ingestion
// service so cron registration can reuse it.
func (a *App) registerRoutes(rc *pkgredis.Client) *ingest.Service {
	cfg := a.cfg

	sourceClient := source.New(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Categories, a.logger.Named("source"))
	enricher := enrich.New(cfg.LLM, a.logger.Named("enrich"))
	listCache := articles.NewListCache(rc, cfg.API.CacheTTL, a.logger.Named("cache"))

	ingestSvc := ingest.NewService(cfg.News, sourceClient, enricher,
		ingest.NewGormStore(a.db), listCache, a.logger.Named("ingest"))
	articleSvc := articles.NewService(a.db)

	var store ratelimit.Store
	if cfg.API.RateLimitStore == "redis" {
		store = ratelimit.NewRedisStore(rc.Raw())
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(store, cfg.API.RateLimit, time.Hour)

	api := a.router.Group("/api")

	health.RegisterRoutes(api, a.db, a.sched, cfg)
	ingest.NewHandler(cfg, ingestSvc, a.logger.Named("ingest")).RegisterRoutes(api)

	gated := api.Group("", middleware.AccessGate(cfg.API, limiter))
	articles.NewHandler(articleSvc, listCache, a.logger.Named("articles")).RegisterRoutes(gated)

	return ingestSvc
}
