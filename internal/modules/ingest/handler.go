package ingest

import (
	"errors"
	"fmt"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/modules/source"
	"github.com/easynews/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the HTTP trigger for an ingestion run.
type Handler struct {
	cfg    *config.AppConfig
	svc    *Service
	logger *zap.Logger
}

func NewHandler(cfg *config.AppConfig, svc *Service, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cron/fetch-news", h.trigger)
}

// trigger runs the pipeline once. When a cron secret is configured it must be
// supplied via the secret query parameter; local development bypasses the
// check so the route stays testable without credentials.
func (h *Handler) trigger(c *gin.Context) {
	secret := h.cfg.News.CronSecret
	if secret != "" && !h.cfg.IsDev() {
		if c.Query("secret") != secret {
			response.Unauthorized(c, "Unauthorized")
			return
		}
	}

	if h.cfg.News.APIKey == "" && h.cfg.Env != "production" {
		c.AbortWithStatusJSON(500, gin.H{"error": "news api_key not configured"})
		return
	}

	summary, err := h.svc.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, source.ErrUpstream) {
			h.logger.Error("news upstream failed", zap.Error(err))
			response.BadGateway(c, "News Data API failed")
			return
		}
		h.logger.Error("ingestion run failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	payload := gin.H{
		"success":        true,
		"message":        fmt.Sprintf("Processed %d new articles", summary.Processed),
		"totalFetched":   summary.TotalFetched,
		"processed":      summary.Processed,
		"skipped":        summary.Skipped,
		"skippedReasons": summary.SkippedReasons,
		"configuration":  summary.Configuration,
	}
	if len(summary.SkippedItems) > 0 {
		payload["debug_skippedItems"] = summary.SkippedItems
	}
	c.JSON(200, payload)
}
