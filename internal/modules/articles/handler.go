package articles

import (
	"errors"

	"github.com/easynews/core/internal/pkg/pagination"
	"github.com/easynews/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the gated read endpoints.
type Handler struct {
	svc    *Service
	cache  *ListCache
	logger *zap.Logger
}

func NewHandler(svc *Service, cache *ListCache, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, cache: cache, logger: logger}
}

// RegisterRoutes mounts the read endpoints on a group that already carries
// the access gate middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/articles", h.list)
	rg.GET("/articles/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	category := c.Query("category")

	if cached, ok := h.cache.Get(c.Request.Context(), q.Page, q.Limit, category); ok {
		response.Paged(c, cached.Items, cached.Pagination)
		return
	}

	items, page, err := h.svc.List(c.Request.Context(), q, category)
	if err != nil {
		h.logger.Error("article list failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.cache.Put(c.Request.Context(), q.Page, q.Limit, category, items, page)
	response.Paged(c, items, page)
}

func (h *Handler) get(c *gin.Context) {
	article, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		h.logger.Error("article lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, article)
}
