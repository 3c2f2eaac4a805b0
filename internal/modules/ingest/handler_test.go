package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/modules/source"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func triggerRouter(cfg *config.AppConfig, svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(cfg, svc, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func triggerService(fetcher Fetcher) *Service {
	return NewService(testNewsConfig(), fetcher, &fakeEnricher{}, newFakeStore(), nil, zap.NewNop())
}

func getTrigger(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestTriggerEnforcesSecretOutsideDevelopment(t *testing.T) {
	cfg := &config.AppConfig{Env: "production"}
	cfg.News.APIKey = "nd-key"
	cfg.News.CronSecret = "hush"
	r := triggerRouter(cfg, triggerService(&fakeFetcher{}))

	assert.Equal(t, http.StatusUnauthorized, getTrigger(r, "/api/cron/fetch-news").Code)
	assert.Equal(t, http.StatusUnauthorized, getTrigger(r, "/api/cron/fetch-news?secret=wrong").Code)
	assert.Equal(t, http.StatusOK, getTrigger(r, "/api/cron/fetch-news?secret=hush").Code)
}

func TestTriggerSkipsSecretInDevelopment(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	cfg.News.APIKey = "nd-key"
	cfg.News.CronSecret = "hush"
	r := triggerRouter(cfg, triggerService(&fakeFetcher{}))

	assert.Equal(t, http.StatusOK, getTrigger(r, "/api/cron/fetch-news").Code)
}

func TestTriggerReportsMissingUpstreamKey(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	r := triggerRouter(cfg, triggerService(&fakeFetcher{}))

	w := getTrigger(r, "/api/cron/fetch-news")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"news api_key not configured"}`, w.Body.String())
}

func TestTriggerMapsUpstreamFailureTo502(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	cfg.News.APIKey = "nd-key"
	svc := triggerService(&fakeFetcher{err: fmt.Errorf("%w: status 429", source.ErrUpstream)})

	r := triggerRouter(cfg, svc)
	w := getTrigger(r, "/api/cron/fetch-news")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"News Data API failed"}`, w.Body.String())
}

func TestTriggerMapsOtherFailuresTo500(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	cfg.News.APIKey = "nd-key"
	svc := triggerService(&fakeFetcher{err: assert.AnError})

	r := triggerRouter(cfg, svc)
	w := getTrigger(r, "/api/cron/fetch-news")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTriggerSuccessPayload(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	cfg.News.APIKey = "nd-key"

	r := triggerRouter(cfg, triggerService(&fakeFetcher{items: nil}))
	w := getTrigger(r, "/api/cron/fetch-news")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success        bool           `json:"success"`
		Message        string         `json:"message"`
		TotalFetched   int            `json:"totalFetched"`
		Processed      int            `json:"processed"`
		Skipped        int            `json:"skipped"`
		SkippedReasons map[string]int `json:"skippedReasons"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Processed 0 new articles", body.Message)
	assert.Equal(t, 0, body.TotalFetched)
	assert.Contains(t, body.SkippedReasons, "already_exists")
	assert.NotContains(t, w.Body.String(), "debug_skippedItems")
}

func TestTriggerIncludesSkipDiagnostics(t *testing.T) {
	cfg := &config.AppConfig{Env: "development"}
	cfg.News.APIKey = "nd-key"
	svcCfg := testNewsConfig()
	svcCfg.MinContentLength = 1000
	svc := NewService(svcCfg, &fakeFetcher{items: []source.Item{candidate("a0")}},
		&fakeEnricher{}, newFakeStore(), nil, zap.NewNop())

	r := triggerRouter(cfg, svc)
	w := getTrigger(r, "/api/cron/fetch-news")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SkippedItems []struct {
			Title      string `json:"title"`
			ContentLen int    `json:"contentLen"`
			HasImage   bool   `json:"hasImage"`
		} `json:"debug_skippedItems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.SkippedItems, 1)
	assert.Equal(t, "a0", body.SkippedItems[0].Title)
	assert.False(t, body.SkippedItems[0].HasImage)
}
