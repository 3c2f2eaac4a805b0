package articles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easynews/core/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readRouter(svc *Service, cache *ListCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, cache, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListEnvelopeAndPagination(t *testing.T) {
	db := testDB(t)
	seedArticles(t, db, 25)
	r := readRouter(NewService(db), nil)

	w, body := getJSON(t, r, "/api/articles?page=2&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, body["success"])
	data := body["data"].([]interface{})
	assert.Len(t, data, 10)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "title-10", first["title"])

	p := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, p["page"])
	assert.EqualValues(t, 10, p["limit"])
	assert.EqualValues(t, 25, p["total"])
	assert.EqualValues(t, 3, p["totalPages"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "1.0.0", meta["version"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestListClampsOversizedLimit(t *testing.T) {
	db := testDB(t)
	seedArticles(t, db, 3)
	r := readRouter(NewService(db), nil)

	w, body := getJSON(t, r, "/api/articles?limit=1000")
	require.Equal(t, http.StatusOK, w.Code)

	p := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 50, p["limit"])
}

func TestListAppliesCategoryFilter(t *testing.T) {
	db := testDB(t)
	seedArticles(t, db, 10)
	r := readRouter(NewService(db), nil)

	w, body := getJSON(t, r, "/api/articles?category=science")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].([]interface{})
	require.Len(t, data, 5)
	for _, raw := range data {
		assert.Equal(t, "science", raw.(map[string]interface{})["category"])
	}
}

func TestListServesFromCacheUntilInvalidated(t *testing.T) {
	db := testDB(t)
	seedArticles(t, db, 1)
	cache := testCache(t)
	r := readRouter(NewService(db), cache)

	_, body := getJSON(t, r, "/api/articles")
	assert.Len(t, body["data"].([]interface{}), 1)

	// A write that bypasses the pipeline is invisible until invalidation.
	extra := models.ArticleModel{
		OriginalID:     "orig-extra",
		Title:          "late arrival",
		SimplifiedText: "simple",
		ChineseSummary: "摘要",
	}
	require.NoError(t, db.Create(&extra).Error)

	_, body = getJSON(t, r, "/api/articles")
	assert.Len(t, body["data"].([]interface{}), 1, "second read must come from the cache")

	cache.Invalidate(context.Background())

	_, body = getJSON(t, r, "/api/articles")
	assert.Len(t, body["data"].([]interface{}), 2)
}

func TestGetByIDEndpoint(t *testing.T) {
	db := testDB(t)
	seeded := seedArticles(t, db, 1)
	r := readRouter(NewService(db), nil)

	w, body := getJSON(t, r, "/api/articles/"+seeded[0].ID)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "orig-0", data["originalId"])

	w, body = getJSON(t, r, "/api/articles/no-such-id")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", body["error"])
}
