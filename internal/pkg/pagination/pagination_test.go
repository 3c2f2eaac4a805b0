package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/articles?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(contextWithQuery(""))
	assert.Equal(t, Query{Page: 1, Limit: 10}, q)
}

func TestFromContextClampsLimit(t *testing.T) {
	q := FromContext(contextWithQuery("page=2&limit=1000"))
	assert.Equal(t, Query{Page: 2, Limit: 50}, q)
}

func TestFromContextRejectsGarbage(t *testing.T) {
	q := FromContext(contextWithQuery("page=abc&limit=-5"))
	assert.Equal(t, Query{Page: 1, Limit: 10}, q)
}

func TestClampBounds(t *testing.T) {
	assert.Equal(t, Query{Page: 1, Limit: 10}, Clamp(0, 0))
	assert.Equal(t, Query{Page: 1, Limit: 10}, Clamp(-3, -1))
	assert.Equal(t, Query{Page: 7, Limit: 50}, Clamp(7, 51))
	assert.Equal(t, Query{Page: 7, Limit: 50}, Clamp(7, 50))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Query{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 100, Query{Page: 3, Limit: 50}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(100, 0))
}
