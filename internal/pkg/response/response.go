package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported in the meta block of every successful list response.
const Version = "1.0.0"

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Meta carries response provenance for API consumers.
type Meta struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// OK sends a 200 response wrapped in the success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Paged sends a paginated success response with meta.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
		"meta": Meta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
		},
	})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not Found"})
}

// RateLimited sends a 429 error response including the configured limit and window.
func RateLimited(c *gin.Context, limit int, window string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":  "Rate limit exceeded",
		"limit":  limit,
		"window": window,
	})
}

// BadGateway sends a 502 error response for upstream collaborator failures.
func BadGateway(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": message})
}

// InternalError sends a generic 500 body. The underlying error is for the
// caller to log; it is never exposed to the client.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal Server Error",
	})
}
