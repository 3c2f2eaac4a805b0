package health

import (
	"crypto/subtle"
	"net/http"

	"github.com/easynews/core/internal/config"
	"github.com/easynews/core/internal/pkg/cron"
	"github.com/easynews/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts liveness and cron introspection endpoints. The cron
// group reuses the ingestion trigger secret; in development it is open.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, sched *cron.Scheduler, cfg *config.AppConfig) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.Ping() == nil

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
		})
	})

	cronGroup := rg.Group("/health/cron", secretGuard(cfg))
	{
		cronGroup.GET("", func(c *gin.Context) {
			response.OK(c, sched.List())
		})

		cronGroup.POST("/run/:name", func(c *gin.Context) {
			if err := sched.Run(c.Request.Context(), c.Param("name")); err != nil {
				response.NotFound(c)
				return
			}
			response.OK(c, gin.H{"message": "job triggered"})
		})

		cronGroup.GET("/task/:name", func(c *gin.Context) {
			result, err := sched.GetTask(c.Param("name"))
			if err != nil {
				response.NotFound(c)
				return
			}
			response.OK(c, result)
		})
	}
}

func secretGuard(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.News.CronSecret
		if secret == "" || cfg.IsDev() {
			c.Next()
			return
		}
		supplied := c.Query("secret")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			response.Unauthorized(c, "Unauthorized")
			return
		}
		c.Next()
	}
}
