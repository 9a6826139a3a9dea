package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/venkat374/course-tracker-backend/internal/middleware"
)

func NewRouter(recordHandler *RecordHandler, limiter *middleware.RateLimiter, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Identity())
	{
		records := api.Group("/records")
		{
			records.GET("", recordHandler.List)
			records.POST("", limiter.Limit("create_record", 30, time.Minute), recordHandler.Create)
			records.GET("/:id", recordHandler.GetOne)
			records.PUT("/:id", limiter.Limit("update_record", 60, time.Minute), recordHandler.Update)
			records.DELETE("/:id", recordHandler.Delete)
		}
	}

	return r
}
