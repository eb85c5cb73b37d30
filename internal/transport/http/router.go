package handlers

import (
	"time"

	"github.com/waste3d/learnpath-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins  []string
	ToggleRateLimit int
}

func NewRouter(
	progressHandler *ProgressHandler,
	courseHandler *CourseHandler,
	userHandler *UserHandler,
	limiter *middleware.RateLimiter,
	tokens middleware.TokenValidator,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = cfg.AllowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.AnonymousHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	toggleLimit := limiter.Limit("toggle", cfg.ToggleRateLimit, time.Minute)

	api := r.Group("/api/v1")
	{
		api.POST("/users/anonymous", userHandler.Anonymous)
		api.GET("/courses", courseHandler.List)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokens))
	{
		authed.POST("/users/sync", userHandler.Sync)
		authed.GET("/onboarding", userHandler.GetOnboarding)
		authed.PUT("/onboarding", userHandler.SaveOnboarding)

		authed.GET("/progress", progressHandler.Check)
		authed.GET("/enrollments", courseHandler.Enrollments)

		course := authed.Group("/courses")
		{
			course.GET("/last", courseHandler.Last)
			course.GET("/:id", courseHandler.GetOne)
			course.GET("/:id/enrollment", courseHandler.Enrollment)
			course.POST("/:id/enroll", courseHandler.Enroll)
			course.GET("/:id/progress", progressHandler.Load)
			course.POST("/:id/modules/:moduleId/start", progressHandler.StartModule)
			course.POST("/:id/modules/:moduleId/toggle", toggleLimit, progressHandler.ToggleModule)
			course.POST("/:id/videos/:videoId/toggle", toggleLimit, progressHandler.ToggleVideo)
			course.DELETE("/:id/snapshot", progressHandler.ClearSnapshot)
		}
	}

	return r
}
