package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/statusstack/api/handlers"
	"github.com/customeros/statusstack/api/middleware"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/validation"
	"github.com/customeros/statusstack/services"
)

const AppSource = "statusstack"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, validator *validation.Validator, log logger.Logger, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}

	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery

	apiHandlers := handlers.InitHandlers(s, validator, log)

	// Health check (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-API-KEY",
		ValidAPIKey: apikey,
	})

	rest := r.Group("/rest")
	rest.Use(apiKeyMiddleware)
	rest.Use(middleware.UserLoginMiddleware())
	rest.Use(middleware.CustomContextMiddleware(AppSource))
	rest.Use(middleware.TracingMiddleware())
	{
		statuses := rest.Group("/statuses")
		{
			statuses.POST("/update", apiHandlers.Statuses.PostStatus())
			statuses.POST("/attachment/update", apiHandlers.Statuses.PostAttachment())
			statuses.POST("/discussion", apiHandlers.Statuses.ReplyToStatus())
			statuses.POST("/destroy/:statusId", apiHandlers.Statuses.DestroyStatus())
			statuses.GET("/show/:statusId", apiHandlers.Statuses.ShowStatus())
			statuses.GET("/attachment/show/:statusId", apiHandlers.Statuses.ShowAttachment())
			statuses.GET("/details/:statusId", apiHandlers.Statuses.StatusDetails())
			statuses.POST("/share/:statusId", apiHandlers.Statuses.ShareStatus())
			statuses.GET("/home_timeline", apiHandlers.Statuses.HomeTimeline())
			statuses.GET("/user_timeline", apiHandlers.Statuses.UserTimeline())
		}
	}
}
