package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moodboard/pkg/logger"
	"moodboard/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(feedbackHandler *FeedbackHandler, uploadDir string, uploadBaseURL string) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("moodboard"))

	// CORS настройки: API вызывается из браузерного фронтенда
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "moodboard",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Загруженные изображения отдаются как статика
	router.Static(uploadBaseURL, uploadDir)

	feedback := router.Group("/feedback")
	{
		feedback.GET("", feedbackHandler.ListFeedback)
		feedback.POST("", feedbackHandler.CreateFeedback)
		feedback.GET("/:id", feedbackHandler.GetFeedback)
	}

	return router
}
