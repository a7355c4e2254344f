package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eduforge/lms-backend/internal/http/handlers"
)

type RouterConfig struct {
	CORSOrigins       []string
	GenerationHandler *handlers.GenerationHandler
	SummarizeHandler  *handlers.SummarizeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/generate-assignment", cfg.GenerationHandler.GenerateAssignment)
		api.POST("/generate-quiz", cfg.GenerationHandler.GenerateQuiz)
		api.POST("/generate-practice", cfg.GenerationHandler.GeneratePractice)
		api.POST("/summarize-lecture", cfg.SummarizeHandler.SummarizeLecture)
	}

	return router
}
