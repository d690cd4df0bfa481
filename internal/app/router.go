package app

import (
	"aula_backend/internal/config"
	"aula_backend/internal/middleware"
	"aula_backend/internal/model"
	"aula_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.Use(middleware.RequestID())

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: both registration/login surfaces.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/student/register", c.auth.RegisterStudent)
			auth.POST("/student/login", c.auth.LoginStudent)
			auth.POST("/teacher/register", c.auth.RegisterTeacher)
			auth.POST("/teacher/login", c.auth.LoginTeacher)
		}
	}

	// Authenticated routes. Quiz submission only registers POST, so other
	// methods fall out as client errors without extra handling.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/quiz/attempts", c.quiz.SubmitQuiz)
		authGroup.GET("/quiz/attempts", c.quiz.ListAttempts)

		// The level menu is a student surface; admins pass every gate.
		authGroup.GET("/levels/:level/status",
			middleware.RoleMiddleware(model.Student), c.quiz.LevelStatus)
	}
}
