package server

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lumina-backend/internal/handlers"
	"github.com/yungbote/lumina-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins string

	AuthMiddleware *middleware.AuthMiddleware

	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	ProgressHandler    *handlers.ProgressHandler
	DailyHandler       *handlers.DailyHandler
	JournalHandler     *handlers.JournalHandler
	ReportHandler      *handlers.ReportHandler
	CommunityHandler   *handlers.CommunityHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	CoachHandler       *handlers.CoachHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/me/progress", cfg.ProgressHandler.GetMine)

		protected.GET("/daily/questions", cfg.DailyHandler.GetQuestions)
		protected.GET("/daily/challenge", cfg.DailyHandler.GetChallenge)
		protected.POST("/daily/challenge/complete", cfg.DailyHandler.CompleteChallenge)

		protected.POST("/journals", cfg.JournalHandler.Submit)
		protected.GET("/journals", cfg.JournalHandler.List)

		protected.POST("/reports", cfg.ReportHandler.Generate)
		protected.GET("/reports", cfg.ReportHandler.List)

		protected.GET("/community/posts", cfg.CommunityHandler.List)
		protected.POST("/community/posts/:id/like", cfg.CommunityHandler.Like)

		protected.GET("/leaderboard", cfg.LeaderboardHandler.Top)

		protected.POST("/coach/chat", cfg.CoachHandler.Chat)
	}

	// Admin
	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.PATCH("/users/:id", cfg.AdminHandler.UpdateUser)
		admin.DELETE("/users/:id", cfg.AdminHandler.DeleteUser)

		admin.GET("/journals", cfg.AdminHandler.ListJournals)
		admin.DELETE("/journals/:id", cfg.AdminHandler.DeleteJournal)

		admin.DELETE("/community/posts/:id", cfg.AdminHandler.DeletePost)
	}

	return router
}
