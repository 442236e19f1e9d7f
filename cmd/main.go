package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yungbote/lumina-backend/internal/db"
	"github.com/yungbote/lumina-backend/internal/handlers"
	"github.com/yungbote/lumina-backend/internal/middleware"
	"github.com/yungbote/lumina-backend/internal/platform/gemini"
	"github.com/yungbote/lumina-backend/internal/platform/logger"
	"github.com/yungbote/lumina-backend/internal/repos"
	"github.com/yungbote/lumina-backend/internal/server"
	"github.com/yungbote/lumina-backend/internal/services"
	"github.com/yungbote/lumina-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	allowedOrigins := utils.GetEnv("ALLOWED_ORIGINS", "", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional; leaderboard degrades to Postgres without it)
	rdb := db.NewRedisClient(log)

	// Gemini
	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Warn("Gemini init failed, fallback content only", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)
	dailyRepo := repos.NewDailyArtifactRepo(thePG, log)
	journalRepo := repos.NewJournalRepo(thePG, log)
	reportRepo := repos.NewReportRepo(thePG, log)
	communityRepo := repos.NewCommunityRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	textGenService := services.NewTextGenService(geminiClient, log)
	authService := services.NewAuthService(
		thePG, log, userRepo, progressRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	leaderboardService := services.NewLeaderboardService(log, rdb, progressRepo, userRepo)
	progressService := services.NewProgressService(thePG, log, progressRepo, dailyRepo, leaderboardService)
	dailyService := services.NewDailyService(thePG, log, dailyRepo, textGenService)
	communityService := services.NewCommunityService(thePG, log, communityRepo, userRepo)
	journalService := services.NewJournalService(thePG, log, journalRepo, userRepo, progressService, communityService, textGenService, leaderboardService)
	reportService := services.NewReportService(thePG, log, reportRepo, journalRepo, progressRepo, textGenService)
	coachService := services.NewCoachService(log, textGenService)
	adminService := services.NewAdminService(thePG, log, userRepo, progressRepo, journalRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:     allowedOrigins,
		AuthMiddleware:     authMiddleware,
		HealthcheckHandler: handlers.NewHealthcheckHandler(),
		AuthHandler:        handlers.NewAuthHandler(authService),
		ProgressHandler:    handlers.NewProgressHandler(progressService),
		DailyHandler:       handlers.NewDailyHandler(dailyService, progressService),
		JournalHandler:     handlers.NewJournalHandler(journalService),
		ReportHandler:      handlers.NewReportHandler(reportService),
		CommunityHandler:   handlers.NewCommunityHandler(communityService),
		LeaderboardHandler: handlers.NewLeaderboardHandler(leaderboardService),
		CoachHandler:       handlers.NewCoachHandler(coachService),
		AdminHandler:       handlers.NewAdminHandler(adminService, communityService),
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
