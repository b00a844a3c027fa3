package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"numbergalaxy/internal/config"
	"numbergalaxy/internal/database"
	"numbergalaxy/internal/handlers"
	"numbergalaxy/internal/repository"
	"numbergalaxy/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	factRepo := repository.NewFactRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	factService := service.NewFactService(factRepo)
	progressService := service.NewProgressService(progressRepo, factRepo, streakRepo, rewardRepo, quizRepo, assessmentRepo)
	streakService := service.NewStreakService(streakRepo, rewardRepo)
	characterService := service.NewCharacterService(progressRepo, streakRepo, rewardRepo)
	profileService := service.NewProfileService(profileRepo, progressService, streakRepo, rewardRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Seed the settings singleton on first run
	if err := settingsService.EnsureDefaults(); err != nil {
		log.Fatalf("Failed to seed default settings: %v", err)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(settingsService)
	profileHandler := handlers.NewProfileHandler(profileService)
	progressHandler := handlers.NewProgressHandler(progressService, factService, streakService, characterService, profileService)
	characterHandler := handlers.NewCharacterHandler(characterService, profileService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Setup routes
	mux := http.NewServeMux()

	// Profile routes
	mux.HandleFunc("GET /api/profiles", profileHandler.ListProfiles)
	mux.HandleFunc("POST /api/profiles", profileHandler.CreateProfile)
	mux.HandleFunc("GET /api/profiles/{id}", profileHandler.GetProfile)
	mux.HandleFunc("PUT /api/profiles/{id}", profileHandler.UpdateProfile)
	mux.HandleFunc("POST /api/profiles/{id}/select", profileHandler.SelectProfile)
	mux.HandleFunc("PUT /api/profiles/{id}/operations", profileHandler.SetOperations)
	mux.HandleFunc("PUT /api/profiles/{id}/difficulty", profileHandler.SetDifficulty)
	mux.HandleFunc("DELETE /api/profiles/{id}", middleware.RequireParentPin(profileHandler.DeleteProfile))

	// Progress routes
	mux.HandleFunc("GET /api/profiles/{id}/progress", progressHandler.GetProgress)
	mux.HandleFunc("POST /api/profiles/{id}/tables/{table}/teaching", progressHandler.CompleteTeaching)
	mux.HandleFunc("POST /api/profiles/{id}/tables/{table}/practice", progressHandler.CompleteGuidedPractice)
	mux.HandleFunc("POST /api/profiles/{id}/tables/{table}/quiz", progressHandler.SubmitQuiz)
	mux.HandleFunc("POST /api/profiles/{id}/facts", progressHandler.RecordFactAttempt)
	mux.HandleFunc("GET /api/profiles/{id}/facts/due", progressHandler.DueFacts)
	mux.HandleFunc("POST /api/profiles/{id}/stars", progressHandler.AwardStars)
	mux.HandleFunc("POST /api/profiles/{id}/stars/spend", progressHandler.SpendStars)
	mux.HandleFunc("POST /api/profiles/{id}/assessment", progressHandler.ApplyAssessment)
	mux.HandleFunc("GET /api/profiles/{id}/assessment", progressHandler.GetAssessment)
	mux.HandleFunc("POST /api/profiles/{id}/sessions", progressHandler.SaveSession)

	// Character routes
	mux.HandleFunc("GET /api/characters", characterHandler.Catalog)
	mux.HandleFunc("GET /api/profiles/{id}/characters", characterHandler.Unlocked)
	mux.HandleFunc("POST /api/profiles/{id}/characters/check", characterHandler.CheckUnlocks)

	// Settings routes
	mux.HandleFunc("GET /api/settings", settingsHandler.GetSettings)
	mux.HandleFunc("POST /api/settings/verify-pin", settingsHandler.VerifyPin)
	mux.HandleFunc("PUT /api/settings/pin", middleware.RequireParentPin(settingsHandler.UpdatePin))
	mux.HandleFunc("PUT /api/settings/break-reminder", middleware.RequireParentPin(settingsHandler.UpdateBreakReminder))
	mux.HandleFunc("PUT /api/settings/sound", middleware.RequireParentPin(settingsHandler.SetSound))
	mux.HandleFunc("PUT /api/settings/read-aloud", middleware.RequireParentPin(settingsHandler.SetReadAloud))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
