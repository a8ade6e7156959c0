// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neocaptain/Rhythmish/internal/config"
	"github.com/neocaptain/Rhythmish/internal/database"
	"github.com/neocaptain/Rhythmish/internal/handlers"
	"github.com/neocaptain/Rhythmish/internal/moods"
	"github.com/neocaptain/Rhythmish/internal/repository"
	"github.com/neocaptain/Rhythmish/internal/routes"
	"github.com/neocaptain/Rhythmish/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG (SAFE)
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}

	// The mood dictionary is the backbone of classification and
	// personalization; a broken table is a deploy error.
	if err := moods.Validate(); err != nil {
		log.Fatal("❌ Mood dictionary invalid: ", err)
	}

	// =========================
	// CONNECT DATABASE (SAFE)
	// =========================
	if err := database.ConnectDB(); err != nil {
		log.Println("⚠️ Database connection failed:", err)
		log.Println("⚠️ App will continue running without database")
	} else if err := database.AutoMigrate(); err != nil {
		log.Println("⚠️ Database migration failed:", err)
	}

	// =========================
	// INIT REPOSITORIES
	// =========================
	userRepo := repository.NewUserRepository()
	moodRepo := repository.NewMoodRepository()
	likedRepo := repository.NewLikedSongRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	playlistRepo := repository.NewPlaylistRepository()
	cacheRepo := repository.NewCacheRepository()

	// =========================
	// INIT SERVICES
	// =========================
	classifier := services.NewGeminiClassifier()
	youtubeSvc := services.NewYouTubeService(cacheRepo)
	enricher := services.NewEnricher(youtubeSvc)
	historySvc := services.NewMoodHistoryService(moodRepo)
	flowSvc := services.NewFlowService(classifier, enricher, historySvc)
	personalizer := services.NewPersonalizer(moodRepo, likedRepo, classifier)
	actionSvc := services.NewActionService(playlistRepo, feedbackRepo)
	log.Println("✅ Analysis flow initialized")

	// =========================
	// INIT HANDLERS
	// =========================
	authHandler := handlers.NewAuthHandler(userRepo)
	analysisHandler := handlers.NewAnalysisHandler(flowSvc)
	discoverHandler := handlers.NewDiscoverHandler(youtubeSvc, personalizer, enricher, actionSvc)
	songHandler := handlers.NewSongHandler(likedRepo, actionSvc)
	profileHandler := handlers.NewProfileHandler(moodRepo, likedRepo)

	// =========================
	// ROUTES
	// =========================
	router := routes.SetupRoutes(
		authHandler,
		analysisHandler,
		discoverHandler,
		songHandler,
		profileHandler,
	)

	// =========================
	// PORT
	// =========================
	port := os.Getenv("PORT")
	if port == "" {
		port = config.GlobalConfig.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	bindAddr := "0.0.0.0:" + port

	// =========================
	// SERVER CONFIG
	// =========================
	server := &http.Server{
		Addr:         bindAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// =========================
	// START SERVER
	// =========================
	go func() {
		log.Println("🎵 =======================================")
		log.Println("🎵   RHYTHMISH API SERVER")
		log.Println("🎵 =======================================")
		log.Printf("🎵   Running on: %s", bindAddr)
		log.Println("🎵 =======================================")
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
