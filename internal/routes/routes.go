package routes

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/neocaptain/Rhythmish/internal/handlers"
	"github.com/neocaptain/Rhythmish/internal/middleware"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	analysisHandler *handlers.AnalysisHandler,
	discoverHandler *handlers.DiscoverHandler,
	songHandler *handlers.SongHandler,
	profileHandler *handlers.ProfileHandler,
) *gin.Engine {

	router := gin.New()

	// =========================
	// GLOBAL MIDDLEWARE
	// =========================
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// =========================
	// CORS CONFIG (DEV / PROD)
	// =========================
	env := os.Getenv("ENV") // development | production
	frontendURL := os.Getenv("CORS_ORIGIN")

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if env == "production" {
		// 🔒 PROD MODE: Require CORS_ORIGIN to be explicitly set
		if frontendURL == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is NOT set in production!")
		}
		corsConfig.AllowOrigins = []string{frontendURL}
		log.Printf("✅ CORS configured for production: %s", frontendURL)
	} else {
		// 🔓 DEV MODE: Allow flexible origins
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:3001",
			"http://127.0.0.1:5173",
		}

		// If CORS_ORIGIN set in dev, also add it
		if frontendURL != "" {
			allowedOrigins = append(allowedOrigins, frontendURL)
		}

		corsConfig.AllowOriginFunc = func(origin string) bool {
			// Allow all localhost/127.0.0.1 variants
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			// Allow local network IPs (192.168.x.x, 10.x.x.x)
			if strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.") {
				return true
			}
			return false
		}
		log.Printf("✅ CORS configured for development with %d allowed origins", len(allowedOrigins))
	}

	router.Use(cors.New(corsConfig))

	// =========================
	// SECURITY HEADERS MIDDLEWARE
	// =========================
	router.Use(func(c *gin.Context) {
		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")
		// Enable XSS protection
		c.Header("X-XSS-Protection", "1; mode=block")
		// Referrer policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		// Content Security Policy (lenient for API)
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// =========================
	// API ROUTES
	// =========================
	api := router.Group("/api")
	{
		// ---------- AUTH ----------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authProtected := auth.Group("/")
			authProtected.Use(middleware.JWTMiddleware())
			{
				authProtected.GET("/me", authHandler.Me)
			}
		}

		// ---------- DISCOVER (trending is public, JWT optional) ----------
		discover := api.Group("/discover")
		discover.Use(middleware.OptionalJWTMiddleware())
		{
			discover.GET("/trending", discoverHandler.Trending)
		}

		// ---------- PROTECTED ----------
		protected := api.Group("/")
		protected.Use(middleware.JWTMiddleware())
		{
			// ANALYSIS SESSIONS
			sessions := protected.Group("/sessions")
			{
				sessions.POST("", analysisHandler.StartSession)
				sessions.GET("/:id", analysisHandler.State)
				sessions.POST("/:id/analyze", analysisHandler.Analyze)
				sessions.POST("/:id/cancel", analysisHandler.Cancel)
				sessions.POST("/:id/recommendations", analysisHandler.ShowRecommendations)
				sessions.POST("/:id/back", analysisHandler.BackToResult)
			}

			// MIXTAPE
			mixtape := protected.Group("/mixtape")
			{
				mixtape.GET("", discoverHandler.Mixtape)
				mixtape.GET("/message", discoverHandler.MixtapeMessage)
			}

			// USER
			user := protected.Group("/user")
			{
				user.POST("/favorites", songHandler.ToggleFavorite)
				user.GET("/favorites", songHandler.GetFavorites)
				user.DELETE("/favorites/:id", songHandler.RemoveFavorite)
				user.POST("/feedback", songHandler.ReportFeedback)
				user.POST("/playlist", songHandler.AddToPlaylist)
				user.POST("/share", songHandler.Share)
				user.GET("/history", profileHandler.History)
				user.GET("/stats", profileHandler.Stats)
			}
		}
	}

	// =========================
	// HEALTH & ROOT
	// =========================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Rhythmish API",
			"version": "1.0.0",
		})
	})

	return router
}
