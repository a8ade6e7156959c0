package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey  string
	GeminiModel   string
	YouTubeAPIKey string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	JWTSecret  string

	MoodRetentionDays int
	TrendingCacheTTL  int // seconds
}

var GlobalConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENV", "development") // default to development

	retentionDays, _ := strconv.Atoi(getEnv("MOOD_RETENTION_DAYS", "30"))
	cacheTTL, _ := strconv.Atoi(getEnv("TRENDING_CACHE_TTL", "3600"))

	// Set DB defaults based on environment
	var dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode string
	if env == "production" {
		dbHost = getEnv("DB_HOST", "")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "")
		dbPassword = getEnv("DB_PASSWORD", "")
		dbName = getEnv("DB_NAME", "")
		dbSSLMode = getEnv("DB_SSLMODE", "require")
	} else {
		dbHost = getEnv("DB_HOST", "localhost")
		dbPort = getEnv("DB_PORT", "5432")
		dbUser = getEnv("DB_USER", "postgres")
		dbPassword = getEnv("DB_PASSWORD", "password")
		dbName = getEnv("DB_NAME", "rhythmish")
		dbSSLMode = getEnv("DB_SSLMODE", "disable")
	}

	GlobalConfig = &Config{
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),

		DBHost:     dbHost,
		DBPort:     dbPort,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
		DBSSLMode:  dbSSLMode,

		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "default-jwt-secret-change-in-production"),

		MoodRetentionDays: retentionDays,
		TrendingCacheTTL:  cacheTTL,
	}

	if GlobalConfig.GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set, mood analysis requests will fail")
	}
	if GlobalConfig.YouTubeAPIKey == "" {
		log.Println("⚠️ YOUTUBE_API_KEY not set, video lookups disabled (placeholder thumbnails kept)")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
