package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	JWTSecret       string
	JWTTTL          time.Duration
	WebhookSecret   string

	// Platform API base URLs, overridable for tests and staging.
	GitHubAPIBase     string
	LinkedInAPIBase   string
	CourseraAPIBase   string
	DevfolioAPIBase   string
	HackerRankAPIBase string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Env:             env,
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTTTL:          parseDuration(getEnv("JWT_TTL", "168h")),
		WebhookSecret:   getEnv("WEBHOOK_SECRET", ""),

		GitHubAPIBase:     getEnv("GITHUB_API_BASE", "https://api.github.com"),
		LinkedInAPIBase:   getEnv("LINKEDIN_API_BASE", "https://api.linkedin.com"),
		CourseraAPIBase:   getEnv("COURSERA_API_BASE", "https://api.coursera.org"),
		DevfolioAPIBase:   getEnv("DEVFOLIO_API_BASE", "https://api.devfolio.co"),
		HackerRankAPIBase: getEnv("HACKERRANK_API_BASE", "https://www.hackerrank.com"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(raw string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
