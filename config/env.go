package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPort = "8080"

// LoadEnv reads the optional .env file. Missing file is fine: deployments
// inject real environment variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		GetLogger().Info("no .env file found, using process environment")
	}
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return defaultPort
	}
	return port
}

func GetGinMode() string {
	return os.Getenv("GIN_MODE")
}

// GetCorsOrigins returns the allowed origins for the dashboard frontend.
// CORS_ORIGINS is a comma separated list; empty means allow all (dev).
func GetCorsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
