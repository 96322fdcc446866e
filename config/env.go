package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPort = "8080"

// LoadEnv reads .env if present; real env vars win over file values.
func LoadEnv() {
	godotenv.Load()
}

func GetPort() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	return port
}

func IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production")
}

func SeedSampleData() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("SEED_SAMPLE_DATA")), "true")
}

func CorsAllowedOrigins() []string {
	return splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
