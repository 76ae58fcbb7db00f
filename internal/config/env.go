package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret    string
	AuthDisabled bool

	CORSOrigins []string
}

// LoadEnv reads configuration from the environment, seeding it from a local
// .env file when one exists.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBHost: getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName: getEnv("DB_NAME", "train_booking"),

		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AuthDisabled: strings.EqualFold(getEnv("AUTH_DISABLED", ""), "true"),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
