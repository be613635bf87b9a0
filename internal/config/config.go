package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBPath           string
	JwtSecret        string
	CorsAllowOrigins string
	SeedDemoData     bool
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		DBPath:           getEnv("DATABASE_PATH", "inventory.db"),
		JwtSecret:        getEnv("JWT_SECRET", "change-me-in-prod"),
		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		SeedDemoData:     getEnvBool("SEED_DEMO_DATA", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	val, err := strconv.ParseBool(strValue)
	if err != nil {
		return fallback
	}
	return val
}
