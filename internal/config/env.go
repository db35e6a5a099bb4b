package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; a missing file
// is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.DataDir = getEnv("ANNOTI_DATA_DIR", cfg.DataDir)
	cfg.DBPath = getEnv("ANNOTI_DB_PATH", cfg.DBPath)
	cfg.UserName = getEnv("ANNOTI_USER_NAME", cfg.UserName)
	cfg.LogLevel = getEnv("ANNOTI_LOG_LEVEL", cfg.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
