package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server configuration, sourced from the environment with
// an optional .env file on top.
type Config struct {
	BindAddr string
	DataDir  string
	GinMode  string
}

// Load reads .env (when present) and assembles the configuration. Missing
// values fall back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	return Config{
		BindAddr: ":" + getEnv("SHELFKEEP_PORT", "8080"),
		DataDir:  getEnv("SHELFKEEP_DATA_DIR", "./data"),
		GinMode:  getEnv("SHELFKEEP_GIN_MODE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
