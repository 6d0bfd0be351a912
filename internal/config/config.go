package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  string
	SourceURL  string // Remote export to ingest on demand
	SourceFile string // Local export ingested at startup when set
	ExportDir  string
	CacheTTL   time.Duration
}

// Load reads configuration from the environment, after a best-effort .env
// load, with development defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", ":8080"),
		DBPath:     getEnv("DB_PATH", "./data/runs.db"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me-in-production"),
		SourceURL:  os.Getenv("SOURCE_URL"),
		SourceFile: os.Getenv("SOURCE_FILE"),
		ExportDir:  getEnv("EXPORT_DIR", "./data/export"),
		CacheTTL:   15 * time.Minute,
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
