package server

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/joycelim/callheat/internal/util"
)

// Config holds the serve-mode settings, read from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	DataDir        string
	CacheDir       string
	LocalZone      string
	RemoteZone     string
}

// LoadConfig loads serve configuration from environment variables, with a
// .env file honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataDir:        getEnv("DATA_DIR", ""),
		CacheDir:       getEnv("CACHE_DIR", ""),
		LocalZone:      getEnv("LOCAL_ZONE", util.DefaultLocalZone),
		RemoteZone:     getEnv("REMOTE_ZONE", util.DefaultRemoteZone),
	}

	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
