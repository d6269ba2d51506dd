package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read once at startup.
type Config struct {
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	HTTPPort     string
	JWTSecret    string
	CookieSecure bool
}

// Load reads .env when present, then the environment, with local defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "questionnaires"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		JWTSecret:    getEnv("TOKEN_SECRET", "super-secret-key-change-in-production"),
		CookieSecure: getEnv("COOKIE_SECURE", "") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
