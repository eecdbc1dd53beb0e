package config

import "os"

// Config is the env-driven server configuration.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	RedisAddr string
	LogLevel  string
}

// Load reads configuration from the environment, with development
// defaults for anything unset.
func Load() Config {
	return Config{
		Port:      envOr("PORT", "8080"),
		MongoURI:  envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   envOr("MONGO_DB", "oppositerush"),
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		LogLevel:  envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
