package config

import (
	"os"
	"time"

	"dota-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	OpenDotaAPIKey string
	OpenDotaURL    string
	DBPath         string
	ServerPort     string
	LogLevel       string
	HeroCacheTTL   time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		OpenDotaAPIKey: getEnv("OPENDOTA_API_KEY", ""),
		OpenDotaURL:    getEnv("OPENDOTA_URL", "https://api.opendota.com"),
		DBPath:         getEnv("DB_PATH", "dota.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HeroCacheTTL:   getDuration("HERO_CACHE_TTL", constants.HeroCacheTTL),
	}

	// OpenDota serves anonymous traffic at a lower rate limit, so the key
	// stays optional.
	logger.Info().
		Str("opendota_url", cfg.OpenDotaURL).
		Bool("opendota_key_set", cfg.OpenDotaAPIKey != "").
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("hero_cache_ttl", cfg.HeroCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
