package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath              string
	ServerPort          string
	LogLevel            string
	CurrentSeasonID     string
	MatchmakingInterval time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	interval, err := time.ParseDuration(getEnv("MATCHMAKING_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid MATCHMAKING_INTERVAL: %w", err)
	}

	cfg := &Config{
		DBPath:              getEnv("DB_PATH", "file:rift-league.db?_txlock=immediate"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CurrentSeasonID:     getEnv("CURRENT_SEASON_ID", "season-1"),
		MatchmakingInterval: interval,
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("season_id", cfg.CurrentSeasonID).
		Dur("matchmaking_interval", cfg.MatchmakingInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
