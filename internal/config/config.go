package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	Data      DataConfig
	Simulator SimulatorConfig
	Graph     GraphConfig
	Archive   ArchiveConfig
	Logging   LoggingConfig
}

// DataConfig locates the flat-file data directory.
type DataConfig struct {
	Dir string
}

// SimulatorConfig governs the concurrent transaction simulator.
type SimulatorConfig struct {
	JoinTimeout time.Duration
}

// GraphConfig describes connectivity to the optional ledger graph mirror.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ArchiveConfig describes the optional Postgres ledger archive.
type ArchiveConfig struct {
	DSN     string
	Workers int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultDataDir        = "data"
	defaultJoinTimeout    = 5 * time.Second
	defaultLoggingLevel   = "info"
	defaultLoggingFormat  = "text"
	defaultGraphMaxSess   = 10
	defaultArchiveWorkers = 4
)

// Load reads configuration from the environment, applying defaults. A
// .env file in the working directory is honoured when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Data: DataConfig{
			Dir: valueOrDefault("DATA_DIR", defaultDataDir),
		},
		Simulator: SimulatorConfig{
			JoinTimeout: defaultJoinTimeout,
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSess),
		},
		Archive: ArchiveConfig{
			DSN:     os.Getenv("ARCHIVE_DSN"),
			Workers: parseIntWithDefault("ARCHIVE_WORKERS", defaultArchiveWorkers),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("SIM_JOIN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIM_JOIN_TIMEOUT: %w", err)
		}
		cfg.Simulator.JoinTimeout = d
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
