// Package config loads command configuration from the environment and
// builds the diagnostic logger.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config holds settings shared by the parley commands. Flags registered by
// RegisterFlags override the environment.
type Config struct {
	DeckFile string `env:"PARLEY_DECKS"     envDefault:"decks.yaml"`
	Port     string `env:"PARLEY_PORT"      envDefault:"7777"`
	WebAddr  string `env:"PARLEY_WEB_ADDR"  envDefault:":8080"`
	DBPath   string `env:"PARLEY_DB"`
	LogLevel string `env:"PARLEY_LOG_LEVEL" envDefault:"info"`
	Seed     int64  `env:"PARLEY_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds the common flags to cfg, using its current values as
// defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.DeckFile, "decks", cfg.DeckFile, "path to the cards and decks YAML file")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "TCP port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for battle results (empty disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level (debug, info, warn, error)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 for random)")
}

// NewLogger builds a console zap logger writing to stderr at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
