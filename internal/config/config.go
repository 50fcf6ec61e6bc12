// Package config содержит логику чтения конфигурации сервиса пивной гонки.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmeshcher/beer-mile/internal/catalog"
	"github.com/mmeshcher/beer-mile/internal/scoring"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultDataFile   = "data.json"
	defaultLogLevel   = "info"
)

// Config содержит параметры конфигурации сервиса пивной гонки.
type Config struct {
	RunAddress     string   `env:"RUN_ADDRESS"`
	DataFile       string   `env:"DATA_FILE"`
	DatabaseURI    string   `env:"DATABASE_URI"`
	LogLevel       string   `env:"LOG_LEVEL"`
	TrackLength    int      `env:"TRACK_LENGTH"`
	PubCount       int      `env:"PUB_COUNT"`
	Teams          []string `env:"TEAMS" envSeparator:","`
	BeerTypes      []string `env:"BEER_TYPES" envSeparator:","`
	PenaltyReasons []string `env:"PENALTY_REASONS" envSeparator:","`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные из файла .env в рабочем каталоге подгружаются, если файл есть.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDataFile := cfg.DataFile
	envDatabaseURI := cfg.DatabaseURI
	envLogLevel := cfg.LogLevel
	envTrackLength := cfg.TrackLength
	envPubCount := cfg.PubCount

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DataFile, "f", defaultDataFile, "path to the JSON state file")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI, replaces the state file when set")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
	flag.IntVar(&cfg.TrackLength, "t", scoring.DefaultTrackLength, "race track length")
	flag.IntVar(&cfg.PubCount, "p", catalog.DefaultPubCount, "number of pubs on the route")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDataFile != "" {
		cfg.DataFile = envDataFile
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}
	if envTrackLength != 0 {
		cfg.TrackLength = envTrackLength
	}
	if envPubCount != 0 {
		cfg.PubCount = envPubCount
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.DataFile == "" && cfg.DatabaseURI == "" {
		cfg.DataFile = defaultDataFile
	}
	if cfg.TrackLength < 2 {
		return nil, fmt.Errorf("track length must be at least 2, got %d", cfg.TrackLength)
	}
	if cfg.PubCount < 1 {
		return nil, fmt.Errorf("pub count must be positive, got %d", cfg.PubCount)
	}

	cfg.Teams = cleanList(cfg.Teams)
	cfg.BeerTypes = cleanList(cfg.BeerTypes)
	cfg.PenaltyReasons = cleanList(cfg.PenaltyReasons)

	return cfg, nil
}

// Catalog возвращает каталог по умолчанию с учётом переопределений из окружения.
func (c *Config) Catalog() catalog.Catalog {
	return catalog.Default().WithOverrides(c.Teams, c.BeerTypes, c.PenaltyReasons, c.PubCount)
}

func cleanList(items []string) []string {
	var res []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
