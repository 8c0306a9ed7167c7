// Package config resolves run settings from the environment and an optional .env file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/nfl-scrape/internal/scraper"
	"github.com/pfrederiksen/nfl-scrape/internal/source"
)

// DefaultOutputPath is the workbook written when no path is configured
const DefaultOutputPath = "NFL_Data_Scraped.xlsx"

// Config holds everything a scrape run needs besides the source list itself
type Config struct {
	OutputPath      string
	SourcesFile     string
	GameInfoURL     string
	UserAgent       string
	Timeout         time.Duration
	RequestInterval time.Duration
	Uncomment       bool
	LogLevel        string
	LogFormat       string
}

// Load reads .env from the working directory if present, then the environment
func Load() *Config {
	// a missing .env is the normal case
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from NFL_SCRAPE_* variables, falling back to defaults
func FromEnv() *Config {
	return &Config{
		OutputPath:      getEnv("NFL_SCRAPE_OUTPUT", DefaultOutputPath),
		SourcesFile:     getEnv("NFL_SCRAPE_SOURCES", ""),
		GameInfoURL:     getEnvAllowEmpty("NFL_SCRAPE_GAME_INFO_URL", source.GameInfoURL),
		UserAgent:       getEnv("NFL_SCRAPE_USER_AGENT", scraper.UserAgent),
		Timeout:         durationEnv("NFL_SCRAPE_TIMEOUT", scraper.Timeout, false),
		RequestInterval: durationEnv("NFL_SCRAPE_INTERVAL", scraper.RequestInterval, true),
		Uncomment:       boolEnv("NFL_SCRAPE_UNCOMMENT", true),
		LogLevel:        getEnv("NFL_SCRAPE_LOG_LEVEL", "info"),
		LogFormat:       getEnv("NFL_SCRAPE_LOG_FORMAT", "console"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAllowEmpty treats a variable that is set to "" as an explicit empty value
func getEnvAllowEmpty(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(val)
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration, allowZero bool) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return defaultVal
	}
	return d
}

func boolEnv(key string, defaultVal bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultVal
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultVal
}
