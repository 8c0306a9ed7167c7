package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/nfl-scrape/internal/scraper"
	"github.com/pfrederiksen/nfl-scrape/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"NFL_SCRAPE_OUTPUT",
	"NFL_SCRAPE_SOURCES",
	"NFL_SCRAPE_GAME_INFO_URL",
	"NFL_SCRAPE_USER_AGENT",
	"NFL_SCRAPE_TIMEOUT",
	"NFL_SCRAPE_INTERVAL",
	"NFL_SCRAPE_UNCOMMENT",
	"NFL_SCRAPE_LOG_LEVEL",
	"NFL_SCRAPE_LOG_FORMAT",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if val, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, val) })
		}
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, "", cfg.SourcesFile)
	assert.Equal(t, source.GameInfoURL, cfg.GameInfoURL)
	assert.Equal(t, scraper.UserAgent, cfg.UserAgent)
	assert.Equal(t, scraper.Timeout, cfg.Timeout)
	assert.Equal(t, scraper.RequestInterval, cfg.RequestInterval)
	assert.True(t, cfg.Uncomment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NFL_SCRAPE_OUTPUT", "week2.xlsx")
	t.Setenv("NFL_SCRAPE_SOURCES", "sources.json")
	t.Setenv("NFL_SCRAPE_GAME_INFO_URL", "")
	t.Setenv("NFL_SCRAPE_USER_AGENT", "test-agent")
	t.Setenv("NFL_SCRAPE_TIMEOUT", "5s")
	t.Setenv("NFL_SCRAPE_INTERVAL", "0")
	t.Setenv("NFL_SCRAPE_UNCOMMENT", "no")
	t.Setenv("NFL_SCRAPE_LOG_LEVEL", "debug")
	t.Setenv("NFL_SCRAPE_LOG_FORMAT", "json")

	cfg := FromEnv()

	assert.Equal(t, "week2.xlsx", cfg.OutputPath)
	assert.Equal(t, "sources.json", cfg.SourcesFile)
	assert.Equal(t, "", cfg.GameInfoURL)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, time.Duration(0), cfg.RequestInterval)
	assert.False(t, cfg.Uncomment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestDurationEnv(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		allowZero bool
		want      time.Duration
	}{
		{"unset", "", false, time.Minute},
		{"valid", "90s", false, 90 * time.Second},
		{"invalid", "soon", false, time.Minute},
		{"negative", "-1s", true, time.Minute},
		{"zero rejected", "0s", false, time.Minute},
		{"zero allowed", "0s", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NFL_SCRAPE_TEST_DURATION", tt.raw)
			assert.Equal(t, tt.want, durationEnv("NFL_SCRAPE_TEST_DURATION", time.Minute, tt.allowZero))
		})
	}
}

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"0", true, false},
		{"False", true, false},
		{"no", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("NFL_SCRAPE_TEST_BOOL", tt.raw)
			assert.Equal(t, tt.want, boolEnv("NFL_SCRAPE_TEST_BOOL", tt.def))
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NFL_SCRAPE_OUTPUT=from-dotenv.xlsx\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { os.Unsetenv("NFL_SCRAPE_OUTPUT") })

	cfg := Load()

	assert.Equal(t, "from-dotenv.xlsx", cfg.OutputPath)
}
