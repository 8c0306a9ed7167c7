package source

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// UnknownYear is returned by DeriveYear when the URL carries no box-score year
const UnknownYear = "Unknown"

// GameInfoURL is the box-score page the Game_Info sheet is built from
const GameInfoURL = "https://www.pro-football-reference.com/boxscores/202409120mia.htm"

var yearPattern = regexp.MustCompile(`boxscores/(\d{4})`)

// Source is one page to scrape
type Source struct {
	URL         string `json:"url"`
	TableID     string `json:"table_id"`
	Description string `json:"desc"`
}

// Defaults returns the built-in source list in scrape order
func Defaults() []Source {
	return []Source{
		{
			URL:         "https://www.pro-football-reference.com/boxscores/202409120mia.htm#all_expected_points",
			TableID:     "all_expected_points",
			Description: "Expected Points Added",
		},
		{
			URL:         "https://www.pro-football-reference.com/boxscores/202409230buf.htm#all_vis_drives",
			TableID:     "vis_drives",
			Description: "Average Points by Drives",
		},
		{
			URL:         "https://www.pro-football-reference.com/boxscores/202409120mia.htm#all_team_stats",
			TableID:     "team_stats",
			Description: "Team Stats",
		},
		{
			URL:         "https://www.pro-football-reference.com/boxscores/202409080buf.htm",
			TableID:     "passing_advanced",
			Description: "Advanced Passing Stats",
		},
		{URL: "https://www.teamrankings.com/nfl/trends/ats_trends/", Description: "ATS Trends"},
		{URL: "https://www.teamrankings.com/nfl/ranking/schedule-strength-by-other", Description: "Schedule Strength"},
		{URL: "https://www.teamrankings.com/nfl/trend/win_trends/is_home_dog", Description: "Win Trends - Home Underdog"},
		{URL: "https://www.espn.com/nfl/matchup/_/gameId/401671617", Description: "Matchup Info"},
	}
}

// DeriveYear returns the four digits following "boxscores/" in url,
// or UnknownYear if there are none
func DeriveYear(url string) string {
	if matches := yearPattern.FindStringSubmatch(url); matches != nil {
		return matches[1]
	}
	return UnknownYear
}

// SheetName converts a description into a sheet name
func SheetName(description string) string {
	return strings.ReplaceAll(description, " ", "_")
}

// LoadFile reads a JSON array of sources from path
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var sources []Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	for i, src := range sources {
		if strings.TrimSpace(src.URL) == "" {
			return nil, fmt.Errorf("source %d: url is required", i)
		}
		if strings.TrimSpace(src.Description) == "" {
			return nil, fmt.Errorf("source %d: desc is required", i)
		}
	}

	return sources, nil
}
