package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/nfl-scrape/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the run summary in the specified format
func WriteOutput(w io.Writer, result *pipeline.Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, result *pipeline.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *pipeline.Result, verbose bool) error {
	if verbose {
		for _, sheet := range result.Sheets {
			fmt.Fprintf(w, "  SHEET: %s (%d rows)\n", sheet.Name, sheet.Rows)
		}
		for _, skip := range result.Skipped {
			if skip.Error != "" {
				fmt.Fprintf(w, "  SKIPPED: %s (%s: %s)\n", skip.Description, skip.Reason, skip.Error)
			} else {
				fmt.Fprintf(w, "  SKIPPED: %s (%s)\n", skip.Description, skip.Reason)
			}
		}
		if len(result.Sheets)+len(result.Skipped) > 0 {
			fmt.Fprintln(w)
		}
	}

	if !result.Written {
		fmt.Fprintln(w, "No data was scraped; no workbook written.")
		writeStats(w, result.Stats)
		return nil
	}

	fmt.Fprintf(w, "Data has been successfully written to %s!\n", result.OutputPath)
	fmt.Fprintf(w, "Total: %d sheets, %d sources skipped\n", len(result.Sheets), len(result.Skipped))
	writeStats(w, result.Stats)
	return nil
}

// writeStats prints the fetch counters; runs that fetched nothing print nothing
func writeStats(w io.Writer, stats pipeline.Stats) {
	if stats.Fetches == 0 {
		return
	}
	fmt.Fprintf(w, "Fetched %d pages in %s (avg %s), %d fetch errors\n",
		stats.Fetches,
		stats.FetchTotal.Round(time.Millisecond),
		stats.FetchAverage.Round(time.Millisecond),
		stats.FetchErrors,
	)
}
