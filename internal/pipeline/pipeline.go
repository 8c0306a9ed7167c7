// Package pipeline drives a scrape run: fetch each source in order, extract its
// table, and write every non-empty grid as a sheet of one workbook.
//
// Failures are per source. A page that cannot be fetched, a table that is not
// on the page, or a table with no rows is logged and skipped; the run carries
// on with the next source. Only a cancelled context or a failure to write the
// workbook file is returned as an error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-scrape/internal/grid"
	"github.com/pfrederiksen/nfl-scrape/internal/logger"
	"github.com/pfrederiksen/nfl-scrape/internal/scraper"
	"github.com/pfrederiksen/nfl-scrape/internal/source"
	"github.com/pfrederiksen/nfl-scrape/internal/workbook"
)

// GameInfoSheet is the sheet name used for the box-score metadata block
const GameInfoSheet = "Game_Info"

// Skip reasons reported in Result.Skipped
const (
	ReasonNoTableID     = "no table identifier"
	ReasonFetchFailed   = "fetch failed"
	ReasonTableNotFound = "table not found"
	ReasonNoData        = "no data"
)

// Fetcher retrieves and parses a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Options are the parameters of a run
type Options struct {
	Sources     []source.Source
	GameInfoURL string // empty skips the Game_Info sheet
	OutputPath  string
}

// SheetSummary describes one written sheet
type SheetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
}

// SkippedSource describes a source that produced no sheet
type SkippedSource struct {
	Description string `json:"description"`
	URL         string `json:"url"`
	Reason      string `json:"reason"`
	Error       string `json:"error,omitempty"`
}

// Metric names recorded during a run
const (
	MetricScraped     = "sources.scraped"
	MetricSkipped     = "sources.skipped"
	MetricFetch       = "fetch"
	MetricFetchErrors = "fetch.errors"
)

// Stats summarizes the counters and fetch timings of a run
type Stats struct {
	Scraped      int64         `json:"scraped"`
	Skipped      int64         `json:"skipped"`
	Fetches      int           `json:"fetches"`
	FetchErrors  int64         `json:"fetch_errors"`
	FetchTotal   time.Duration `json:"fetch_total_ns"`
	FetchAverage time.Duration `json:"fetch_average_ns"`
}

func statsFrom(m *logger.Metrics) Stats {
	fetch := m.Timing(MetricFetch)
	return Stats{
		Scraped:      m.Counter(MetricScraped),
		Skipped:      m.Counter(MetricSkipped),
		Fetches:      fetch.Count,
		FetchErrors:  m.Counter(MetricFetchErrors),
		FetchTotal:   fetch.Total,
		FetchAverage: fetch.Average,
	}
}

// Result reports what a run produced
type Result struct {
	OutputPath string          `json:"output_path"`
	Written    bool            `json:"written"`
	Sheets     []SheetSummary  `json:"sheets"`
	Skipped    []SkippedSource `json:"skipped"`
	Stats      Stats           `json:"stats"`
}

// runner carries the per-run state shared by the scrape steps
type runner struct {
	fetcher Fetcher
	metrics *logger.Metrics
}

// Run scrapes every source in opts.Sources, then the game info page, and
// saves the collected sheets to opts.OutputPath
func Run(ctx context.Context, fetcher Fetcher, opts Options) (*Result, error) {
	result := &Result{
		OutputPath: opts.OutputPath,
		Sheets:     make([]SheetSummary, 0),
		Skipped:    make([]SkippedSource, 0),
	}
	r := &runner{fetcher: fetcher, metrics: logger.NewMetrics()}
	wb := workbook.New()
	if opts.GameInfoURL != "" {
		wb.Reserve(GameInfoSheet)
	}

	for _, src := range opts.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g, skip := r.scrapeTable(ctx, src)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			r.metrics.IncrCounter(MetricSkipped)
			continue
		}

		g = g.PrependColumn(source.DeriveYear(src.URL))
		want := source.SheetName(src.Description)
		name := wb.Add(want, g)
		if name != want {
			logger.Warn("sheet renamed", logger.Fields{"source": src.Description, "requested": want, "sheet": name})
		}
		result.Sheets = append(result.Sheets, SheetSummary{Name: name, Description: src.Description, Rows: g.Len()})
		r.metrics.IncrCounter(MetricScraped)
	}

	if opts.GameInfoURL != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g, skip := r.scrapeGameInfo(ctx, opts.GameInfoURL)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			r.metrics.IncrCounter(MetricSkipped)
		} else {
			name := wb.AddReserved(GameInfoSheet, g)
			result.Sheets = append(result.Sheets, SheetSummary{Name: name, Description: "Game Info", Rows: g.Len()})
			r.metrics.IncrCounter(MetricScraped)
		}
	}

	result.Stats = statsFrom(r.metrics)
	logger.Debug("run metrics", r.metrics.Snapshot().Fields())

	if err := wb.Save(opts.OutputPath); err != nil {
		if errors.Is(err, workbook.ErrEmpty) {
			logger.Warn("no sheets to write, workbook not created", logger.Fields{"path": opts.OutputPath})
			return result, nil
		}
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	result.Written = true

	logger.Info("data has been successfully written", logger.Fields{
		"path":   opts.OutputPath,
		"sheets": wb.Len(),
	})

	return result, nil
}

// scrapeTable fetches src and extracts its table. A non-nil skip means the
// source contributes no sheet.
func (r *runner) scrapeTable(ctx context.Context, src source.Source) (grid.Grid, *SkippedSource) {
	fields := logger.Fields{"source": src.Description, "url": src.URL}

	if src.TableID == "" {
		logger.Warn("no table identifier configured, skipping", fields)
		return nil, &SkippedSource{Description: src.Description, URL: src.URL, Reason: ReasonNoTableID}
	}

	logger.Info("scraping source", fields)
	doc, err := r.fetch(ctx, src.URL)
	if err != nil {
		logger.Error("failed to retrieve data", fields, err)
		return nil, &SkippedSource{Description: src.Description, URL: src.URL, Reason: ReasonFetchFailed, Error: err.Error()}
	}

	g, found := scraper.ExtractTable(doc, src.TableID)
	if !found {
		logger.Warn("no data found", logger.Fields{"source": src.Description, "table_id": src.TableID})
		logger.Warn("no data to write", logger.Fields{"source": src.Description})
		return nil, &SkippedSource{Description: src.Description, URL: src.URL, Reason: ReasonTableNotFound}
	}
	if g.Empty() {
		logger.Warn("no data to write", logger.Fields{"source": src.Description})
		return nil, &SkippedSource{Description: src.Description, URL: src.URL, Reason: ReasonNoData}
	}

	logger.Debug("extracted table", logger.Fields{"source": src.Description, "rows": g.Len(), "columns": g.Width()})
	return g, nil
}

// scrapeGameInfo fetches url and extracts the box-score metadata block
func (r *runner) scrapeGameInfo(ctx context.Context, url string) (grid.Grid, *SkippedSource) {
	fields := logger.Fields{"source": "Game Info", "url": url}

	logger.Info("scraping source", fields)
	doc, err := r.fetch(ctx, url)
	if err != nil {
		logger.Error("failed to retrieve data", fields, err)
		return nil, &SkippedSource{Description: "Game Info", URL: url, Reason: ReasonFetchFailed, Error: err.Error()}
	}

	g, found := scraper.ExtractGameInfo(doc, source.DeriveYear(url))
	if !found {
		logger.Warn("no data found", logger.Fields{"source": "Game Info", "selector": scraper.GameInfoSelector})
		logger.Warn("no data to write", logger.Fields{"source": "Game Info"})
		return nil, &SkippedSource{Description: "Game Info", URL: url, Reason: ReasonTableNotFound}
	}

	return g, nil
}

func (r *runner) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()
	doc, err := r.fetcher.Fetch(ctx, url)
	r.metrics.RecordTiming(MetricFetch, time.Since(start))
	if err != nil {
		r.metrics.IncrCounter(MetricFetchErrors)
	}
	return doc, err
}
