package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pfrederiksen/nfl-scrape/internal/config"
	"github.com/pfrederiksen/nfl-scrape/internal/logger"
	"github.com/pfrederiksen/nfl-scrape/internal/pipeline"
	"github.com/pfrederiksen/nfl-scrape/internal/scraper"
	"github.com/pfrederiksen/nfl-scrape/internal/source"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds flag values for one invocation
type options struct {
	output      string
	sourcesFile string
	gameInfoURL string
	userAgent   string
	timeout     time.Duration
	interval    time.Duration
	uncomment   bool
	format      string
	logLevel    string
	logFormat   string
	verbose     bool
}

// NewRootCmd creates the root command with defaults taken from cfg
func NewRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nfl-scrape",
		Short: "Scrape NFL statistics tables into an Excel workbook",
		Long: `A CLI tool that fetches NFL box-score and rankings pages, extracts the
configured HTML tables, and writes each one as a sheet of a single .xlsx file.
Sources that fail are reported and skipped; the run always finishes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", cfg.OutputPath, "Workbook file to write")
	cmd.Flags().StringVar(&opts.sourcesFile, "sources", cfg.SourcesFile, "JSON file with the sources to scrape (default: built-in list)")
	cmd.Flags().StringVar(&opts.gameInfoURL, "game-info-url", cfg.GameInfoURL, "Box-score page for the Game_Info sheet (empty to skip)")
	cmd.Flags().StringVar(&opts.userAgent, "user-agent", cfg.UserAgent, "User-Agent header for requests")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	cmd.Flags().DurationVar(&opts.interval, "interval", cfg.RequestInterval, "Minimum delay between requests (0 to disable)")
	cmd.Flags().BoolVar(&opts.uncomment, "uncomment", cfg.Uncomment, "Parse commented-out tables back into the page")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Summary format: text or json")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(ctx context.Context, stdout io.Writer, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logFormat, err := logger.ParseFormat(opts.logFormat)
	if err != nil {
		return err
	}
	// diagnostics go to stderr when stdout carries the JSON summary
	logOut := io.Writer(os.Stdout)
	if format == FormatJSON {
		logOut = os.Stderr
	}
	logger.SetDefault(logger.New(level, logFormat, logOut))

	sources := source.Defaults()
	if opts.sourcesFile != "" {
		sources, err = source.LoadFile(opts.sourcesFile)
		if err != nil {
			return fmt.Errorf("loading sources: %w", err)
		}
	}

	logger.Debug("starting run", logger.Fields{
		"sources":  len(sources),
		"output":   opts.output,
		"interval": opts.interval.String(),
	})

	sc := scraper.New(
		scraper.WithTimeout(opts.timeout),
		scraper.WithUserAgent(opts.userAgent),
		scraper.WithRequestInterval(opts.interval),
		scraper.WithUncomment(opts.uncomment),
	)

	result, err := pipeline.Run(ctx, sc, pipeline.Options{
		Sources:     sources,
		GameInfoURL: opts.gameInfoURL,
		OutputPath:  opts.output,
	})
	if err != nil {
		return err
	}

	if err := WriteOutput(stdout, result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
