// Package logger provides leveled diagnostics and run metrics for nfl-scrape.
//
// Log output goes through zerolog, either as human-readable console lines
// (the default, meant for someone watching a scrape run) or as JSON lines.
// Every entry can carry arbitrary structured fields.
//
// Metrics tracking covers counters (incrementing values) and timings
// (duration measurements) with min/max/average aggregation.
//
// Example usage:
//
//	logger.Info("scraping source", logger.Fields{
//	    "source": "Team Stats",
//	    "url":    url,
//	})
//
//	logger.Error("writing workbook failed", logger.Fields{
//	    "path": path,
//	}, err)
//
//	m := logger.NewMetrics()
//	m.IncrCounter("sources.scraped")
//	m.RecordTiming("fetch", duration)
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Format selects how entries are rendered
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Logger provides structured logging
type Logger struct {
	zl zerolog.Logger
}

// Fields represents structured log fields
type Fields map[string]interface{}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, FormatConsole, os.Stdout)
}

// ParseLevel converts a case-insensitive level name into a Level
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "WARNING":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// ParseFormat converts a format name into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatConsole, "", "text":
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatConsole, fmt.Errorf("unknown log format: %s", s)
	}
}

// New creates a logger that discards messages below level and writes the rest to output
func New(level Level, format Format, output io.Writer) *Logger {
	w := output
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    true,
			TimeFormat: "15:04:05",
		}
	}

	return &Logger{
		zl: zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// SetDefault sets the default package-level logger used by the convenience functions
// (Debug, Info, Warn, Error).
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	// WithLevel returns nil below the configured level; zerolog events are nil-safe
	evt := l.zl.WithLevel(zerologLevel(level))
	if err != nil {
		evt = evt.Err(err)
	}
	if len(fields) > 0 {
		evt = evt.Fields(map[string]interface{}(fields))
	}
	evt.Msg(message)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warnings mark a source that was skipped; the run itself carries on.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Metrics tracks counters and timings for a run.
// All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

// TimingStats aggregates the durations recorded under one name
type TimingStats struct {
	Count   int           `json:"count"`
	Total   time.Duration `json:"total"`
	Average time.Duration `json:"average"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
}

// Snapshot is a point-in-time copy of a Metrics tracker
type Snapshot struct {
	Counters map[string]int64       `json:"counters"`
	Timings  map[string]TimingStats `json:"timings"`
}

// Fields flattens the snapshot into log fields, one key per counter and
// per timing statistic
func (s Snapshot) Fields() Fields {
	fields := make(Fields, len(s.Counters)+len(s.Timings)*3)
	for name, v := range s.Counters {
		fields[name] = v
	}
	for name, t := range s.Timings {
		fields[name+".count"] = t.Count
		fields[name+".total"] = t.Total.String()
		fields[name+".average"] = t.Average.String()
	}
	return fields
}

// NewMetrics creates a new metrics tracker with empty counters and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1. If the counter doesn't exist, it is initialized to 1.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// Reset clears all counters and timings
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.timings = make(map[string][]time.Duration)
}

// Counter returns the current value of a counter, 0 if it was never incremented
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Timing returns the aggregate of the durations recorded under name
func (m *Metrics) Timing(name string) TimingStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return aggregate(m.timings[name])
}

// Snapshot returns a deep copy of all counters and aggregated timings
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}
	for k, v := range m.counters {
		snap.Counters[k] = v
	}
	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		snap.Timings[name] = aggregate(durations)
	}
	return snap
}

func aggregate(durations []time.Duration) TimingStats {
	if len(durations) == 0 {
		return TimingStats{}
	}

	stats := TimingStats{Count: len(durations), Min: durations[0], Max: durations[0]}
	for _, d := range durations {
		stats.Total += d
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
	}
	stats.Average = stats.Total / time.Duration(len(durations))
	return stats
}
