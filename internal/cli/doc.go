// Package cli implements the command-line interface for nfl-scrape.
//
// The cli package provides the Cobra root command. It resolves settings from
// flags and the environment, builds the scraper, runs the pipeline over the
// configured sources, and prints a run summary as text or JSON.
package cli
