// Package source describes the pages nfl-scrape pulls tables from.
//
// A Source pairs a page URL with the id of the HTML table to extract and a
// human-readable description that becomes the workbook sheet name. The package
// also derives the season year from pro-football-reference box-score URLs.
package source
