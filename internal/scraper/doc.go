// Package scraper provides HTTP fetching and HTML table extraction for nfl-scrape.
//
// The scraper package fetches box-score and rankings pages, parses them with
// goquery, and flattens a named table (or the box-score metadata block) into a
// grid of trimmed strings. Requests are issued one at a time and spaced by a
// rate limiter, since the statistics sites throttle aggressive clients.
// Sports-reference pages hide most tables inside HTML comments; the scraper can
// parse those comments back into the tree so the tables become visible.
package scraper
