// Package workbook accumulates scraped grids and writes them as one .xlsx file.
//
// Sheets keep the order they were added in. Names are adjusted to satisfy
// Excel's rules (31 characters at most, no : \ / ? * [ ], unique within the
// workbook). Every cell is written as a string; nothing is coerced to a number.
package workbook
