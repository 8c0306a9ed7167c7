package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-scrape/internal/grid"
)

// GameInfoSelector matches the box-score metadata container
const GameInfoSelector = "div.scorebox_meta"

// Labels promoted from the game info block into their own key/value rows
var promotedLabels = []string{"Time of Possession", "Turnovers"}

// ExtractTable flattens the first table whose id equals tableID.
// The bool is false when no such table exists.
func ExtractTable(doc *goquery.Document, tableID string) (grid.Grid, bool) {
	// Compare the attribute directly so ids never need selector escaping
	table := doc.Find("table").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		id, ok := sel.Attr("id")
		return ok && id == tableID
	}).First()
	if table.Length() == 0 {
		return nil, false
	}

	g := make(grid.Grid, 0)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := make(grid.Row, 0)
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		g = append(g, row)
	})

	return g, true
}

// ExtractGameInfo flattens the box-score metadata block. The first row is
// always ["Year", year]; each child div adds a one-cell row, and promoted
// labels add a second [label, value] row. The bool is false when the
// container is missing.
func ExtractGameInfo(doc *goquery.Document, year string) (grid.Grid, bool) {
	meta := doc.Find(GameInfoSelector).First()
	if meta.Length() == 0 {
		return nil, false
	}

	g := grid.Grid{{"Year", year}}
	meta.ChildrenFiltered("div").Each(func(_ int, div *goquery.Selection) {
		text := strings.TrimSpace(div.Text())
		g = append(g, grid.Row{text})

		for _, label := range promotedLabels {
			if strings.Contains(text, label) {
				g = append(g, grid.Row{label, labelValue(text, label)})
			}
		}
	})

	return g, true
}

// labelValue returns the text after the colon that follows label, or the
// whole text when there is no colon. The value stops where another promoted
// label begins.
func labelValue(text, label string) string {
	rest := text[strings.Index(text, label)+len(label):]
	if i := strings.Index(rest, ":"); i >= 0 {
		return cutAtLabel(strings.TrimSpace(rest[i+1:]), label)
	}
	if i := strings.LastIndex(text, ":"); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return text
}

func cutAtLabel(value, current string) string {
	for _, other := range promotedLabels {
		if other == current {
			continue
		}
		if i := strings.Index(value, other); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}
	}
	return value
}
