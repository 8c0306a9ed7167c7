package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nfl-scrape/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(html), false)
	require.NoError(t, err)
	return doc
}

func toStrings(g grid.Grid) [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = []string(row)
	}
	return out
}

func TestExtractTable(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		tableID   string
		want      [][]string
		wantFound bool
	}{
		{
			name: "three rows of two cells",
			html: `<table id="team_stats">
				<tr><th> Stat </th><th>MIA</th></tr>
				<tr><td>First Downs</td><td>
					21
				</td></tr>
				<tr><td>Rush-Yds-TDs</td><td>25-127-1</td></tr>
			</table>`,
			tableID:   "team_stats",
			want:      [][]string{{"Stat", "MIA"}, {"First Downs", "21"}, {"Rush-Yds-TDs", "25-127-1"}},
			wantFound: true,
		},
		{
			name:      "table missing",
			html:      `<table id="other"><tr><td>x</td></tr></table>`,
			tableID:   "team_stats",
			wantFound: false,
		},
		{
			name:      "id on a non-table element",
			html:      `<div id="team_stats"><table><tr><td>x</td></tr></table></div>`,
			tableID:   "team_stats",
			wantFound: false,
		},
		{
			name: "header and data cells in document order",
			html: `<table id="passing_advanced">
				<thead><tr><th>Player</th><th>Tm</th><th>Cmp</th></tr></thead>
				<tbody><tr><th>Tua Tagovailoa</th><td>MIA</td><td>17</td></tr></tbody>
			</table>`,
			tableID:   "passing_advanced",
			want:      [][]string{{"Player", "Tm", "Cmp"}, {"Tua Tagovailoa", "MIA", "17"}},
			wantFound: true,
		},
		{
			name: "ragged rows are kept as-is",
			html: `<table id="vis_drives">
				<tr><th colspan="3">Drives</th></tr>
				<tr><td>1</td><td>Own 25</td><td>Punt</td></tr>
				<tr></tr>
			</table>`,
			tableID:   "vis_drives",
			want:      [][]string{{"Drives"}, {"1", "Own 25", "Punt"}, {}},
			wantFound: true,
		},
		{
			name: "cell text includes nested markup",
			html: `<table id="t"><tr><td><a href="/players/T/TagoTu00.htm">Tua</a> <strong>Tagovailoa</strong></td></tr></table>`,
			tableID:   "t",
			want:      [][]string{{"Tua Tagovailoa"}},
			wantFound: true,
		},
		{
			name: "first matching table wins",
			html: `<table id="dup"><tr><td>first</td></tr></table>
				<table id="dup"><tr><td>second</td></tr></table>`,
			tableID:   "dup",
			want:      [][]string{{"first"}},
			wantFound: true,
		},
		{
			name:      "ids with selector characters",
			html:      `<table id="a.b:c"><tr><td>ok</td></tr></table>`,
			tableID:   "a.b:c",
			want:      [][]string{{"ok"}},
			wantFound: true,
		},
		{
			name:      "table without rows",
			html:      `<table id="empty"></table>`,
			tableID:   "empty",
			want:      [][]string{},
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, found := ExtractTable(parse(t, tt.html), tt.tableID)

			assert.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				assert.True(t, g.Empty())
				return
			}
			assert.Equal(t, tt.want, toStrings(g))
		})
	}
}

func TestExtractGameInfo(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		year      string
		want      [][]string
		wantFound bool
	}{
		{
			name: "box score meta block",
			html: `<div class="scorebox_meta">
				<div>Thursday Sep 12, 2024</div>
				<div><strong>Start Time</strong>: 8:15pm</div>
				<div><strong>Stadium</strong>: <a href="/stadiums/MIA00.htm">Hard Rock Stadium</a></div>
			</div>`,
			year: "2024",
			want: [][]string{
				{"Year", "2024"},
				{"Thursday Sep 12, 2024"},
				{"Start Time: 8:15pm"},
				{"Stadium: Hard Rock Stadium"},
			},
			wantFound: true,
		},
		{
			name: "promoted labels",
			html: `<div class="scorebox_meta">
				<div>Time of Possession: 28:45</div>
				<div>Turnovers: 2</div>
			</div>`,
			year: "2024",
			want: [][]string{
				{"Year", "2024"},
				{"Time of Possession: 28:45"},
				{"Time of Possession", "28:45"},
				{"Turnovers: 2"},
				{"Turnovers", "2"},
			},
			wantFound: true,
		},
		{
			name: "both labels in one block",
			html: `<div class="scorebox_meta"><div>Time of Possession: 31:15 Turnovers: 1</div></div>`,
			year: "Unknown",
			want: [][]string{
				{"Year", "Unknown"},
				{"Time of Possession: 31:15 Turnovers: 1"},
				{"Time of Possession", "31:15"},
				{"Turnovers", "1"},
			},
			wantFound: true,
		},
		{
			name: "label without colon",
			html: `<div class="scorebox_meta"><div>Turnovers</div></div>`,
			year: "2024",
			want: [][]string{
				{"Year", "2024"},
				{"Turnovers"},
				{"Turnovers", "Turnovers"},
			},
			wantFound: true,
		},
		{
			name:      "empty container still carries year",
			html:      `<div class="scorebox_meta"></div>`,
			year:      "2024",
			want:      [][]string{{"Year", "2024"}},
			wantFound: true,
		},
		{
			name: "only direct child divs",
			html: `<div class="scorebox_meta">
				<div>Outer <div>Inner</div></div>
			</div>`,
			year:      "2024",
			want:      [][]string{{"Year", "2024"}, {"Outer Inner"}},
			wantFound: true,
		},
		{
			name:      "container missing",
			html:      `<div class="scorebox"><div>Time of Possession: 28:45</div></div>`,
			year:      "2024",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, found := ExtractGameInfo(parse(t, tt.html), tt.year)

			assert.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				assert.True(t, g.Empty())
				return
			}
			assert.Equal(t, tt.want, toStrings(g))
		})
	}
}

func TestLabelValue(t *testing.T) {
	tests := []struct {
		text  string
		label string
		want  string
	}{
		{"Time of Possession: 28:45", "Time of Possession", "28:45"},
		{"Turnovers: 2", "Turnovers", "2"},
		{"Turnovers:2 ", "Turnovers", "2"},
		{"Home: Turnovers", "Turnovers", "Turnovers"},
		{"Time of Possession: 31:15 Turnovers: 1", "Time of Possession", "31:15"},
		{"Turnovers: 1 Time of Possession: 31:15", "Turnovers", "1"},
		{"Turnovers", "Turnovers", "Turnovers"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, labelValue(tt.text, tt.label))
		})
	}
}

func TestExtractTable_Uncomment(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		tableID   string
		want      [][]string
		wantFound bool
	}{
		{
			name:      "comment inside a cell is not cell text",
			html:      `<table id="team_stats"><tr><td>21<!-- site note --></td><td>MIA</td></tr></table>`,
			tableID:   "team_stats",
			want:      [][]string{{"21", "MIA"}},
			wantFound: true,
		},
		{
			name: "commented-out table is found",
			html: `<div id="all_vis_drives"><!--
				<table id="vis_drives"><tr><th>#</th><th>Result</th></tr><tr><td>1</td><td><b>Punt</b></td></tr></table>
			--></div>`,
			tableID:   "vis_drives",
			want:      [][]string{{"#", "Result"}, {"1", "Punt"}},
			wantFound: true,
		},
		{
			name: "live and commented tables side by side",
			html: `<table id="live"><tr><td>a<!-- note --></td></tr></table>
				<div><!-- <table id="hidden"><tr><td>b</td></tr></table> --></div>`,
			tableID:   "hidden",
			want:      [][]string{{"b"}},
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseHTML(strings.NewReader(tt.html), true)
			require.NoError(t, err)

			g, found := ExtractTable(doc, tt.tableID)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, toStrings(g))
		})
	}
}

func TestParseHTML_KeepsPlainComments(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(`<div id="note">kept<!-- <div>hidden</div> --></div>`), true)
	require.NoError(t, err)

	assert.Equal(t, "kept", doc.Find("#note").Text())
	assert.Equal(t, 1, doc.Find("div").Length())
}
