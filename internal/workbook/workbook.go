package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/nfl-scrape/internal/grid"
	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is Excel's limit on sheet name length
const MaxSheetNameLength = 31

// ErrEmpty is returned by Save when no sheets were added
var ErrEmpty = errors.New("workbook has no sheets")

var invalidSheetChars = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// Sheet is one named tab
type Sheet struct {
	Name string
	Grid grid.Grid
}

// Workbook is an ordered collection of sheets
type Workbook struct {
	sheets   []Sheet
	used     map[string]bool // lower-cased names; Excel compares case-insensitively
	reserved map[string]bool
}

// New creates an empty workbook
func New() *Workbook {
	return &Workbook{
		used:     make(map[string]bool),
		reserved: make(map[string]bool),
	}
}

// Add appends a sheet and returns the name it was stored under
func (w *Workbook) Add(name string, g grid.Grid) string {
	name = w.uniqueName(sanitizeName(name))
	w.used[strings.ToLower(name)] = true
	w.sheets = append(w.sheets, Sheet{Name: name, Grid: g})
	return name
}

// Reserve holds name for a later AddReserved call. Until then Add treats the
// name as taken. It returns the sanitized name that was reserved.
func (w *Workbook) Reserve(name string) string {
	name = sanitizeName(name)
	w.reserved[strings.ToLower(name)] = true
	return name
}

// AddReserved appends a sheet under a name previously passed to Reserve.
// Without a matching reservation it behaves like Add.
func (w *Workbook) AddReserved(name string, g grid.Grid) string {
	name = sanitizeName(name)
	key := strings.ToLower(name)
	if !w.reserved[key] || w.used[key] {
		return w.Add(name, g)
	}
	delete(w.reserved, key)
	w.used[key] = true
	w.sheets = append(w.sheets, Sheet{Name: name, Grid: g})
	return name
}

// Len returns the number of sheets
func (w *Workbook) Len() int {
	return len(w.sheets)
}

// Names returns the sheet names in order
func (w *Workbook) Names() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheets returns the sheets in order
func (w *Workbook) Sheets() []Sheet {
	out := make([]Sheet, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// Save writes every sheet to an .xlsx file at path
func (w *Workbook) Save(path string) (err error) {
	if len(w.sheets) == 0 {
		return ErrEmpty
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	for i, sheet := range w.sheets {
		if i == 0 {
			// NewFile starts with a default sheet; reuse it for the first one
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet.Name, err)
		}

		if err := writeGrid(f, sheet.Name, sheet.Grid); err != nil {
			return fmt.Errorf("writing sheet %q: %w", sheet.Name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeGrid streams g into sheet starting at A1
func writeGrid(f *excelize.File, sheet string, g grid.Grid) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	for i, row := range g {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell
		}
		cellAddr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellAddr, values); err != nil {
			return err
		}
	}

	return sw.Flush()
}

// sanitizeName replaces characters Excel rejects and enforces the length limit
func sanitizeName(name string) string {
	name = strings.TrimSpace(invalidSheetChars.Replace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	return truncate(name, MaxSheetNameLength)
}

// uniqueName appends _2, _3, ... until name is neither used nor reserved
func (w *Workbook) uniqueName(name string) string {
	if !w.taken(name) {
		return name
	}
	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		candidate := truncate(name, MaxSheetNameLength-len(suffix)) + suffix
		if !w.taken(candidate) {
			return candidate
		}
	}
}

func (w *Workbook) taken(name string) bool {
	key := strings.ToLower(name)
	return w.used[key] || w.reserved[key]
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
