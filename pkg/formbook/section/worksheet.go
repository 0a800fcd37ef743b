package section

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateLayout is the questionnaire date format.
const DateLayout = "01/02/2006"

// MultiSeparator delimits values of a multi-entry cell.
const MultiSeparator = "|"

// Yes/No cell values for boolean fields.
const (
	Yes = "Yes"
	No  = "No"
)

// Worksheet is a section sheet being written. Write helpers record the
// first error and become no-ops afterwards; Serialize reports it.
type Worksheet struct {
	file     *excelize.File
	name     string
	schema   Schema
	limits   Limits
	capacity int
	styles   *styleCache

	written map[int]bool
	groups  map[string]int
	rules   map[string]*Rule
	order   []string
	formats []highlight
	err     error
}

func newWorksheet(f *excelize.File, s *Section, styles *styleCache) *Worksheet {
	capacity := s.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Worksheet{
		file:     f,
		name:     s.Name,
		schema:   s.Columns,
		limits:   s.Limits,
		capacity: capacity,
		styles:   styles,
		written:  make(map[int]bool),
		groups:   make(map[string]int),
		rules:    make(map[string]*Rule),
	}
}

// Name returns the sheet name.
func (ws *Worksheet) Name() string { return ws.name }

// Err returns the first error recorded by a helper.
func (ws *Worksheet) Err() error { return ws.err }

func (ws *Worksheet) fail(err error) {
	if ws.err == nil && err != nil {
		ws.err = err
	}
}

// Addr returns the absolute address of key at row.
func (ws *Worksheet) Addr(key string, row int) string {
	return ws.schema.Addr(key, row)
}

// cell returns the relative address of key at row.
func (ws *Worksheet) cell(key string, row int) (string, bool) {
	if ws.err != nil {
		return "", false
	}
	col, err := ws.schema.Letter(key)
	if err != nil {
		ws.fail(err)
		return "", false
	}
	return col + strconv.Itoa(row), true
}

// Set writes value to key's column at row and records the row as written.
// Empty strings leave the cell blank.
func (ws *Worksheet) Set(key string, row int, value interface{}) {
	cell, ok := ws.cell(key, row)
	if !ok {
		return
	}
	ws.written[row] = true
	if s, isStr := value.(string); isStr && s == "" {
		return
	}
	ws.fail(ws.file.SetCellValue(ws.name, cell, value))
}

// SetBool writes Yes or No.
func (ws *Worksheet) SetBool(key string, row int, value bool) {
	if value {
		ws.Set(key, row, Yes)
		return
	}
	ws.Set(key, row, No)
}

// SetInt writes a number, leaving zero blank.
func (ws *Worksheet) SetInt(key string, row int, value int) {
	if value == 0 {
		ws.Set(key, row, "")
		return
	}
	ws.Set(key, row, value)
}

// SetList writes values as one pipe-delimited cell.
func (ws *Worksheet) SetList(key string, row int, values []string) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	ws.Set(key, row, strings.Join(kept, MultiSeparator))
}

// SetDate writes an MM/DD/YYYY value as a spreadsheet date so date rules
// can compare it numerically. Unparseable input is written as text.
func (ws *Worksheet) SetDate(key string, row int, value string) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		ws.Set(key, row, value)
		return
	}
	ws.Set(key, row, t)
	cell, ok := ws.cell(key, row)
	if !ok {
		return
	}
	style, err := ws.styles.date(ws.file)
	if err != nil {
		ws.fail(err)
		return
	}
	ws.fail(ws.file.SetCellStyle(ws.name, cell, cell, style))
}

// Derive writes the formula built for each row of key's extent. Derived
// cells are recalculated by the spreadsheet and do not count as written.
func (ws *Worksheet) Derive(key string, f func(row int) string) {
	for _, row := range ws.Rows(key) {
		cell, ok := ws.cell(key, row)
		if !ok {
			return
		}
		ws.fail(ws.file.SetCellFormula(ws.name, cell, strings.TrimPrefix(f(row), "=")))
	}
}

// Records writes n records of group into rows 2..n+1, calling fn with the
// record index and its row.
func (ws *Worksheet) Records(group string, n int, fn func(i, row int)) {
	ws.groups[group] = n
	for i := 0; i < n; i++ {
		fn(i, FirstDataRow+i)
	}
}

// Rows returns the rows that rules on key's column apply to: row 2 for a
// single-entry column, otherwise every written record row padded to the
// section's capacity.
func (ws *Worksheet) Rows(key string) []int {
	c, ok := ws.schema.Column(key)
	if !ok || c.Group == "" {
		return []int{FirstDataRow}
	}
	n := max(ws.groups[c.Group], ws.capacity, 1)
	rows := make([]int, n)
	for i := range rows {
		rows[i] = FirstDataRow + i
	}
	return rows
}

// WrittenRows returns the sorted rows populated by write helpers.
func (ws *Worksheet) WrittenRows() []int {
	rows := make([]int, 0, len(ws.written))
	for r := range ws.written {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}
