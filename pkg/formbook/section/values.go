package section

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/formbook-go/pkg/formbook/parser"
	"github.com/xuri/excelize/v2"
)

// altDateLayouts are accepted when a date cell does not use DateLayout.
var altDateLayouts = []string{"1/2/2006", "2006-01-02", "01-02-06", "1-2-06", time.RFC3339}

// Values holds a section's extracted column values keyed by column key.
type Values struct {
	schema  Schema
	limits  Limits
	columns map[string][]string
	missing []string
}

// NewValues builds Values from raw column values.
func NewValues(schema Schema, limits Limits, columns map[string][]string) *Values {
	if columns == nil {
		columns = make(map[string][]string)
	}
	v := &Values{schema: schema, limits: limits, columns: columns}
	for _, c := range schema {
		if _, ok := columns[c.Key]; !ok {
			v.missing = append(v.missing, c.Key)
		}
	}
	return v
}

// Rekey matches extracted columns to the schema by exact header text,
// ignoring surrounding whitespace. Repeated headers are matched in order of
// occurrence.
func Rekey(schema Schema, limits Limits, columns []parser.Column) *Values {
	used := make([]bool, len(columns))
	keyed := make(map[string][]string, len(schema))
	for _, c := range schema {
		for i, col := range columns {
			if used[i] || strings.TrimSpace(col.Header) != strings.TrimSpace(c.Header) {
				continue
			}
			used[i] = true
			keyed[c.Key] = col.Values
			break
		}
	}
	return NewValues(schema, limits, keyed)
}

// Missing returns the keys whose header was not found.
func (v *Values) Missing() []string { return v.missing }

// Has reports whether the key's column was found.
func (v *Values) Has(key string) bool {
	_, ok := v.columns[key]
	return ok
}

// At returns the trimmed value of key at record i, truncated to the
// column's limit. Absent values are empty.
func (v *Values) At(key string, i int) string {
	values := v.columns[key]
	if i < 0 || i >= len(values) {
		return ""
	}
	s := strings.TrimSpace(values[i])
	if limit, ok := v.limits[key]; ok && limit > 0 {
		if r := []rune(s); len(r) > limit {
			s = string(r[:limit])
		}
	}
	return s
}

// Str returns the single-entry value of key.
func (v *Values) Str(key string) string { return v.At(key, 0) }

// ListAt splits a pipe-delimited value, dropping empty entries.
func (v *Values) ListAt(key string, i int) []string {
	var out []string
	for _, part := range strings.Split(v.At(key, i), MultiSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// List returns the single-entry multi-value of key.
func (v *Values) List(key string) []string { return v.ListAt(key, 0) }

// BoolAt reports whether the value at record i is an affirmative answer.
func (v *Values) BoolAt(key string, i int) bool {
	switch strings.ToLower(v.At(key, i)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

// Bool returns the single-entry boolean of key.
func (v *Values) Bool(key string) bool { return v.BoolAt(key, 0) }

// IntAt returns the numeric value at record i, or zero.
func (v *Values) IntAt(key string, i int) int {
	switch n := parser.ParseValue(v.At(key, i)).(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Int returns the single-entry number of key.
func (v *Values) Int(key string) int { return v.IntAt(key, 0) }

// DateAt returns the value at record i formatted as MM/DD/YYYY. Serial
// numbers and other common layouts are converted; anything else is
// returned as entered.
func (v *Values) DateAt(key string, i int) string {
	s := v.At(key, i)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout)
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(DateLayout)
		}
	}
	for _, layout := range altDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}

// Date returns the single-entry date of key.
func (v *Values) Date(key string) string { return v.DateAt(key, 0) }

// Count returns the number of rows extracted for group.
func (v *Values) Count(group string) int {
	n := 0
	for _, key := range v.schema.Group(group) {
		n = max(n, len(v.columns[key]))
	}
	return n
}

// Records returns the indices of group rows with at least one value.
func (v *Values) Records(group string) []int {
	keys := v.schema.Group(group)
	var out []int
	for i := 0; i < v.Count(group); i++ {
		for _, key := range keys {
			if v.At(key, i) != "" {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// Collect maps every non-empty record of group through fn.
func Collect[T any](v *Values, group string, fn func(i int) T) []T {
	records := v.Records(group)
	if len(records) == 0 {
		return nil
	}
	out := make([]T, 0, len(records))
	for _, i := range records {
		out = append(out, fn(i))
	}
	return out
}
