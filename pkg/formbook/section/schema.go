// Package section implements the engine shared by every form sheet: it
// materializes a column schema into a styled, protected worksheet, writes
// and validates a section's fields, and maps extracted columns back into
// questionnaire data.
package section

import (
	"fmt"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/xuri/excelize/v2"
)

// HeaderRow is the row holding column headers. Data starts below it.
const HeaderRow = 1

// FirstDataRow is the first row of section data.
const FirstDataRow = 2

// Column describes one column of a section sheet.
type Column struct {
	// Key is unique within the section.
	Key string
	// Header is the text written to row 1 and matched on parse.
	Header string
	// Width is the display width.
	Width float64
	// Locked makes the column read-only in the protected sheet.
	Locked bool
	// Annotation, when set, is attached as a note to the header cell.
	Annotation string
	// Group names the multi-record group the column belongs to. Empty for
	// single-entry columns, which only use row 2.
	Group string
	// Multi marks a pipe-delimited multi-entry column.
	Multi bool
	// Date formats the column as a date.
	Date bool
}

// Schema is the ordered column list of a section. Column order determines
// physical position.
type Schema []Column

// Index returns the position of key, or -1.
func (s Schema) Index(key string) int {
	for i, c := range s {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Column returns the column with key.
func (s Schema) Column(key string) (Column, bool) {
	if i := s.Index(key); i >= 0 {
		return s[i], true
	}
	return Column{}, false
}

// Letter returns the column letter of key.
func (s Schema) Letter(key string) (string, error) {
	i := s.Index(key)
	if i < 0 {
		return "", fmt.Errorf("unknown column %q", key)
	}
	return excelize.ColumnNumberToName(i + 1)
}

// Addr returns the absolute address of key at row, or "" for an unknown key.
func (s Schema) Addr(key string, row int) string {
	col, err := s.Letter(key)
	if err != nil {
		return ""
	}
	return formula.Cell(col, row)
}

// Group returns the keys of the columns in group, in schema order.
func (s Schema) Group(group string) []string {
	var keys []string
	for _, c := range s {
		if group != "" && c.Group == group {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Validate checks that keys are unique and non-empty.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, c := range s {
		if c.Key == "" {
			return fmt.Errorf("column %q has no key", c.Header)
		}
		if seen[c.Key] {
			return fmt.Errorf("duplicate column key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Limits maps column keys to their maximum text length.
type Limits map[string]int
