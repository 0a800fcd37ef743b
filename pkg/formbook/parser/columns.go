// Package parser provides raw extraction of form sheets from a workbook.
package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column is one header cell of a sheet and the values found beneath it.
type Column struct {
	// Header is the trimmed header text from row 1.
	Header string
	// Index is the 1-based column index.
	Index int
	// Values holds the cell values from row 2 down, with trailing empty
	// cells removed.
	Values []string
}

// ExtractColumns extracts header -> values columns from a sheet.
// Row 1 is read as the header row; columns with an empty header are skipped.
func ExtractColumns(f *excelize.File, sheetName string) ([]Column, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	_, maxRow, _, _ := findDataBounds(rows)

	var result []Column
	for colIdx, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}

		var values []string
		for rowIdx := 1; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
			values = append(values, cellAt(rows[rowIdx], colIdx))
		}

		result = append(result, Column{
			Header: header,
			Index:  colIdx + 1,
			Values: trimTrailing(values),
		})
	}

	return result, nil
}

func cellAt(row []string, colIdx int) string {
	if colIdx < len(row) {
		return row[colIdx]
	}
	return ""
}

func trimTrailing(values []string) []string {
	end := len(values)
	for end > 0 && strings.TrimSpace(values[end-1]) == "" {
		end--
	}
	if end == 0 {
		return nil
	}
	return values[:end]
}

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the trimmed string.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
