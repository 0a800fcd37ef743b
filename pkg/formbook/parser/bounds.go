package parser

import "github.com/xuri/excelize/v2"

// Bounds is the 1-based bounding box of the non-empty cells of a sheet.
// A sheet without data has zero Bounds.
type Bounds struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
}

// Empty reports whether the sheet holds no data.
func (b Bounds) Empty() bool {
	return b.LastRow == 0
}

// DataBounds returns the bounding box of the non-empty cells of a sheet.
func DataBounds(f *excelize.File, sheetName string) (Bounds, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return Bounds{}, err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return Bounds{}, nil
	}

	return Bounds{
		FirstRow: minRow + 1,
		LastRow:  maxRow + 1,
		FirstCol: minCol + 1,
		LastCol:  maxCol + 1,
	}, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
