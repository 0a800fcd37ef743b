package section

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// lockedFill is the fill of read-only data columns.
const lockedFill = "EFEFEF"

// dateFormat is the number format of date cells.
const dateFormat = "mm/dd/yyyy"

// styleCache creates each cell style once per workbook.
type styleCache struct {
	ids map[string]int
}

func (c *styleCache) get(f *excelize.File, key string, style *excelize.Style) (int, error) {
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}

func (c *styleCache) header(f *excelize.File, color string) (int, error) {
	color = strings.TrimPrefix(color, "#")
	style := &excelize.Style{
		Font:       &excelize.Font{Bold: true, Color: "000000"},
		Alignment:  &excelize.Alignment{Vertical: "center", WrapText: true},
		Protection: &excelize.Protection{Locked: true},
	}
	if color != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}
	return c.get(f, "header:"+color, style)
}

func (c *styleCache) unlocked(f *excelize.File) (int, error) {
	return c.get(f, "unlocked", &excelize.Style{
		Protection: &excelize.Protection{Locked: false},
	})
}

func (c *styleCache) locked(f *excelize.File) (int, error) {
	return c.get(f, "locked", &excelize.Style{
		Fill:       excelize.Fill{Type: "pattern", Color: []string{lockedFill}, Pattern: 1},
		Protection: &excelize.Protection{Locked: true},
	})
}

func (c *styleCache) date(f *excelize.File) (int, error) {
	format := dateFormat
	return c.get(f, "date", &excelize.Style{
		CustomNumFmt: &format,
		Protection:   &excelize.Protection{Locked: false},
	})
}
