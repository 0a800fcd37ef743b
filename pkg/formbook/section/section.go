package section

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/parser"
	"github.com/xuri/excelize/v2"
)

// DefaultCapacity is the number of record rows that receive validation
// rules when fewer records were written.
const DefaultCapacity = 20

// Deps is the dependency bag handed to a section while it is serialized.
type Deps struct {
	// File is the workbook being built.
	File *excelize.File
	// Lookups creates and memoizes lookup sheets for this workbook.
	Lookups *lookup.Registry
	// Data is the questionnaire snapshot being exported.
	Data *models.QuestionnaireData
	// Metadata is the static record information.
	Metadata models.Metadata
	// Now is the export time.
	Now time.Time
	// Logger receives debug output.
	Logger *slog.Logger

	styles *styleCache
}

func (d *Deps) styleCache() *styleCache {
	if d.styles == nil {
		d.styles = &styleCache{ids: make(map[string]int)}
	}
	return d.styles
}

func (d *Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// MapDeps is the dependency bag handed to MapValues.
type MapDeps struct {
	// Index resolves foreign key names.
	Index *lookup.Index
	// Logger receives informational output.
	Logger *slog.Logger
}

// Institution resolves an institution name to its trimmed form and id.
func (d *MapDeps) Institution(name string) (string, string) {
	if d == nil {
		return strings.TrimSpace(name), ""
	}
	return d.Index.Institution(name)
}

// Program resolves a program display name.
func (d *MapDeps) Program(name string) (models.ProgramOption, bool) {
	if d == nil {
		return models.ProgramOption{}, false
	}
	return d.Index.Program(name)
}

// WriteFunc populates a section sheet and returns every row it wrote.
type WriteFunc func(ctx context.Context, d *Deps, ws *Worksheet) ([]int, error)

// ValidateFunc attaches validation rules and conditional formats.
type ValidateFunc func(ctx context.Context, d *Deps, ws *Worksheet) error

// MapFunc rebuilds the section's portion of the questionnaire from the
// extracted column values.
type MapFunc func(v *Values, deps *MapDeps) *models.QuestionnaireData

// Section is one form sheet: its schema plus the callbacks that write,
// validate and map it.
type Section struct {
	// ID is the internal section id (e.g. "A").
	ID string
	// Name is the sheet name.
	Name string
	// Hidden hides the sheet.
	Hidden bool
	// HeaderColor is the header fill color (hex, no '#').
	HeaderColor string
	// Columns is the column schema.
	Columns Schema
	// Limits maps column keys to maximum text lengths.
	Limits Limits
	// Capacity is the number of record rows receiving rules; zero uses
	// DefaultCapacity.
	Capacity int

	Write     WriteFunc
	Validate  ValidateFunc
	MapValues MapFunc
}

// Serialized is the result of serializing a section.
type Serialized struct {
	// Sheet is the written worksheet.
	Sheet *Worksheet
	// Rows are the rows populated by Write.
	Rows []int
}

// Serialize creates or replaces the section's sheet, writes the header row,
// the data and the validation rules, and annotates header cells.
func (s *Section) Serialize(ctx context.Context, d *Deps) (*Serialized, error) {
	if err := s.Columns.Validate(); err != nil {
		return nil, fmt.Errorf("section %s: %w", s.ID, err)
	}
	f := d.File

	idx, err := f.GetSheetIndex(s.Name)
	if err != nil {
		return nil, err
	}
	if idx >= 0 {
		if err := f.DeleteSheet(s.Name); err != nil {
			return nil, err
		}
	}
	if _, err := f.NewSheet(s.Name); err != nil {
		return nil, err
	}
	if s.Hidden {
		if err := f.SetSheetVisible(s.Name, false); err != nil {
			return nil, err
		}
	}

	ws := newWorksheet(f, s, d.styleCache())
	if err := s.applyColumns(ws); err != nil {
		return nil, err
	}

	var rows []int
	if s.Write != nil {
		rows, err = s.Write(ctx, d, ws)
		if err != nil {
			return nil, err
		}
	}
	if s.Validate != nil {
		if err := s.Validate(ctx, d, ws); err != nil {
			return nil, err
		}
	}
	ws.applyLimits()
	ws.flush()
	if err := ws.Err(); err != nil {
		return nil, err
	}

	if err := s.annotate(ws); err != nil {
		return nil, err
	}
	if err := f.ProtectSheet(s.Name, &excelize.SheetProtectionOptions{
		FormatColumns:       true,
		FormatRows:          true,
		InsertRows:          true,
		DeleteRows:          true,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	}); err != nil {
		return nil, err
	}

	d.logger().Debug("section serialized", "section", s.ID, "sheet", s.Name, "rows", len(rows))
	return &Serialized{Sheet: ws, Rows: rows}, nil
}

// applyColumns writes headers, widths and column styles and freezes row 1.
func (s *Section) applyColumns(ws *Worksheet) error {
	f := ws.file
	header, err := ws.styles.header(f, s.HeaderColor)
	if err != nil {
		return err
	}

	for i, c := range s.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if c.Width > 0 {
			if err := f.SetColWidth(s.Name, col, col, c.Width); err != nil {
				return err
			}
		}

		var style int
		switch {
		case c.Locked:
			style, err = ws.styles.locked(f)
		case c.Date:
			style, err = ws.styles.date(f)
		default:
			style, err = ws.styles.unlocked(f)
		}
		if err != nil {
			return err
		}
		if err := f.SetColStyle(s.Name, col, style); err != nil {
			return err
		}

		cell := fmt.Sprintf("%s%d", col, HeaderRow)
		if err := f.SetCellStr(s.Name, cell, c.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, cell, cell, header); err != nil {
			return err
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      HeaderRow,
		TopLeftCell: fmt.Sprintf("A%d", FirstDataRow),
		ActivePane:  "bottomLeft",
	})
}

// annotate attaches a note to every header cell whose column declares one.
func (s *Section) annotate(ws *Worksheet) error {
	for i, c := range s.Columns {
		if strings.TrimSpace(c.Annotation) == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, HeaderRow)
		if err != nil {
			return err
		}
		if err := ws.file.AddComment(s.Name, excelize.Comment{
			Cell:      cell,
			Author:    "formbook",
			Paragraph: []excelize.RichTextRun{{Text: c.Annotation}},
		}); err != nil {
			return err
		}
	}
	return nil
}

// Extract reads the section's sheet from f and re-keys its columns by
// column key.
func (s *Section) Extract(f *excelize.File) (*Values, error) {
	columns, err := parser.ExtractColumns(f, s.Name)
	if err != nil {
		return nil, err
	}
	return Rekey(s.Columns, s.Limits, columns), nil
}
