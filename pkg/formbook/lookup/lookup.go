// Package lookup builds the hidden reference sheets that feed dropdowns and
// foreign key resolution, at most once per workbook.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/parser"
	"github.com/xuri/excelize/v2"
)

// ErrNotCreated indicates a lookup sheet was referenced before any section
// created it.
var ErrNotCreated = errors.New("lookup sheet not created")

// ErrUnknownKind indicates a lookup kind without a sheet layout.
var ErrUnknownKind = errors.New("unknown lookup kind")

// Kind identifies a lookup list.
type Kind string

const (
	Institutions    Kind = "institutions"
	Programs        Kind = "programs"
	FundingAgencies Kind = "fundingAgencies"
	FileTypes       Kind = "fileTypes"
	CancerTypes     Kind = "cancerTypes"
	Species         Kind = "species"
)

// Columns of the program sheet.
const (
	ProgramIDColumn           = "A"
	ProgramNameColumn         = "B"
	ProgramAbbreviationColumn = "C"
	ProgramDescriptionColumn  = "D"
	ProgramDisplayColumn      = "E"
)

// Columns of the institution sheet.
const (
	InstitutionIDColumn   = "A"
	InstitutionNameColumn = "B"
)

// firstDataRow is the first row below the lookup sheet header.
const firstDataRow = 2

type layout struct {
	name    string
	headers []string
}

var layouts = map[Kind]layout{
	Institutions:    {"InstitutionList", []string{"ID", "Name"}},
	Programs:        {"ProgramList", []string{"ID", "Name", "Abbreviation", "Description", "Display Name"}},
	FundingAgencies: {"FundingAgencyList", []string{"Agency"}},
	FileTypes:       {"FileTypeList", []string{"File Type", "Extensions"}},
	CancerTypes:     {"CancerTypeList", []string{"Cancer Type"}},
	Species:         {"SpeciesList", []string{"Species"}},
}

// SheetName returns the reserved sheet name for kind.
func SheetName(kind Kind) string {
	return layouts[kind].name
}

// IsReserved reports whether name is a lookup sheet name.
func IsReserved(name string) bool {
	for _, l := range layouts {
		if l.name == name {
			return true
		}
	}
	return false
}

// Fetchers supplies lookup data. A nil function yields an empty list.
type Fetchers struct {
	Institutions    func(ctx context.Context) ([]models.Institution, error)
	Programs        func(ctx context.Context) ([]models.ProgramOption, error)
	FundingAgencies func(ctx context.Context) ([]string, error)
	FileTypes       func(ctx context.Context) ([]models.FileTypeOption, error)
	CancerTypes     func(ctx context.Context) ([]string, error)
	Species         func(ctx context.Context) ([]string, error)
}

// Sheet is a hidden reference sheet.
type Sheet struct {
	// Kind is the lookup kind.
	Kind Kind
	// Name is the reserved sheet name.
	Name string
	// FirstRow is the first data row (below the header).
	FirstRow int
	// LastRow is the last data row; it is below FirstRow for an empty list.
	LastRow int
}

// Len returns the number of data rows.
func (s *Sheet) Len() int {
	return max(0, s.LastRow-s.FirstRow+1)
}

func (s *Sheet) endRow() int {
	return max(s.FirstRow, s.LastRow)
}

// ListFormula returns the dropdown list source for col. An empty sheet
// still yields a valid one-row reference.
func (s *Sheet) ListFormula(col string) string {
	return formula.ListFormula(s.Name, col, s.FirstRow, s.endRow())
}

// Range returns the absolute reference to col's data rows.
func (s *Sheet) Range(col string) string {
	return formula.SheetRange(s.Name, col, s.FirstRow, s.endRow())
}

// Lookup returns a formula yielding valueCol of the row whose keyCol equals
// cell, or an empty string when no row matches.
func (s *Sheet) Lookup(cell, keyCol, valueCol string) string {
	return formula.Lookup(cell, s.Range(keyCol), s.Range(valueCol))
}

// Registry creates lookup sheets on demand and memoizes them per workbook.
// It is owned by a single export and is not safe for concurrent use.
type Registry struct {
	file     *excelize.File
	fetchers Fetchers
	logger   *slog.Logger
	sheets   map[Kind]*Sheet
}

// NewRegistry returns a registry for f.
func NewRegistry(f *excelize.File, fetchers Fetchers, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		file:     f,
		fetchers: fetchers,
		logger:   logger,
		sheets:   make(map[Kind]*Sheet),
	}
}

// Get returns a sheet created earlier in this workbook.
func (r *Registry) Get(kind Kind) (*Sheet, error) {
	if s, ok := r.sheets[kind]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotCreated, kind)
}

// GetOrCreate returns the sheet for kind, creating and populating it from
// the kind's fetcher the first time. A failing fetcher yields an empty sheet.
func (r *Registry) GetOrCreate(ctx context.Context, kind Kind) (*Sheet, error) {
	if s, ok := r.sheets[kind]; ok {
		return s, nil
	}
	l, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	idx, err := r.file.GetSheetIndex(l.name)
	if err != nil {
		return nil, err
	}
	if idx >= 0 {
		return r.adopt(kind, l)
	}

	rows, err := r.fetch(ctx, kind)
	if err != nil {
		r.logger.Warn("lookup fetch failed, using empty list", "kind", kind, "error", err)
		rows = nil
	}

	if _, err := r.file.NewSheet(l.name); err != nil {
		return nil, err
	}
	if err := r.file.SetSheetVisible(l.name, false); err != nil {
		return nil, err
	}
	header := make([]interface{}, len(l.headers))
	for i, h := range l.headers {
		header[i] = h
	}
	if err := r.file.SetSheetRow(l.name, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		rowNum := firstDataRow + i
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := r.file.SetSheetRow(l.name, cell, &row); err != nil {
			return nil, err
		}
		if kind == Programs {
			if err := r.setProgramDisplay(l.name, rowNum); err != nil {
				return nil, err
			}
		}
	}

	s := &Sheet{
		Kind:     kind,
		Name:     l.name,
		FirstRow: firstDataRow,
		LastRow:  firstDataRow + len(rows) - 1,
	}
	r.sheets[kind] = s
	r.logger.Debug("lookup sheet created", "kind", kind, "sheet", l.name, "rows", len(rows))
	return s, nil
}

// adopt registers a lookup sheet already present in the workbook.
func (r *Registry) adopt(kind Kind, l layout) (*Sheet, error) {
	bounds, err := parser.DataBounds(r.file, l.name)
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Kind:     kind,
		Name:     l.name,
		FirstRow: firstDataRow,
		LastRow:  max(bounds.LastRow, firstDataRow-1),
	}
	r.sheets[kind] = s
	return s, nil
}

// setProgramDisplay writes the display name cell, which falls back to the
// program id when the name is blank.
func (r *Registry) setProgramDisplay(sheet string, row int) error {
	id := formula.Cell(ProgramIDColumn, row)
	name := formula.Cell(ProgramNameColumn, row)
	f := formula.If(formula.Gt(formula.Len(formula.Trim(name)), "0"), name, id)
	return r.file.SetCellFormula(sheet, ProgramDisplayColumn+fmt.Sprint(row), f)
}

func (r *Registry) fetch(ctx context.Context, kind Kind) ([][]interface{}, error) {
	var rows [][]interface{}
	switch kind {
	case Institutions:
		if r.fetchers.Institutions == nil {
			return nil, nil
		}
		list, err := r.fetchers.Institutions(ctx)
		if err != nil {
			return nil, err
		}
		for _, inst := range list {
			rows = append(rows, []interface{}{inst.ID, inst.Name})
		}
	case Programs:
		if r.fetchers.Programs == nil {
			return nil, nil
		}
		list, err := r.fetchers.Programs(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			rows = append(rows, []interface{}{p.ID, p.Name, p.Abbreviation, p.Description})
		}
	case FileTypes:
		if r.fetchers.FileTypes == nil {
			return nil, nil
		}
		list, err := r.fetchers.FileTypes(ctx)
		if err != nil {
			return nil, err
		}
		for _, ft := range list {
			rows = append(rows, []interface{}{ft.Type, strings.Join(ft.Extensions, ", ")})
		}
	case FundingAgencies:
		return fetchStrings(ctx, r.fetchers.FundingAgencies)
	case CancerTypes:
		return fetchStrings(ctx, r.fetchers.CancerTypes)
	case Species:
		return fetchStrings(ctx, r.fetchers.Species)
	}
	return rows, nil
}

func fetchStrings(ctx context.Context, fn func(context.Context) ([]string, error)) ([][]interface{}, error) {
	if fn == nil {
		return nil, nil
	}
	list, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(list))
	for _, v := range list {
		rows = append(rows, []interface{}{v})
	}
	return rows, nil
}
