package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/xuri/excelize/v2"
)

// Index maps trimmed display names to lookup records for foreign key
// resolution while parsing.
type Index struct {
	// Institutions maps institution name to id.
	Institutions map[string]string
	// Programs maps program display name to program.
	Programs map[string]models.ProgramOption
}

// NewIndex builds an index from in-memory lists.
func NewIndex(institutions []models.Institution, programs []models.ProgramOption) *Index {
	idx := &Index{
		Institutions: make(map[string]string, len(institutions)),
		Programs:     make(map[string]models.ProgramOption, len(programs)),
	}
	for _, inst := range institutions {
		if name := strings.TrimSpace(inst.Name); name != "" {
			idx.Institutions[name] = strings.TrimSpace(inst.ID)
		}
	}
	for _, p := range programs {
		if name := strings.TrimSpace(p.DisplayName()); name != "" {
			idx.Programs[name] = p
		}
	}
	return idx
}

// LoadIndex builds an index from the fetchers, falling back to the
// workbook's own lookup sheets when a fetcher is missing, fails, or
// returns nothing.
func LoadIndex(ctx context.Context, f *excelize.File, fetchers Fetchers, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var institutions []models.Institution
	if fetchers.Institutions != nil {
		list, err := fetchers.Institutions(ctx)
		if err != nil {
			logger.Warn("lookup fetch failed", "kind", Institutions, "error", err)
		}
		institutions = list
	}
	if len(institutions) == 0 && f != nil {
		institutions = readInstitutions(f)
	}

	var programs []models.ProgramOption
	if fetchers.Programs != nil {
		list, err := fetchers.Programs(ctx)
		if err != nil {
			logger.Warn("lookup fetch failed", "kind", Programs, "error", err)
		}
		programs = list
	}
	if len(programs) == 0 && f != nil {
		programs = readPrograms(f)
	}

	return NewIndex(institutions, programs)
}

// Institution resolves a name to its trimmed form and id. An unknown name
// keeps its trimmed form with an empty id.
func (idx *Index) Institution(name string) (string, string) {
	name = strings.TrimSpace(name)
	if idx == nil || name == "" {
		return name, ""
	}
	return name, idx.Institutions[name]
}

// Program resolves a program display name. ok is false for unknown names.
func (idx *Index) Program(name string) (models.ProgramOption, bool) {
	if idx == nil {
		return models.ProgramOption{}, false
	}
	p, ok := idx.Programs[strings.TrimSpace(name)]
	return p, ok
}

func readRows(f *excelize.File, kind Kind) [][]string {
	rows, err := f.GetRows(SheetName(kind))
	if err != nil || len(rows) < firstDataRow {
		return nil
	}
	return rows[firstDataRow-1:]
}

func column(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func readInstitutions(f *excelize.File) []models.Institution {
	var list []models.Institution
	for _, row := range readRows(f, Institutions) {
		list = append(list, models.Institution{ID: column(row, 0), Name: column(row, 1)})
	}
	return list
}

func readPrograms(f *excelize.File) []models.ProgramOption {
	var list []models.ProgramOption
	for _, row := range readRows(f, Programs) {
		list = append(list, models.ProgramOption{
			ID:           column(row, 0),
			Name:         column(row, 1),
			Abbreviation: column(row, 2),
			Description:  column(row, 3),
		})
	}
	return list
}
