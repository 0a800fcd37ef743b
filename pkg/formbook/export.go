package formbook

import (
	"context"
	"fmt"
	"time"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
	"github.com/ukaji3/formbook-go/pkg/formbook/sections"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates with every new workbook.
const defaultSheet = "Sheet1"

// Export renders data into a workbook and returns the xlsx bytes. A nil
// data exports an empty form. Sections are serialized in order so later
// sections reuse the lookup sheets earlier ones created.
func Export(ctx context.Context, data *models.QuestionnaireData, opts Options) ([]byte, error) {
	logger := opts.logger()

	snapshot := models.DefaultQuestionnaire()
	if data != nil {
		if err := deepcopy.Copy(snapshot, data); err != nil {
			return nil, fmt.Errorf("clone questionnaire: %w", err)
		}
	}

	now := opts.now()
	f := excelize.NewFile()
	defer f.Close()

	stamp := now.UTC().Format(time.RFC3339)
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:        opts.creator(),
		LastModifiedBy: opts.creator(),
		Title:          "Submission Request Form",
		Created:        stamp,
		Modified:       stamp,
	}); err != nil {
		return nil, err
	}
	fullCalc := true
	if err := f.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &fullCalc}); err != nil {
		return nil, err
	}

	meta := opts.Metadata
	if meta.TemplateVersion == "" {
		meta.TemplateVersion = TemplateVersion
	}
	meta.ExportedAt = stamp

	deps := &section.Deps{
		File:     f,
		Lookups:  lookup.NewRegistry(f, opts.Fetchers, logger),
		Data:     snapshot,
		Metadata: meta,
		Now:      now,
		Logger:   logger,
	}
	for _, s := range sections.All() {
		out, err := s.Serialize(ctx, deps)
		if err != nil {
			return nil, NewSectionError(s.Name, StageSerialize, err)
		}
		logger.Debug("sheet written", "section", s.ID, "sheet", s.Name, "rows", out.Rows)
	}

	if idx, err := f.GetSheetIndex(defaultSheet); err == nil && idx >= 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	idx, err := f.GetSheetIndex(sections.PIAndContactSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
