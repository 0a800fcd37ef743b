package formbook

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
	"github.com/ukaji3/formbook-go/pkg/formbook/sections"
	"github.com/xuri/excelize/v2"
)

// Result is the outcome of parsing a workbook.
type Result struct {
	// Data is the reconstructed questionnaire with per-section status.
	Data *models.QuestionnaireData
	// Metadata is read from the hidden metadata sheet when present.
	Metadata models.Metadata
	// Warnings aggregates the recoverable problems met while parsing, or
	// nil.
	Warnings error
}

// Parse reads an exported workbook back into a questionnaire. Only an
// unreadable buffer is fatal; missing sheets and malformed sections are
// reported in Result.Warnings and leave their fields at the defaults.
func Parse(ctx context.Context, buf []byte, opts Options) (*Result, error) {
	logger := opts.logger()

	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	known := map[string]bool{sections.MetadataSheet: true}
	for _, s := range sections.Form() {
		known[s.Name] = true
	}
	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
		if !known[name] && !lookup.IsReserved(name) {
			logger.Info("unrecognized sheet ignored", "sheet", name)
		}
	}

	var warnings *multierror.Error
	result := &Result{}

	if present[sections.MetadataSheet] {
		v, err := sections.Metadata().Extract(f)
		if err != nil {
			warnings = multierror.Append(warnings, NewSectionError(sections.MetadataSheet, StageExtract, err))
		} else {
			result.Metadata = sections.ReadMetadata(v)
			compareMetadata(logger, opts.Metadata, result.Metadata)
		}
	} else {
		logger.Info("metadata sheet missing", "sheet", sections.MetadataSheet)
	}

	acc, err := toMap(models.DefaultQuestionnaire())
	if err != nil {
		return nil, err
	}
	deps := &section.MapDeps{
		Index:  lookup.LoadIndex(ctx, f, opts.Fetchers, logger),
		Logger: logger,
	}

	var statuses []models.SectionStatus
	for _, s := range sections.Form() {
		if !present[s.Name] {
			logger.Info("section sheet missing", "section", s.ID, "sheet", s.Name)
			warnings = multierror.Append(warnings, NewSectionError(s.Name, StageExtract, ErrSheetMissing))
			continue
		}

		partial, err := parseSection(f, s, deps)
		if err != nil {
			logger.Warn("section skipped", "section", s.ID, "sheet", s.Name, "error", err)
			warnings = multierror.Append(warnings, err)
			continue
		}
		m, err := toMap(partial)
		if err != nil {
			warnings = multierror.Append(warnings, NewSectionError(s.Name, StageMap, err))
			continue
		}
		deepMerge(acc, m)
		statuses = append(statuses, models.SectionStatus{Name: s.ID, Status: sectionStatus(m)})
	}

	data, err := fromMap(acc)
	if err != nil {
		return nil, err
	}
	data.Sections = statuses

	result.Data = data
	result.Warnings = warnings.ErrorOrNil()
	return result, nil
}

// parseSection extracts and maps one section. A panic while mapping is
// returned as an error so the remaining sections still parse.
func parseSection(f *excelize.File, s *section.Section, deps *section.MapDeps) (partial *models.QuestionnaireData, err error) {
	defer func() {
		if r := recover(); r != nil {
			partial = nil
			err = NewSectionError(s.Name, StageMap, fmt.Errorf("panic: %v", r))
		}
	}()

	v, err := s.Extract(f)
	if err != nil {
		return nil, NewSectionError(s.Name, StageExtract, err)
	}
	if missing := v.Missing(); len(missing) > 0 {
		deps.Logger.Info("columns not found", "section", s.ID, "sheet", s.Name, "columns", missing)
	}
	partial = s.MapValues(v, deps)
	if partial == nil {
		partial = &models.QuestionnaireData{}
	}
	return partial, nil
}

// compareMetadata logs fields of the workbook's metadata that differ from
// the expected record. Mismatches never stop parsing.
func compareMetadata(logger *slog.Logger, expected, found models.Metadata) {
	fields := []struct {
		name            string
		expected, found string
	}{
		{"submissionId", expected.SubmissionID, found.SubmissionID},
		{"applicantId", expected.ApplicantID, found.ApplicantID},
		{"status", expected.Status, found.Status},
		{"formVersion", expected.FormVersion, found.FormVersion},
		{"devTier", expected.DevTier, found.DevTier},
		{"templateVersion", expected.TemplateVersion, found.TemplateVersion},
	}
	for _, field := range fields {
		if field.expected != "" && field.expected != field.found {
			logger.Info("metadata mismatch", "field", field.name, "expected", field.expected, "found", field.found)
		}
	}
}
