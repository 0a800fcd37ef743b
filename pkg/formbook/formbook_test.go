package formbook

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/sections"
	"github.com/xuri/excelize/v2"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }
	opts.Metadata = models.Metadata{
		SubmissionID:  uuid.New().String(),
		ApplicantName: "Ada Lovelace",
		Status:        "In Progress",
		FormVersion:   "3.0",
	}
	opts.Fetchers = lookup.Fetchers{
		Institutions: func(context.Context) ([]models.Institution, error) {
			return []models.Institution{{ID: "inst-1", Name: "Foo University"}, {ID: "inst-2", Name: "Bar Institute"}}, nil
		},
		Programs: func(context.Context) ([]models.ProgramOption, error) {
			return []models.ProgramOption{{ID: "p1", Name: "Program One", Abbreviation: "P1"}}, nil
		},
		FundingAgencies: func(context.Context) ([]string, error) {
			return nil, errors.New("agency service down")
		},
		FileTypes: func(context.Context) ([]models.FileTypeOption, error) {
			return []models.FileTypeOption{{Type: "Genomic", Extensions: []string{"bam"}}}, nil
		},
		CancerTypes: func(context.Context) ([]string, error) { return []string{"Breast"}, nil },
		Species:     func(context.Context) ([]string, error) { return []string{"Homo sapiens"}, nil },
	}
	return opts
}

func fixture() *models.QuestionnaireData {
	return &models.QuestionnaireData{
		PI: models.PI{
			FirstName:     "Ada",
			LastName:      "Lovelace",
			Email:         "ada@foo.edu",
			ORCID:         "0000-0002-1825-009X",
			Institution:   "Foo University",
			InstitutionID: "inst-1",
		},
		PrimaryContact: &models.Contact{
			FirstName:     "Grace",
			LastName:      "Hopper",
			Email:         "grace@bar.org",
			Institution:   "Bar Institute",
			InstitutionID: "inst-2",
		},
		AdditionalContacts: []models.Contact{
			{FirstName: "Alan", Institution: "Elsewhere"},
			{FirstName: "Edsger", Phone: "555-0199"},
			{FirstName: "Barbara", Email: "barbara@foo.edu"},
		},
		Program: models.Program{ID: "p1", Name: "Program One", Abbreviation: "P1"},
		Study: models.Study{
			Name:         "A Study",
			Abbreviation: "AS",
			Funding:      []models.Funding{{Agency: "National Cancer Institute", GrantNumbers: "R01CA000001"}},
			Repositories: []models.Repository{{Name: "GEO", DataTypesSubmitted: []string{"genomics"}}},
		},
		AccessTypes:             []string{"Controlled Access"},
		TargetedSubmissionDate:  "11/15/2027",
		TargetedReleaseDate:     "01/31/2028",
		CancerTypes:             []string{"Breast", "Other"},
		Species:                 []string{"Homo sapiens"},
		OtherSpeciesEnabled:     true,
		OtherSpeciesOfSubjects:  "Mus musculus",
		NumberOfParticipants:    42,
		ModelSystems:            true,
		DataTypes:               []string{"genomics", "imaging"},
		ClinicalData:            models.ClinicalData{DataTypes: []string{"demographicData"}},
		ImagingDataDeIdentified: true,
		Files: []models.FileInfo{
			{Type: "Genomic", Extension: "bam", Count: 100, Amount: "1 TB"},
			{Type: "Imaging", Extension: "dcm", Count: 5},
		},
		SubmitterComment: "None",
	}
}

func TestExportParseRoundTrip(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()

	buf, err := Export(ctx, fixture(), opts)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	res, err := Parse(ctx, buf, opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if res.Warnings != nil {
		t.Errorf("Unexpected warnings: %v", res.Warnings)
	}

	expectedStatus := []models.SectionStatus{
		{Name: sections.SectionA, Status: models.StatusInProgress},
		{Name: sections.SectionB, Status: models.StatusInProgress},
		{Name: sections.SectionC, Status: models.StatusInProgress},
		{Name: sections.SectionD, Status: models.StatusInProgress},
	}
	if !reflect.DeepEqual(res.Data.Sections, expectedStatus) {
		t.Errorf("Sections = %+v, expected %+v", res.Data.Sections, expectedStatus)
	}

	got := *res.Data
	got.Sections = nil
	if expected := fixture(); !reflect.DeepEqual(&got, expected) {
		t.Errorf("Round trip mismatch\n got: %+v\nwant: %+v", &got, expected)
	}

	if res.Metadata.SubmissionID != opts.Metadata.SubmissionID {
		t.Errorf("SubmissionID = %q, expected %q", res.Metadata.SubmissionID, opts.Metadata.SubmissionID)
	}
	if res.Metadata.TemplateVersion != TemplateVersion {
		t.Errorf("TemplateVersion = %q, expected %q", res.Metadata.TemplateVersion, TemplateVersion)
	}
	if res.Metadata.ExportedAt != "2026-10-14T09:30:00Z" {
		t.Errorf("ExportedAt = %q", res.Metadata.ExportedAt)
	}
}

func TestExportDoesNotModifyInput(t *testing.T) {
	data := fixture()
	if _, err := Export(context.Background(), data, testOptions()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !reflect.DeepEqual(data, fixture()) {
		t.Error("Export modified its input")
	}
}

func TestExportWorkbookLayout(t *testing.T) {
	buf, err := Export(context.Background(), fixture(), testOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	counts := make(map[string]int)
	for _, name := range f.GetSheetList() {
		counts[name]++
	}
	if counts[defaultSheet] != 0 {
		t.Error("Expected default sheet to be removed")
	}
	for _, name := range []string{
		sections.MetadataSheet, sections.PIAndContactSheet, sections.ProgramAndStudySheet,
		sections.DataAccessSheet, sections.DataTypesSheet,
		"InstitutionList", "ProgramList", "FundingAgencyList", "FileTypeList", "CancerTypeList", "SpeciesList",
	} {
		if counts[name] != 1 {
			t.Errorf("Sheet %q appears %d times, expected once", name, counts[name])
		}
	}

	for _, name := range []string{sections.MetadataSheet, "InstitutionList", "SpeciesList"} {
		visible, err := f.GetSheetVisible(name)
		if err != nil {
			t.Fatalf("GetSheetVisible(%q) failed: %v", name, err)
		}
		if visible {
			t.Errorf("Expected %q to be hidden", name)
		}
	}

	if got := f.GetSheetName(f.GetActiveSheetIndex()); got != sections.PIAndContactSheet {
		t.Errorf("Active sheet = %q, expected %q", got, sections.PIAndContactSheet)
	}

	rows, err := f.GetRows("InstitutionList")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("InstitutionList has %d rows, expected header plus 2", len(rows))
	}
}

func TestExportRowExtent(t *testing.T) {
	buf, err := Export(context.Background(), fixture(), testOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	// Three additional contacts fill rows 2..4 of the first name column.
	col, err := sections.PIAndContact().Columns.Letter("acFirstName")
	if err != nil {
		t.Fatalf("Letter failed: %v", err)
	}
	for row, expected := range map[int]string{2: "Alan", 3: "Edsger", 4: "Barbara", 5: ""} {
		got, err := f.GetCellValue(sections.PIAndContactSheet, col+strconv.Itoa(row))
		if err != nil {
			t.Fatalf("GetCellValue failed: %v", err)
		}
		if got != expected {
			t.Errorf("row %d = %q, expected %q", row, got, expected)
		}
	}
}

// exportedFile exports the fixture and reopens the workbook.
func exportedFile(t *testing.T) *excelize.File {
	t.Helper()
	buf, err := Export(context.Background(), fixture(), testOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	return f
}

func TestExportValidationFormulaLength(t *testing.T) {
	f := exportedFile(t)
	defer f.Close()

	unescape := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")
	checked := 0
	for _, sheet := range f.GetSheetList() {
		dvs, err := f.GetDataValidations(sheet)
		if err != nil {
			t.Fatalf("GetDataValidations(%q) failed: %v", sheet, err)
		}
		for _, dv := range dvs {
			checked++
			if n := len(unescape.Replace(dv.Formula1)); n > formula.MaxValidationLength {
				t.Errorf("%s %s formula is %d characters: %s", sheet, dv.Sqref, n, dv.Formula1)
			}
		}
	}
	if checked == 0 {
		t.Error("Expected data validations in the exported workbook")
	}
}

func TestExportDerivesIDs(t *testing.T) {
	f := exportedFile(t)
	defer f.Close()

	a := sections.PIAndContact().Columns
	b := sections.ProgramAndStudy().Columns
	institution := func(src string, row int) string {
		return `IFERROR(INDEX('InstitutionList'!$A$2:$A$3,MATCH(` + a.Addr(src, row) + `,'InstitutionList'!$B$2:$B$3,0)),"")`
	}
	tests := []struct {
		sheet, key string
		row        int
		expected   string
	}{
		{sections.PIAndContactSheet, "piInstitutionID", 2, institution("piInstitution", 2)},
		{sections.PIAndContactSheet, "pcInstitutionID", 2, institution("pcInstitution", 2)},
		{sections.PIAndContactSheet, "acInstitutionID", 4, institution("acInstitution", 4)},
		// Rows past the written records are derived up to the rule capacity.
		{sections.PIAndContactSheet, "acInstitutionID", 21, institution("acInstitution", 21)},
		{sections.ProgramAndStudySheet, "programID", 2,
			`IFERROR(INDEX('ProgramList'!$A$2:$A$2,MATCH(` + b.Addr("program", 2) + `,'ProgramList'!$E$2:$E$2,0)),"")`},
	}
	for _, tt := range tests {
		schema := a
		if tt.sheet == sections.ProgramAndStudySheet {
			schema = b
		}
		col, err := schema.Letter(tt.key)
		if err != nil {
			t.Fatalf("Letter(%q) failed: %v", tt.key, err)
		}
		got, err := f.GetCellFormula(tt.sheet, col+strconv.Itoa(tt.row))
		if err != nil {
			t.Fatalf("GetCellFormula failed: %v", err)
		}
		if got != tt.expected {
			t.Errorf("%s row %d formula = %q, expected %q", tt.key, tt.row, got, tt.expected)
		}
	}
}

func TestExportNil(t *testing.T) {
	ctx := context.Background()
	buf, err := Export(ctx, nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Export(nil) failed: %v", err)
	}
	res, err := Parse(ctx, buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, s := range res.Data.Sections {
		if s.Status != models.StatusNotStarted {
			t.Errorf("Section %s status = %q, expected %q", s.Name, s.Status, models.StatusNotStarted)
		}
	}
	if len(res.Data.Sections) != 4 {
		t.Errorf("Expected 4 section statuses, got %d", len(res.Data.Sections))
	}
}

func TestParseMissingSheet(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()

	buf, err := Export(ctx, fixture(), opts)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	if err := f.DeleteSheet(sections.DataTypesSheet); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}
	edited, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	f.Close()

	res, err := Parse(ctx, edited.Bytes(), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !errors.Is(res.Warnings, ErrSheetMissing) {
		t.Errorf("Warnings = %v, expected ErrSheetMissing", res.Warnings)
	}
	var se *SectionError
	if !errors.As(res.Warnings, &se) || se.Sheet != sections.DataTypesSheet {
		t.Errorf("Expected SectionError for %q, got %v", sections.DataTypesSheet, res.Warnings)
	}

	if res.Data.Files != nil || res.Data.DataTypes != nil || res.Data.SubmitterComment != "" {
		t.Errorf("Expected Data Types fields at defaults, got %+v", res.Data)
	}
	for _, s := range res.Data.Sections {
		if s.Name == sections.SectionD {
			t.Errorf("Expected no status for section D, got %q", s.Status)
		}
	}
	if len(res.Data.Sections) != 3 {
		t.Errorf("Expected 3 section statuses, got %+v", res.Data.Sections)
	}
	if res.Data.PI.FirstName != "Ada" {
		t.Errorf("PI.FirstName = %q, expected other sections to parse", res.Data.PI.FirstName)
	}
}

func TestParseInvalidFormat(t *testing.T) {
	_, err := Parse(context.Background(), []byte("not a workbook"), DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse error = %v, expected ErrInvalidFormat", err)
	}
}

func TestParseUsesWorkbookLookups(t *testing.T) {
	ctx := context.Background()
	buf, err := Export(ctx, fixture(), testOptions())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	res, err := Parse(ctx, buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if res.Data.PI.InstitutionID != "inst-1" {
		t.Errorf("PI.InstitutionID = %q, expected id from the workbook's lookup sheet", res.Data.PI.InstitutionID)
	}
	if res.Data.Program.ID != "p1" {
		t.Errorf("Program.ID = %q, expected p1", res.Data.Program.ID)
	}
}

func TestParseLogsMetadataMismatch(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	buf, err := Export(ctx, fixture(), opts)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var logs bytes.Buffer
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	opts.Metadata.SubmissionID = uuid.New().String()
	if _, err := Parse(ctx, buf, opts); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.Contains(logs.String(), "metadata mismatch") || !strings.Contains(logs.String(), "field=submissionId") {
		t.Errorf("Expected a submissionId mismatch log, got %q", logs.String())
	}
}

func TestParseLogsUnrecognizedSheet(t *testing.T) {
	f := exportedFile(t)
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	edited, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	f.Close()

	var logs bytes.Buffer
	opts := testOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	res, err := Parse(context.Background(), edited.Bytes(), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.Contains(logs.String(), "unrecognized sheet ignored") || !strings.Contains(logs.String(), "sheet=Notes") {
		t.Errorf("Expected a log for the Notes sheet, got %q", logs.String())
	}
	if strings.Contains(logs.String(), "sheet=InstitutionList") {
		t.Errorf("Lookup sheets should not be reported, got %q", logs.String())
	}
	if res.Data.PI.FirstName != "Ada" {
		t.Errorf("PI.FirstName = %q, expected %q", res.Data.PI.FirstName, "Ada")
	}
}
