package sections

import (
	"context"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

const (
	fundingGroup     = "funding"
	publicationGroup = "publications"
	plannedGroup     = "plannedPublications"
	repositoryGroup  = "repositories"
)

// ProgramAndStudy returns section B: the owning program, the study and its
// funding, publications and other repositories.
func ProgramAndStudy() *section.Section {
	return &section.Section{
		ID:          SectionB,
		Name:        ProgramAndStudySheet,
		HeaderColor: "CFE2F3",
		Columns: section.Schema{
			{Key: "program", Header: "Program", Width: 35, Annotation: "Select a program from the list."},
			{Key: "programID", Header: "Program ID", Width: 38, Locked: true},
			{Key: "programAbbreviation", Header: "Program Abbreviation", Width: 20},
			{Key: "programDescription", Header: "Program Description", Width: 40},
			{Key: "studyName", Header: "Study Title", Width: 40},
			{Key: "studyAbbreviation", Header: "Study Abbreviation", Width: 20},
			{Key: "studyDescription", Header: "Study Description", Width: 50},
			{Key: "isDbGapRegistered", Header: "dbGaP Registered", Width: 18},
			{Key: "dbGaPPPHSNumber", Header: "dbGaP PHS Number", Width: 20, Annotation: "Required when the study is registered in dbGaP, e.g. phs000001."},
			{Key: "GPAName", Header: "GPA Name", Width: 25},
			{Key: "fundingAgency", Header: "Funding Agency", Width: 30, Group: fundingGroup},
			{Key: "fundingGrantNumbers", Header: "Grant or Contract Numbers", Width: 30, Group: fundingGroup},
			{Key: "fundingProgramOfficer", Header: "NCI Program Officer", Width: 25, Group: fundingGroup},
			{Key: "fundingGPA", Header: "NCI GPA", Width: 25, Group: fundingGroup},
			{Key: "publicationTitle", Header: "Publication Title", Width: 40, Group: publicationGroup},
			{Key: "publicationPubmedID", Header: "PubMed ID", Width: 15, Group: publicationGroup},
			{Key: "publicationDOI", Header: "DOI", Width: 25, Group: publicationGroup},
			{Key: "plannedTitle", Header: "Planned Publication Title", Width: 40, Group: plannedGroup},
			{Key: "plannedExpectedDate", Header: "Expected Publication Date", Width: 18, Group: plannedGroup, Date: true},
			{Key: "repositoryName", Header: "Repository Name", Width: 30, Group: repositoryGroup},
			{Key: "repositoryStudyID", Header: "Repository Study ID", Width: 20, Group: repositoryGroup},
			{Key: "repositoryDataTypes", Header: "Data Types Submitted", Width: 30, Group: repositoryGroup, Multi: true, Annotation: "Separate multiple values with |"},
			{Key: "repositoryOtherDataTypes", Header: "Other Data Types Submitted", Width: 30, Group: repositoryGroup},
		},
		Limits: section.Limits{
			"programAbbreviation":      100,
			"programDescription":       500,
			"studyName":                100,
			"studyAbbreviation":        20,
			"studyDescription":         2500,
			"dbGaPPPHSNumber":          50,
			"GPAName":                  100,
			"fundingGrantNumbers":      250,
			"fundingProgramOfficer":    50,
			"fundingGPA":               100,
			"publicationTitle":         500,
			"publicationPubmedID":      20,
			"publicationDOI":           50,
			"plannedTitle":             500,
			"repositoryName":           50,
			"repositoryStudyID":        50,
			"repositoryOtherDataTypes": 1000,
		},
		Write:     writeProgramAndStudy,
		Validate:  validateProgramAndStudy,
		MapValues: mapProgramAndStudy,
	}
}

func writeProgramAndStudy(_ context.Context, d *section.Deps, ws *section.Worksheet) ([]int, error) {
	data := d.Data
	study := data.Study
	row := section.FirstDataRow

	program := data.Program.Name
	if program == "" {
		program = data.Program.ID
	}
	ws.Set("program", row, program)
	ws.Set("programAbbreviation", row, data.Program.Abbreviation)
	ws.Set("programDescription", row, data.Program.Description)
	ws.Set("studyName", row, study.Name)
	ws.Set("studyAbbreviation", row, study.Abbreviation)
	ws.Set("studyDescription", row, study.Description)
	ws.SetBool("isDbGapRegistered", row, study.IsDbGapRegistered)
	ws.Set("dbGaPPPHSNumber", row, study.DbGaPPPHSNumber)
	ws.Set("GPAName", row, study.GPAName)

	ws.Records(fundingGroup, len(study.Funding), func(i, row int) {
		f := study.Funding[i]
		ws.Set("fundingAgency", row, f.Agency)
		ws.Set("fundingGrantNumbers", row, f.GrantNumbers)
		ws.Set("fundingProgramOfficer", row, f.NciProgramOfficer)
		ws.Set("fundingGPA", row, f.NciGPA)
	})
	ws.Records(publicationGroup, len(study.Publications), func(i, row int) {
		p := study.Publications[i]
		ws.Set("publicationTitle", row, p.Title)
		ws.Set("publicationPubmedID", row, p.PubmedID)
		ws.Set("publicationDOI", row, p.DOI)
	})
	ws.Records(plannedGroup, len(study.PlannedPublications), func(i, row int) {
		p := study.PlannedPublications[i]
		ws.Set("plannedTitle", row, p.Title)
		ws.SetDate("plannedExpectedDate", row, p.ExpectedDate)
	})
	ws.Records(repositoryGroup, len(study.Repositories), func(i, row int) {
		r := study.Repositories[i]
		ws.Set("repositoryName", row, r.Name)
		ws.Set("repositoryStudyID", row, r.StudyID)
		ws.SetList("repositoryDataTypes", row, r.DataTypesSubmitted)
		ws.Set("repositoryOtherDataTypes", row, r.OtherDataTypesSubmitted)
	})

	return ws.WrittenRows(), nil
}

func validateProgramAndStudy(ctx context.Context, d *section.Deps, ws *section.Worksheet) error {
	if err := lookupList(ctx, d, ws, lookup.Programs, lookup.ProgramDisplayColumn, "program", "program"); err != nil {
		return err
	}
	if err := derive(d, ws, lookup.Programs, lookup.ProgramDisplayColumn, lookup.ProgramIDColumn, "program", "programID"); err != nil {
		return err
	}
	if err := lookupList(ctx, d, ws, lookup.FundingAgencies, "A", "funding agency", "fundingAgency"); err != nil {
		return err
	}

	yesNo(ws, "isDbGapRegistered")
	ws.Disable([]string{"dbGaPPPHSNumber"}, func(int) string {
		return notYes(ws, "isDbGapRegistered")
	}, messages.Get(messages.DependsOnYes, "dbGaP Registered"))
	ws.Check("dbGaPPPHSNumber", func(cell string) string {
		return formula.Eq(formula.Upper(formula.Left(cell, 3)), formula.Str("PHS"))
	}, messages.Get(messages.PHSFormat))

	futureDate(ws, "plannedExpectedDate", true)
	return nil
}

func mapProgramAndStudy(v *section.Values, deps *section.MapDeps) *models.QuestionnaireData {
	out := &models.QuestionnaireData{}

	name := v.Str("program")
	out.Program = models.Program{
		Name:         name,
		Abbreviation: v.Str("programAbbreviation"),
		Description:  v.Str("programDescription"),
	}
	if p, ok := deps.Program(name); ok {
		out.Program.ID = p.ID
		out.Program.Name = p.Name
		if out.Program.Abbreviation == "" {
			out.Program.Abbreviation = p.Abbreviation
		}
		if out.Program.Description == "" {
			out.Program.Description = p.Description
		}
	}

	out.Study = models.Study{
		Name:              v.Str("studyName"),
		Abbreviation:      v.Str("studyAbbreviation"),
		Description:       v.Str("studyDescription"),
		IsDbGapRegistered: v.Bool("isDbGapRegistered"),
		DbGaPPPHSNumber:   v.Str("dbGaPPPHSNumber"),
		GPAName:           v.Str("GPAName"),
		Funding: section.Collect(v, fundingGroup, func(i int) models.Funding {
			return models.Funding{
				Agency:            v.At("fundingAgency", i),
				GrantNumbers:      v.At("fundingGrantNumbers", i),
				NciProgramOfficer: v.At("fundingProgramOfficer", i),
				NciGPA:            v.At("fundingGPA", i),
			}
		}),
		Publications: section.Collect(v, publicationGroup, func(i int) models.Publication {
			return models.Publication{
				Title:    v.At("publicationTitle", i),
				PubmedID: v.At("publicationPubmedID", i),
				DOI:      v.At("publicationDOI", i),
			}
		}),
		PlannedPublications: section.Collect(v, plannedGroup, func(i int) models.PlannedPublication {
			return models.PlannedPublication{
				Title:        v.At("plannedTitle", i),
				ExpectedDate: v.DateAt("plannedExpectedDate", i),
			}
		}),
		Repositories: section.Collect(v, repositoryGroup, func(i int) models.Repository {
			return models.Repository{
				Name:                    v.At("repositoryName", i),
				StudyID:                 v.At("repositoryStudyID", i),
				DataTypesSubmitted:      v.ListAt("repositoryDataTypes", i),
				OtherDataTypesSubmitted: v.At("repositoryOtherDataTypes", i),
			}
		}),
	}
	return out
}
