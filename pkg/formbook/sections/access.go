package sections

import (
	"context"
	"math"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

const (
	timeConstraintGroup = "timeConstraints"
	cancerTypeGroup     = "cancerTypes"
	speciesGroup        = "species"
)

// AccessTypes are the accepted data access types.
var AccessTypes = []string{"Open Access", "Controlled Access"}

// DataAccessAndDisease returns section C: access types, target dates,
// disease and subject information.
func DataAccessAndDisease() *section.Section {
	return &section.Section{
		ID:          SectionC,
		Name:        DataAccessSheet,
		HeaderColor: "FCE5CD",
		Columns: section.Schema{
			{Key: "accessTypes", Header: "Access Types", Width: 30, Multi: true, Annotation: "Open Access and/or Controlled Access, separated by |"},
			{Key: "targetedSubmissionDate", Header: "Targeted Data Submission Delivery Date", Width: 22, Date: true},
			{Key: "targetedReleaseDate", Header: "Targeted Data Release Date", Width: 22, Date: true},
			{Key: "tcDescription", Header: "Time Constraint Description", Width: 40, Group: timeConstraintGroup},
			{Key: "tcEffectiveDate", Header: "Time Constraint Effective Date", Width: 22, Group: timeConstraintGroup, Date: true},
			{Key: "cancerType", Header: "Cancer Types", Width: 30, Group: cancerTypeGroup},
			{Key: "otherCancerTypesEnabled", Header: "Other Cancer Types Included", Width: 18},
			{Key: "otherCancerTypes", Header: "Other Cancer Types", Width: 30},
			{Key: "preCancerTypes", Header: "Pre-Cancer Types", Width: 30},
			{Key: "species", Header: "Species of Subjects", Width: 25, Group: speciesGroup},
			{Key: "otherSpeciesEnabled", Header: "Other Species Included", Width: 18},
			{Key: "otherSpeciesOfSubjects", Header: "Other Species of Subjects", Width: 30},
			{Key: "numberOfParticipants", Header: "Number of Subjects Included", Width: 18},
			{Key: "cellLines", Header: "Cell Lines", Width: 12},
			{Key: "modelSystems", Header: "Model Systems", Width: 12},
		},
		Limits: section.Limits{
			"tcDescription":          100,
			"otherCancerTypes":       1000,
			"preCancerTypes":         500,
			"otherSpeciesOfSubjects": 500,
		},
		Write:     writeDataAccess,
		Validate:  validateDataAccess,
		MapValues: mapDataAccess,
	}
}

func writeDataAccess(_ context.Context, d *section.Deps, ws *section.Worksheet) ([]int, error) {
	data := d.Data
	row := section.FirstDataRow

	ws.SetList("accessTypes", row, data.AccessTypes)
	ws.SetDate("targetedSubmissionDate", row, data.TargetedSubmissionDate)
	ws.SetDate("targetedReleaseDate", row, data.TargetedReleaseDate)
	ws.SetBool("otherCancerTypesEnabled", row, data.OtherCancerTypesEnabled)
	ws.Set("otherCancerTypes", row, data.OtherCancerTypes)
	ws.Set("preCancerTypes", row, data.PreCancerTypes)
	ws.SetBool("otherSpeciesEnabled", row, data.OtherSpeciesEnabled)
	ws.Set("otherSpeciesOfSubjects", row, data.OtherSpeciesOfSubjects)
	ws.SetInt("numberOfParticipants", row, data.NumberOfParticipants)
	ws.SetBool("cellLines", row, data.CellLines)
	ws.SetBool("modelSystems", row, data.ModelSystems)

	ws.Records(timeConstraintGroup, len(data.TimeConstraints), func(i, row int) {
		tc := data.TimeConstraints[i]
		ws.Set("tcDescription", row, tc.Description)
		ws.SetDate("tcEffectiveDate", row, tc.EffectiveDate)
	})
	ws.Records(cancerTypeGroup, len(data.CancerTypes), func(i, row int) {
		ws.Set("cancerType", row, data.CancerTypes[i])
	})
	ws.Records(speciesGroup, len(data.Species), func(i, row int) {
		ws.Set("species", row, data.Species[i])
	})

	return ws.WrittenRows(), nil
}

func validateDataAccess(ctx context.Context, d *section.Deps, ws *section.Worksheet) error {
	ws.Prompt("accessTypes", "Enter Open Access and/or Controlled Access, separated by |.")

	futureDate(ws, "targetedSubmissionDate", true)
	futureDate(ws, "targetedReleaseDate", true)
	ws.Check("targetedReleaseDate", func(cell string) string {
		submission := ws.Addr("targetedSubmissionDate", section.FirstDataRow)
		return formula.Or(
			formula.IsBlank(cell),
			formula.IsBlank(submission),
			formula.Gte(cell, submission),
		)
	}, messages.Get(messages.DateOrder, "Targeted Data Release Date", "Targeted Data Submission Delivery Date"))
	futureDate(ws, "tcEffectiveDate", true)

	if err := lookupList(ctx, d, ws, lookup.CancerTypes, "A", "cancer type", "cancerType"); err != nil {
		return err
	}
	if err := lookupList(ctx, d, ws, lookup.Species, "A", "species", "species"); err != nil {
		return err
	}

	yesNo(ws, "otherCancerTypesEnabled", "otherSpeciesEnabled", "cellLines", "modelSystems")
	ws.Disable([]string{"otherCancerTypes"}, func(int) string {
		return notYes(ws, "otherCancerTypesEnabled")
	}, messages.Get(messages.DependsOnYes, "Other Cancer Types Included"))
	ws.Disable([]string{"otherSpeciesOfSubjects"}, func(int) string {
		return notYes(ws, "otherSpeciesEnabled")
	}, messages.Get(messages.DependsOnYes, "Other Species Included"))

	ws.Whole("numberOfParticipants", 1, math.MaxInt32, messages.Get(messages.WholeNumber, 1, math.MaxInt32))
	return nil
}

func mapDataAccess(v *section.Values, _ *section.MapDeps) *models.QuestionnaireData {
	return &models.QuestionnaireData{
		AccessTypes:             v.List("accessTypes"),
		TargetedSubmissionDate:  v.Date("targetedSubmissionDate"),
		TargetedReleaseDate:     v.Date("targetedReleaseDate"),
		OtherCancerTypesEnabled: v.Bool("otherCancerTypesEnabled"),
		OtherCancerTypes:        v.Str("otherCancerTypes"),
		PreCancerTypes:          v.Str("preCancerTypes"),
		OtherSpeciesEnabled:     v.Bool("otherSpeciesEnabled"),
		OtherSpeciesOfSubjects:  v.Str("otherSpeciesOfSubjects"),
		NumberOfParticipants:    v.Int("numberOfParticipants"),
		CellLines:               v.Bool("cellLines"),
		ModelSystems:            v.Bool("modelSystems"),
		TimeConstraints: section.Collect(v, timeConstraintGroup, func(i int) models.TimeConstraint {
			return models.TimeConstraint{
				Description:   v.At("tcDescription", i),
				EffectiveDate: v.DateAt("tcEffectiveDate", i),
			}
		}),
		CancerTypes: section.Collect(v, cancerTypeGroup, func(i int) string {
			return v.At("cancerType", i)
		}),
		Species: section.Collect(v, speciesGroup, func(i int) string {
			return v.At("species", i)
		}),
	}
}
