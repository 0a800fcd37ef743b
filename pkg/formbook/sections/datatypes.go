package sections

import (
	"context"
	"math"

	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

const filesGroup = "files"

// DataTypes returns section D: data types, clinical data and the expected
// files.
func DataTypes() *section.Section {
	return &section.Section{
		ID:          SectionD,
		Name:        DataTypesSheet,
		HeaderColor: "EAD1DC",
		Columns: section.Schema{
			{Key: "dataTypes", Header: "Data Types", Width: 35, Multi: true, Annotation: "Separate multiple values with |"},
			{Key: "otherDataTypes", Header: "Other Data Types", Width: 30},
			{Key: "clinicalDataTypes", Header: "Clinical Data Types", Width: 35, Multi: true, Annotation: "Separate multiple values with |"},
			{Key: "clinicalOtherDataTypes", Header: "Other Clinical Data Types", Width: 30},
			{Key: "clinicalFutureDataTypes", Header: "Additional Clinical Data In Future", Width: 20},
			{Key: "imagingDataDeIdentified", Header: "Imaging Data De-identified", Width: 20},
			{Key: "dataDeIdentified", Header: "Data De-identified", Width: 20},
			{Key: "fileType", Header: "File Type", Width: 25, Group: filesGroup},
			{Key: "fileExtension", Header: "File Extension", Width: 15, Group: filesGroup},
			{Key: "fileCount", Header: "Number of Files", Width: 15, Group: filesGroup},
			{Key: "fileAmount", Header: "Estimated Data Size", Width: 18, Group: filesGroup},
			{Key: "submitterComment", Header: "Additional Comments", Width: 50},
		},
		Limits: section.Limits{
			"otherDataTypes":         200,
			"clinicalOtherDataTypes": 200,
			"fileExtension":          20,
			"fileAmount":             50,
			"submitterComment":       500,
		},
		Write:     writeDataTypes,
		Validate:  validateDataTypes,
		MapValues: mapDataTypes,
	}
}

func writeDataTypes(_ context.Context, d *section.Deps, ws *section.Worksheet) ([]int, error) {
	data := d.Data
	row := section.FirstDataRow

	ws.SetList("dataTypes", row, data.DataTypes)
	ws.Set("otherDataTypes", row, data.OtherDataTypes)
	ws.SetList("clinicalDataTypes", row, data.ClinicalData.DataTypes)
	ws.Set("clinicalOtherDataTypes", row, data.ClinicalData.OtherDataTypes)
	ws.SetBool("clinicalFutureDataTypes", row, data.ClinicalData.FutureDataTypes)
	ws.SetBool("imagingDataDeIdentified", row, data.ImagingDataDeIdentified)
	ws.SetBool("dataDeIdentified", row, data.DataDeIdentified)
	ws.Set("submitterComment", row, data.SubmitterComment)

	ws.Records(filesGroup, len(data.Files), func(i, row int) {
		f := data.Files[i]
		ws.Set("fileType", row, f.Type)
		ws.Set("fileExtension", row, f.Extension)
		ws.SetInt("fileCount", row, f.Count)
		ws.Set("fileAmount", row, f.Amount)
	})

	return ws.WrittenRows(), nil
}

func validateDataTypes(ctx context.Context, d *section.Deps, ws *section.Worksheet) error {
	ws.Prompt("dataTypes", "Separate multiple data types with |.")
	ws.Prompt("clinicalDataTypes", "Separate multiple clinical data types with |.")
	yesNo(ws, "clinicalFutureDataTypes", "imagingDataDeIdentified", "dataDeIdentified")

	if err := lookupList(ctx, d, ws, lookup.FileTypes, "A", "file type", "fileType"); err != nil {
		return err
	}
	ws.Whole("fileCount", 1, math.MaxInt32, messages.Get(messages.WholeNumber, 1, math.MaxInt32))
	return nil
}

func mapDataTypes(v *section.Values, _ *section.MapDeps) *models.QuestionnaireData {
	return &models.QuestionnaireData{
		DataTypes:      v.List("dataTypes"),
		OtherDataTypes: v.Str("otherDataTypes"),
		ClinicalData: models.ClinicalData{
			DataTypes:       v.List("clinicalDataTypes"),
			OtherDataTypes:  v.Str("clinicalOtherDataTypes"),
			FutureDataTypes: v.Bool("clinicalFutureDataTypes"),
		},
		ImagingDataDeIdentified: v.Bool("imagingDataDeIdentified"),
		DataDeIdentified:        v.Bool("dataDeIdentified"),
		SubmitterComment:        v.Str("submitterComment"),
		Files: section.Collect(v, filesGroup, func(i int) models.FileInfo {
			return models.FileInfo{
				Type:      v.At("fileType", i),
				Extension: v.At("fileExtension", i),
				Count:     v.IntAt("fileCount", i),
				Amount:    v.At("fileAmount", i),
			}
		}),
	}
}
