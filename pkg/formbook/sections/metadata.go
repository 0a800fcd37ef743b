package sections

import (
	"context"
	"time"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

// Metadata returns the hidden, read-only section that records which
// submission the workbook was exported from.
func Metadata() *section.Section {
	return &section.Section{
		ID:          MetadataID,
		Name:        MetadataSheet,
		Hidden:      true,
		HeaderColor: "CCCCCC",
		Columns: section.Schema{
			{Key: "submissionId", Header: "Submission ID", Width: 40, Locked: true},
			{Key: "applicantName", Header: "Applicant Name", Width: 25, Locked: true},
			{Key: "applicantId", Header: "Applicant ID", Width: 40, Locked: true},
			{Key: "status", Header: "Status", Width: 15, Locked: true},
			{Key: "formVersion", Header: "Form Version", Width: 12, Locked: true},
			{Key: "createdAt", Header: "Created At", Width: 25, Locked: true},
			{Key: "updatedAt", Header: "Updated At", Width: 25, Locked: true},
			{Key: "devTier", Header: "Dev Tier", Width: 10, Locked: true},
			{Key: "templateVersion", Header: "Template Version", Width: 15, Locked: true},
			{Key: "exportedAt", Header: "Exported At", Width: 25, Locked: true},
		},
		Write:    writeMetadata,
		Validate: validateMetadata,
	}
}

func writeMetadata(_ context.Context, d *section.Deps, ws *section.Worksheet) ([]int, error) {
	m := d.Metadata
	if m.ExportedAt == "" {
		m.ExportedAt = d.Now.UTC().Format(time.RFC3339)
	}
	row := section.FirstDataRow
	ws.Set("submissionId", row, m.SubmissionID)
	ws.Set("applicantName", row, m.ApplicantName)
	ws.Set("applicantId", row, m.ApplicantID)
	ws.Set("status", row, m.Status)
	ws.Set("formVersion", row, m.FormVersion)
	ws.Set("createdAt", row, m.CreatedAt)
	ws.Set("updatedAt", row, m.UpdatedAt)
	ws.Set("devTier", row, m.DevTier)
	ws.Set("templateVersion", row, m.TemplateVersion)
	ws.Set("exportedAt", row, m.ExportedAt)
	return ws.WrittenRows(), nil
}

func validateMetadata(_ context.Context, _ *section.Deps, ws *section.Worksheet) error {
	ws.Check("submissionId", formula.UUIDv4, messages.Get(messages.InvalidUUID))
	return nil
}

// ReadMetadata returns the metadata recorded in an extracted Metadata sheet.
func ReadMetadata(v *section.Values) models.Metadata {
	return models.Metadata{
		SubmissionID:    v.Str("submissionId"),
		ApplicantName:   v.Str("applicantName"),
		ApplicantID:     v.Str("applicantId"),
		Status:          v.Str("status"),
		FormVersion:     v.Str("formVersion"),
		CreatedAt:       v.Str("createdAt"),
		UpdatedAt:       v.Str("updatedAt"),
		DevTier:         v.Str("devTier"),
		TemplateVersion: v.Str("templateVersion"),
		ExportedAt:      v.Str("exportedAt"),
	}
}
