package models

// Metadata is the static record information embedded in the hidden
// Metadata sheet.
type Metadata struct {
	// SubmissionID is the owning record id (UUIDv4).
	SubmissionID string `json:"submissionId,omitempty" yaml:"submissionId"`
	// ApplicantName is the applicant display name.
	ApplicantName string `json:"applicantName,omitempty" yaml:"applicantName"`
	// ApplicantID is the applicant user id.
	ApplicantID string `json:"applicantId,omitempty" yaml:"applicantId"`
	// Status is the last known record status.
	Status string `json:"status,omitempty" yaml:"status"`
	// FormVersion is the questionnaire schema version.
	FormVersion string `json:"formVersion,omitempty" yaml:"formVersion"`
	// CreatedAt is the record creation timestamp (ISO-8601).
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt"`
	// UpdatedAt is the record update timestamp (ISO-8601).
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt"`
	// DevTier is the environment tier label.
	DevTier string `json:"devTier,omitempty" yaml:"devTier"`
	// TemplateVersion is the workbook template version.
	TemplateVersion string `json:"templateVersion,omitempty" yaml:"templateVersion"`
	// ExportedAt is the export timestamp (ISO-8601).
	ExportedAt string `json:"exportedAt,omitempty" yaml:"exportedAt"`
}
