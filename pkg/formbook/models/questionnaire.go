// Package models defines the hierarchical questionnaire data exchanged with
// the workbook codec.
package models

// Section status values derived on parse.
const (
	StatusInProgress = "In Progress"
	StatusNotStarted = "Not Started"
)

// SectionStatus records the derived completion state of one form section.
type SectionStatus struct {
	// Name is the section id (e.g. "A").
	Name string `json:"name"`
	// Status is StatusInProgress or StatusNotStarted.
	Status string `json:"status"`
}

// QuestionnaireData is the full submission request form.
type QuestionnaireData struct {
	// Sections holds per-section status flags attached on parse.
	Sections []SectionStatus `json:"sections,omitempty"`

	// PI is the principal investigator.
	PI PI `json:"pi"`
	// PIAsPrimaryContact reports whether the PI is also the primary contact.
	PIAsPrimaryContact bool `json:"piAsPrimaryContact,omitempty"`
	// PrimaryContact is nil when the PI acts as primary contact.
	PrimaryContact *Contact `json:"primaryContact,omitempty"`
	// AdditionalContacts lists further points of contact.
	AdditionalContacts []Contact `json:"additionalContacts,omitempty"`

	// Program is the owning program.
	Program Program `json:"program"`
	// Study describes the study being submitted.
	Study Study `json:"study"`

	// AccessTypes lists the requested data access types.
	AccessTypes []string `json:"accessTypes,omitempty"`
	// TargetedSubmissionDate is formatted MM/DD/YYYY.
	TargetedSubmissionDate string `json:"targetedSubmissionDate,omitempty"`
	// TargetedReleaseDate is formatted MM/DD/YYYY.
	TargetedReleaseDate string `json:"targetedReleaseDate,omitempty"`
	// TimeConstraints lists embargo or release constraints.
	TimeConstraints []TimeConstraint `json:"timeConstraints,omitempty"`
	// CancerTypes lists the cancer types studied.
	CancerTypes []string `json:"cancerTypes,omitempty"`
	// OtherCancerTypesEnabled unlocks OtherCancerTypes.
	OtherCancerTypesEnabled bool `json:"otherCancerTypesEnabled,omitempty"`
	// OtherCancerTypes is free text for unlisted cancer types.
	OtherCancerTypes string `json:"otherCancerTypes,omitempty"`
	// PreCancerTypes is free text for pre-cancer conditions.
	PreCancerTypes string `json:"preCancerTypes,omitempty"`
	// Species lists the species of subjects.
	Species []string `json:"species,omitempty"`
	// OtherSpeciesEnabled unlocks OtherSpeciesOfSubjects.
	OtherSpeciesEnabled bool `json:"otherSpeciesEnabled,omitempty"`
	// OtherSpeciesOfSubjects is free text for unlisted species.
	OtherSpeciesOfSubjects string `json:"otherSpeciesOfSubjects,omitempty"`
	// NumberOfParticipants is the subject count.
	NumberOfParticipants int `json:"numberOfParticipants,omitempty"`
	// CellLines reports whether cell lines are included.
	CellLines bool `json:"cellLines,omitempty"`
	// ModelSystems reports whether model systems are included.
	ModelSystems bool `json:"modelSystems,omitempty"`

	// DataTypes lists the submitted data types.
	DataTypes []string `json:"dataTypes,omitempty"`
	// OtherDataTypes is free text for unlisted data types.
	OtherDataTypes string `json:"otherDataTypes,omitempty"`
	// ClinicalData describes clinical data included in the submission.
	ClinicalData ClinicalData `json:"clinicalData"`
	// ImagingDataDeIdentified reports whether imaging data is de-identified.
	ImagingDataDeIdentified bool `json:"imagingDataDeIdentified,omitempty"`
	// DataDeIdentified reports whether all data is de-identified.
	DataDeIdentified bool `json:"dataDeIdentified,omitempty"`
	// Files lists the expected file types and volumes.
	Files []FileInfo `json:"files,omitempty"`
	// SubmitterComment is a free-form note to reviewers.
	SubmitterComment string `json:"submitterComment,omitempty"`
}

// DefaultQuestionnaire returns the empty form used to seed parsing.
func DefaultQuestionnaire() *QuestionnaireData {
	return &QuestionnaireData{}
}
