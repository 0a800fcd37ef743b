package models

// Program identifies the program owning the study.
type Program struct {
	// ID is the program id; empty for a program not in the lookup list.
	ID string `json:"_id,omitempty"`
	// Name is the program name.
	Name string `json:"name,omitempty"`
	// Abbreviation is the short program name.
	Abbreviation string `json:"abbreviation,omitempty"`
	// Description is the program description.
	Description string `json:"description,omitempty"`
}

// Study describes the study being submitted.
type Study struct {
	// Name is the study title.
	Name string `json:"name,omitempty"`
	// Abbreviation is the short study name.
	Abbreviation string `json:"abbreviation,omitempty"`
	// Description is the study abstract.
	Description string `json:"description,omitempty"`
	// Publications lists published papers.
	Publications []Publication `json:"publications,omitempty"`
	// PlannedPublications lists upcoming papers.
	PlannedPublications []PlannedPublication `json:"plannedPublications,omitempty"`
	// Repositories lists other repositories holding study data.
	Repositories []Repository `json:"repositories,omitempty"`
	// Funding lists funding agencies and grants.
	Funding []Funding `json:"funding,omitempty"`
	// IsDbGapRegistered reports whether the study is registered in dbGaP.
	IsDbGapRegistered bool `json:"isDbGapRegistered,omitempty"`
	// DbGaPPPHSNumber is the dbGaP phs accession.
	DbGaPPPHSNumber string `json:"dbGaPPPHSNumber,omitempty"`
	// GPAName is the genomic program administrator name.
	GPAName string `json:"GPAName,omitempty"`
}

// Publication is a published paper.
type Publication struct {
	Title    string `json:"title,omitempty"`
	PubmedID string `json:"pubmedID,omitempty"`
	DOI      string `json:"DOI,omitempty"`
}

// PlannedPublication is an upcoming paper.
type PlannedPublication struct {
	Title string `json:"title,omitempty"`
	// ExpectedDate is formatted MM/DD/YYYY.
	ExpectedDate string `json:"expectedDate,omitempty"`
}

// Repository is another repository holding study data.
type Repository struct {
	Name                    string   `json:"name,omitempty"`
	StudyID                 string   `json:"studyID,omitempty"`
	DataTypesSubmitted      []string `json:"dataTypesSubmitted,omitempty"`
	OtherDataTypesSubmitted string   `json:"otherDataTypesSubmitted,omitempty"`
}

// Funding is a funding agency and its grants.
type Funding struct {
	Agency            string `json:"agency,omitempty"`
	GrantNumbers      string `json:"grantNumbers,omitempty"`
	NciProgramOfficer string `json:"nciProgramOfficer,omitempty"`
	NciGPA            string `json:"nciGPA,omitempty"`
}

// TimeConstraint is a release or embargo constraint.
type TimeConstraint struct {
	Description string `json:"description,omitempty"`
	// EffectiveDate is formatted MM/DD/YYYY.
	EffectiveDate string `json:"effectiveDate,omitempty"`
}

// ClinicalData describes clinical data included in the submission.
type ClinicalData struct {
	DataTypes       []string `json:"dataTypes,omitempty"`
	OtherDataTypes  string   `json:"otherDataTypes,omitempty"`
	FutureDataTypes bool     `json:"futureDataTypes,omitempty"`
}

// FileInfo is an expected file type with its volume.
type FileInfo struct {
	Type      string `json:"type,omitempty"`
	Extension string `json:"extension,omitempty"`
	Count     int    `json:"count,omitempty"`
	Amount    string `json:"amount,omitempty"`
}
