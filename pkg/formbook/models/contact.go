package models

// PI represents the principal investigator.
type PI struct {
	// FirstName is the given name.
	FirstName string `json:"firstName,omitempty"`
	// LastName is the family name.
	LastName string `json:"lastName,omitempty"`
	// Position is the job title.
	Position string `json:"position,omitempty"`
	// Email is the contact address.
	Email string `json:"email,omitempty"`
	// ORCID is the 0000-0000-0000-000X researcher id.
	ORCID string `json:"ORCID,omitempty"`
	// Institution is the institution display name.
	Institution string `json:"institution,omitempty"`
	// InstitutionID is the resolved institution id (empty when unknown).
	InstitutionID string `json:"institutionID,omitempty"`
	// Address is the institution postal address.
	Address string `json:"address,omitempty"`
}

// Contact represents a primary or additional point of contact.
type Contact struct {
	// Position is the job title.
	Position string `json:"position,omitempty"`
	// FirstName is the given name.
	FirstName string `json:"firstName,omitempty"`
	// LastName is the family name.
	LastName string `json:"lastName,omitempty"`
	// Email is the contact address.
	Email string `json:"email,omitempty"`
	// Phone is the phone number.
	Phone string `json:"phone,omitempty"`
	// Institution is the institution display name.
	Institution string `json:"institution,omitempty"`
	// InstitutionID is the resolved institution id (empty when unknown).
	InstitutionID string `json:"institutionID,omitempty"`
}
