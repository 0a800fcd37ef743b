package models

import "strings"

// Institution is a lookup entry for institution dropdowns.
type Institution struct {
	ID   string `json:"_id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ProgramOption is a lookup entry for the program dropdown.
type ProgramOption struct {
	ID           string `json:"_id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Abbreviation string `json:"abbreviation" yaml:"abbreviation"`
	Description  string `json:"description" yaml:"description"`
}

// DisplayName returns the name shown in the program dropdown, falling back
// to the id when the name is blank.
func (p ProgramOption) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.ID
}

// FileTypeOption is a lookup entry for the file type dropdown.
type FileTypeOption struct {
	Type       string   `json:"type" yaml:"type"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}
