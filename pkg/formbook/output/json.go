// Package output renders parse results as JSON.
package output

import (
	"encoding/json"
	"errors"

	"github.com/hashicorp/go-multierror"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
)

// Document is the JSON form of a parsed workbook.
type Document struct {
	Data     *models.QuestionnaireData `json:"data"`
	Metadata models.Metadata           `json:"metadata"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// NewDocument builds a Document, flattening aggregated warnings into one
// message per warning.
func NewDocument(data *models.QuestionnaireData, meta models.Metadata, warnings error) Document {
	doc := Document{Data: data, Metadata: meta}
	if warnings == nil {
		return doc
	}
	var merr *multierror.Error
	if errors.As(warnings, &merr) {
		for _, err := range merr.Errors {
			doc.Warnings = append(doc.Warnings, err.Error())
		}
		return doc
	}
	doc.Warnings = []string{warnings.Error()}
	return doc
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
