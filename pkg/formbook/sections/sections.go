// Package sections defines the form sheets of the submission request
// workbook: their column schemas, character limits, validation rules and
// the mapping between sheet columns and questionnaire fields.
package sections

import (
	"context"
	"fmt"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

// Sheet names. Parse locates sections by exact name.
const (
	MetadataSheet        = "Metadata"
	PIAndContactSheet    = "PI and Contact"
	ProgramAndStudySheet = "Program and Study"
	DataAccessSheet      = "Data Access and Disease"
	DataTypesSheet       = "Data Types"
)

// Section ids.
const (
	MetadataID = "Metadata"
	SectionA   = "A"
	SectionB   = "B"
	SectionC   = "C"
	SectionD   = "D"
)

// All returns fresh definitions of every section in serialization order,
// starting with the hidden metadata section.
func All() []*section.Section {
	return []*section.Section{
		Metadata(),
		PIAndContact(),
		ProgramAndStudy(),
		DataAccessAndDisease(),
		DataTypes(),
	}
}

// Form returns the visible form sections in order.
func Form() []*section.Section {
	return All()[1:]
}

// isYes is true when key's single-entry cell holds Yes.
func isYes(ws *section.Worksheet, key string) string {
	return formula.Eq(ws.Addr(key, section.FirstDataRow), formula.Str(section.Yes))
}

// notYes is true when key's single-entry cell does not hold Yes.
func notYes(ws *section.Worksheet, key string) string {
	return formula.Neq(ws.Addr(key, section.FirstDataRow), formula.Str(section.Yes))
}

// lookupList restricts keys to a column of a lookup sheet. Values outside
// the list only raise a warning.
func lookupList(ctx context.Context, d *section.Deps, ws *section.Worksheet, kind lookup.Kind, col, label string, keys ...string) error {
	sheet, err := d.Lookups.GetOrCreate(ctx, kind)
	if err != nil {
		return fmt.Errorf("%s lookup: %w", kind, err)
	}
	msg := messages.Get(messages.SelectFromList, label)
	for _, key := range keys {
		ws.List(key, sheet.ListFormula(col), msg, true)
		ws.Prompt(key, fmt.Sprintf("Select a %s from the list.", label))
	}
	return nil
}

// derive fills the locked column dst with valueCol of the lookup row whose
// keyCol matches src on the same row. The lookup sheet must already exist.
func derive(d *section.Deps, ws *section.Worksheet, kind lookup.Kind, keyCol, valueCol, src, dst string) error {
	sheet, err := d.Lookups.Get(kind)
	if err != nil {
		return fmt.Errorf("%s lookup: %w", kind, err)
	}
	ws.Derive(dst, func(row int) string {
		return sheet.Lookup(ws.Addr(src, row), keyCol, valueCol)
	})
	return nil
}

// emails attaches the email check to keys.
func emails(ws *section.Worksheet, keys ...string) {
	msg := messages.Get(messages.InvalidEmail)
	for _, key := range keys {
		ws.Check(key, formula.Email, msg)
	}
}

// yesNo restricts keys to Yes or No.
func yesNo(ws *section.Worksheet, keys ...string) {
	for _, key := range keys {
		ws.YesNo(key)
	}
}

// futureDate requires key to hold a date no earlier than today.
func futureDate(ws *section.Worksheet, key string, allowBlank bool) {
	ws.Check(key, func(cell string) string {
		return formula.DateNotBeforeToday(cell, formula.DateOptions{AllowBlank: allowBlank})
	}, messages.Get(messages.DateNotBeforeToday))
}
