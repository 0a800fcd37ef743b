package section

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/xuri/excelize/v2"
)

// RuleKind is the data validation type of a rule.
type RuleKind string

const (
	RuleList       RuleKind = "list"
	RuleCustom     RuleKind = "custom"
	RuleTextLength RuleKind = "textLength"
	RuleWhole      RuleKind = "whole"
)

// disabledFill is the fill of cells blocked out by a conditional format.
const disabledFill = "D9D9D9"

// formulaEscaper escapes formula text for the data validation element,
// which excelize writes as raw inner XML.
var formulaEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Rule is a data validation attached to one cell. Custom terms added to the
// same cell are combined with AND because a cell holds a single validation.
type Rule struct {
	// Cell is the relative cell address.
	Cell string
	// Kind is the validation type.
	Kind RuleKind
	// Source is the list source reference or inline values for RuleList.
	Source string
	// Options are inline list values for RuleList.
	Options []string
	// Terms are the custom formula terms.
	Terms []string
	// Min and Max bound RuleWhole and RuleTextLength.
	Min, Max int
	// Message is shown when the value is rejected.
	Message messages.Message
	// Prompt is shown when the cell is selected.
	Prompt string
	// Warning lets the user keep a value outside the rule.
	Warning bool
	// AllowBlank accepts an empty cell.
	AllowBlank bool

	msgs []messages.Message
}

// Formula returns the formula of a custom rule.
func (r *Rule) Formula() string {
	if len(r.Terms) == 1 {
		return r.Terms[0]
	}
	return formula.And(r.Terms...)
}

type highlight struct {
	cell     string
	criteria string
}

// rule returns the rule for key at row, creating it when absent.
func (ws *Worksheet) rule(key string, row int) *Rule {
	cell, ok := ws.cell(key, row)
	if !ok {
		return nil
	}
	r, ok := ws.rules[cell]
	if !ok {
		r = &Rule{Cell: cell, AllowBlank: true}
		ws.rules[cell] = r
		ws.order = append(ws.order, cell)
	}
	return r
}

// Rules returns the attached rules in attachment order.
func (ws *Worksheet) Rules() []*Rule {
	rules := make([]*Rule, 0, len(ws.order))
	for _, cell := range ws.order {
		rules = append(rules, ws.rules[cell])
	}
	return rules
}

// RuleAt returns the rule attached to key at row, or nil.
func (ws *Worksheet) RuleAt(key string, row int) *Rule {
	col, err := ws.schema.Letter(key)
	if err != nil {
		return nil
	}
	return ws.rules[col+strconv.Itoa(row)]
}

// List restricts every row of key to the values of a list source such as
// a lookup sheet range. A warning list still accepts other values.
func (ws *Worksheet) List(key, source string, msg messages.Message, warning bool) {
	for _, row := range ws.Rows(key) {
		if r := ws.rule(key, row); r != nil {
			r.Kind = RuleList
			r.Source = strings.TrimPrefix(source, "=")
			r.Message = msg
			r.Warning = warning
		}
	}
}

// Options restricts every row of key to fixed values.
func (ws *Worksheet) Options(key string, values []string, msg messages.Message) {
	for _, row := range ws.Rows(key) {
		if r := ws.rule(key, row); r != nil {
			r.Kind = RuleList
			r.Options = values
			r.Message = msg
		}
	}
}

// YesNo restricts every row of key to Yes or No.
func (ws *Worksheet) YesNo(key string) {
	ws.Options(key, []string{Yes, No}, messages.Get(messages.YesNo))
}

// Whole restricts every row of key to whole numbers in [lo, hi].
func (ws *Worksheet) Whole(key string, lo, hi int, msg messages.Message) {
	for _, row := range ws.Rows(key) {
		if r := ws.rule(key, row); r != nil {
			r.Kind = RuleWhole
			r.Min, r.Max = lo, hi
			r.Message = msg
		}
	}
}

// Check attaches a custom formula term, built from the cell's own
// absolute address, to every row of key.
func (ws *Worksheet) Check(key string, term func(cell string) string, msg messages.Message) {
	ws.CheckRow(key, func(row int) string { return term(ws.Addr(key, row)) }, msg)
}

// CheckRow attaches a custom formula term built from the row, for rules
// spanning several columns of the same row.
func (ws *Worksheet) CheckRow(key string, term func(row int) string, msg messages.Message) {
	for _, row := range ws.Rows(key) {
		r := ws.rule(key, row)
		if r == nil {
			return
		}
		if r.Kind == RuleList || r.Kind == RuleWhole {
			continue
		}
		r.Kind = RuleCustom
		r.Terms = append(r.Terms, term(row))
		r.msgs = append(r.msgs, msg)
		r.Message = messages.Combine(r.msgs...)
	}
}

// Prompt sets the input message of every row of key.
func (ws *Worksheet) Prompt(key, prompt string) {
	for _, row := range ws.Rows(key) {
		if r := ws.rule(key, row); r != nil {
			r.Prompt = prompt
		}
	}
}

// Disable grays out keys and rejects input in them whenever when(row)
// holds. A list or whole-number cell holds its own validation, so it is
// only grayed out and its value must be ignored by the section's mapping.
func (ws *Worksheet) Disable(keys []string, when func(row int) string, msg messages.Message) {
	for _, key := range keys {
		for _, row := range ws.Rows(key) {
			cell, ok := ws.cell(key, row)
			if !ok {
				return
			}
			ws.formats = append(ws.formats, highlight{cell: cell, criteria: when(row)})
		}
		ws.CheckRow(key, func(row int) string {
			return formula.Or(formula.Not(when(row)), formula.IsBlank(ws.Addr(key, row)))
		}, msg)
	}
}

// applyLimits adds a length rule for every limited column that is not a
// list. Custom rules get a TextMax term; other cells a text length rule.
func (ws *Worksheet) applyLimits() {
	for _, c := range ws.schema {
		limit, ok := ws.limits[c.Key]
		if !ok || c.Locked {
			continue
		}
		msg := messages.Get(messages.MaxLength, limit)
		for _, row := range ws.Rows(c.Key) {
			r := ws.rule(c.Key, row)
			if r == nil {
				return
			}
			switch r.Kind {
			case RuleList, RuleWhole:
			case RuleCustom:
				r.Terms = append(r.Terms, formula.TextMax(ws.Addr(c.Key, row), limit))
				r.msgs = append(r.msgs, msg)
				r.Message = messages.Combine(r.msgs...)
			default:
				r.Kind = RuleTextLength
				r.Min, r.Max = 0, limit
				r.Message = msg
			}
		}
	}
}

// flush writes the attached rules and highlights to the sheet.
func (ws *Worksheet) flush() {
	for _, cell := range ws.order {
		if ws.err != nil {
			return
		}
		r := ws.rules[cell]
		if r.Kind == "" && r.Prompt == "" {
			continue
		}
		dv, err := r.dataValidation()
		if err != nil {
			ws.fail(err)
			return
		}
		ws.fail(ws.file.AddDataValidation(ws.name, dv))
	}

	if len(ws.formats) == 0 || ws.err != nil {
		return
	}
	style, err := ws.file.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{disabledFill}, Pattern: 1},
	})
	if err != nil {
		ws.fail(err)
		return
	}
	for _, h := range ws.formats {
		ws.fail(ws.file.SetConditionalFormat(ws.name, h.cell, []excelize.ConditionalFormatOptions{
			{Type: "formula", Criteria: h.criteria, Format: &style},
		}))
	}
}

func (r *Rule) dataValidation() (*excelize.DataValidation, error) {
	dv := excelize.NewDataValidation(r.AllowBlank)
	dv.Sqref = r.Cell

	errorStyle := excelize.DataValidationErrorStyleStop
	if r.Warning {
		errorStyle = excelize.DataValidationErrorStyleWarning
	}

	switch r.Kind {
	case RuleList:
		if len(r.Options) > 0 {
			if err := dv.SetDropList(r.Options); err != nil {
				return nil, err
			}
		} else {
			dv.SetSqrefDropList(r.Source)
		}
	case RuleWhole:
		if err := dv.SetRange(r.Min, r.Max, excelize.DataValidationTypeWhole, excelize.DataValidationOperatorBetween); err != nil {
			return nil, err
		}
	case RuleTextLength:
		if err := dv.SetRange(r.Min, r.Max, excelize.DataValidationTypeTextLength, excelize.DataValidationOperatorBetween); err != nil {
			return nil, err
		}
	case RuleCustom:
		f := r.Formula()
		if len(f) > formula.MaxValidationLength {
			return nil, fmt.Errorf("rule at %s: formula is %d characters, limit is %d", r.Cell, len(f), formula.MaxValidationLength)
		}
		dv.Type = string(RuleCustom)
		dv.Formula1 = formulaEscaper.Replace(f)
	}

	if r.Kind != "" {
		dv.SetError(errorStyle, r.Message.Title, r.Message.Body)
	}
	if r.Prompt != "" {
		dv.SetInput("", r.Prompt)
	}
	return dv, nil
}
