// Package messages holds the parameterized texts shown when a workbook cell
// fails a data validation rule.
package messages

import (
	"fmt"
	"strings"
)

// Key identifies a catalog entry.
type Key string

const (
	MaxLength          Key = "max_length"
	InvalidEmail       Key = "invalid_email"
	InvalidORCID       Key = "invalid_orcid"
	InvalidUUID        Key = "invalid_uuid"
	DateNotBeforeToday Key = "date_not_before_today"
	DateOrder          Key = "date_order"
	SelectFromList     Key = "select_from_list"
	WholeNumber        Key = "whole_number"
	YesNo              Key = "yes_no"
	BlockedSameAsAbove Key = "blocked_same_as_above"
	DependsOnYes       Key = "depends_on_yes"
	PHSFormat          Key = "phs_format"
)

// Message is the title and body of a validation failure popup.
type Message struct {
	Title string
	Body  string
}

type entry struct {
	title  string
	format string
}

var catalog = map[Key]entry{
	MaxLength:          {"Too long", "Must be %d characters or fewer."},
	InvalidEmail:       {"Invalid email", "Enter a valid email address, e.g. name@example.org."},
	InvalidORCID:       {"Invalid ORCID", "ORCID must use the format 0000-0000-0000-0000."},
	InvalidUUID:        {"Invalid ID", "Value must be a version 4 UUID."},
	DateNotBeforeToday: {"Invalid date", "Enter a date (MM/DD/YYYY) that is today or later."},
	DateOrder:          {"Invalid date", "%s must not be before %s."},
	SelectFromList:     {"Invalid selection", "Select a %s from the list."},
	WholeNumber:        {"Invalid number", "Enter a whole number between %d and %d."},
	YesNo:              {"Invalid selection", "Select Yes or No."},
	BlockedSameAsAbove: {"Not applicable", "Leave blank when %s is Yes."},
	DependsOnYes:       {"Not applicable", "Only fill in when %s is Yes."},
	PHSFormat:          {"Invalid dbGaP PHS number", "dbGaP PHS numbers start with \"phs\"."},
}

// Get renders the message for key with args substituted into its body.
// Unknown keys render a generic message.
func Get(key Key, args ...any) Message {
	e, ok := catalog[key]
	if !ok {
		return Message{Title: "Invalid value", Body: "The value entered is not valid."}
	}
	body := e.format
	if len(args) > 0 {
		body = fmt.Sprintf(e.format, args...)
	}
	return Message{Title: e.title, Body: body}
}

// Combine merges messages for a cell whose rules are composed into one
// validation. The title of the first message wins; bodies are joined.
func Combine(msgs ...Message) Message {
	switch len(msgs) {
	case 0:
		return Get("")
	case 1:
		return msgs[0]
	}
	bodies := make([]string, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		if m.Body == "" || seen[m.Body] {
			continue
		}
		seen[m.Body] = true
		bodies = append(bodies, m.Body)
	}
	return Message{Title: msgs[0].Title, Body: strings.Join(bodies, " ")}
}
