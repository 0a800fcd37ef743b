package section

import (
	"reflect"
	"testing"

	"github.com/ukaji3/formbook-go/pkg/formbook/parser"
)

var valuesSchema = Schema{
	{Key: "title", Header: "Title"},
	{Key: "tags", Header: "Tags", Multi: true},
	{Key: "due", Header: "Due"},
	{Key: "firstName", Header: "Name", Group: "people"},
	{Key: "lastName", Header: "Name", Group: "people"},
	{Key: "ok", Header: "OK", Group: "people"},
}

func TestRekey(t *testing.T) {
	columns := []parser.Column{
		{Header: "Name", Index: 1, Values: []string{"Ada", "", "Grace"}},
		{Header: "Title", Index: 2, Values: []string{"  A long title  "}},
		{Header: "Name", Index: 3, Values: []string{"Lovelace", "", "Hopper"}},
		{Header: "Unrelated", Index: 4, Values: []string{"x"}},
		{Header: "ok", Index: 5, Values: []string{"Yes"}},
		{Header: "DUE", Index: 6, Values: []string{"10/14/2026"}},
	}
	v := Rekey(valuesSchema, Limits{"title": 6}, columns)

	if got := v.Str("title"); got != "A long" {
		t.Errorf("title = %q, expected %q", got, "A long")
	}
	if got := v.At("firstName", 2); got != "Grace" {
		t.Errorf("firstName[2] = %q, expected %q", got, "Grace")
	}
	if got := v.At("lastName", 2); got != "Hopper" {
		t.Errorf("lastName[2] = %q, expected %q", got, "Hopper")
	}
	if got := v.Missing(); !reflect.DeepEqual(got, []string{"tags", "due", "ok"}) {
		t.Errorf("Missing = %v", got)
	}
	// Headers differing only in case do not match.
	if v.Has("ok") || v.Has("due") {
		t.Error("Expected case-mismatched headers to be ignored")
	}
	if v.Has("tags") || !v.Has("title") {
		t.Error("Has reported unexpected presence")
	}
}

func TestValuesRecords(t *testing.T) {
	v := NewValues(valuesSchema, nil, map[string][]string{
		"firstName": {"Ada", " ", "", "Grace"},
		"ok":        {"", "", "", "", "Yes"},
	})

	if got := v.Count("people"); got != 5 {
		t.Errorf("Count = %d, expected 5", got)
	}
	if got := v.Records("people"); !reflect.DeepEqual(got, []int{0, 3, 4}) {
		t.Errorf("Records = %v, expected [0 3 4]", got)
	}

	names := Collect(v, "people", func(i int) string { return v.At("firstName", i) })
	if !reflect.DeepEqual(names, []string{"Ada", "Grace", ""}) {
		t.Errorf("Collect = %v", names)
	}
	if got := Collect(v, "missing", func(i int) int { return i }); got != nil {
		t.Errorf("Collect of empty group = %v, expected nil", got)
	}
}

func TestValuesConversions(t *testing.T) {
	v := NewValues(valuesSchema, nil, map[string][]string{
		"tags": {"a| b ||c "},
		"due":  {"46309", "2026-10-14", "1/2/2027", "10/14/2026", "soon"},
		"ok":   {"Yes", "no", "TRUE", "", "y"},
	})

	if got := v.List("tags"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("List = %v", got)
	}
	if got := v.List("title"); got != nil {
		t.Errorf("List of missing column = %v, expected nil", got)
	}

	dates := []string{"10/14/2026", "10/14/2026", "01/02/2027", "10/14/2026", "soon"}
	for i, expected := range dates {
		if got := v.DateAt("due", i); got != expected {
			t.Errorf("DateAt(%d) = %q, expected %q", i, got, expected)
		}
	}

	bools := []bool{true, false, true, false, true}
	for i, expected := range bools {
		if got := v.BoolAt("ok", i); got != expected {
			t.Errorf("BoolAt(%d) = %v, expected %v", i, got, expected)
		}
	}

	n := NewValues(Schema{{Key: "n", Header: "N"}}, nil, map[string][]string{"n": {"12", "3.7", "x"}})
	for i, expected := range []int{12, 3, 0} {
		if got := n.IntAt("n", i); got != expected {
			t.Errorf("IntAt(%d) = %d, expected %d", i, got, expected)
		}
	}
}
