package parser

import (
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write test workbook: %v", err)
	}
	f2, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Failed to open test workbook: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestExtractColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Name")
	f.SetCellValue(sheetName, "B1", " Email ")
	f.SetCellValue(sheetName, "D1", "Name")
	f.SetCellValue(sheetName, "A2", "Ada")
	f.SetCellValue(sheetName, "B2", "ada@example.org")
	f.SetCellValue(sheetName, "A3", "Grace")
	f.SetCellValue(sheetName, "D4", 42)

	columns, err := ExtractColumns(reopen(t, f), sheetName)
	if err != nil {
		t.Fatalf("ExtractColumns failed: %v", err)
	}

	expected := []Column{
		{Header: "Name", Index: 1, Values: []string{"Ada", "Grace"}},
		{Header: "Email", Index: 2, Values: []string{"ada@example.org"}},
		{Header: "Name", Index: 4, Values: []string{"", "", "42"}},
	}
	if !reflect.DeepEqual(columns, expected) {
		t.Errorf("ExtractColumns = %+v, expected %+v", columns, expected)
	}
}

func TestExtractColumnsHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Name")

	columns, err := ExtractColumns(reopen(t, f), "Sheet1")
	if err != nil {
		t.Fatalf("ExtractColumns failed: %v", err)
	}
	if len(columns) != 1 || columns[0].Values != nil {
		t.Errorf("Expected a single empty column, got %+v", columns)
	}
}

func TestExtractColumnsMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := ExtractColumns(f, "Nope"); err == nil {
		t.Error("Expected an error for a missing sheet")
	}
}

func TestDataBounds(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "B1", "ID")
	f.SetCellValue("Sheet1", "C4", "last")

	bounds, err := DataBounds(f, "Sheet1")
	if err != nil {
		t.Fatalf("DataBounds failed: %v", err)
	}
	expected := Bounds{FirstRow: 1, LastRow: 4, FirstCol: 2, LastCol: 3}
	if bounds != expected {
		t.Errorf("DataBounds = %+v, expected %+v", bounds, expected)
	}

	f.NewSheet("Empty")
	bounds, err = DataBounds(f, "Empty")
	if err != nil {
		t.Fatalf("DataBounds failed: %v", err)
	}
	if !bounds.Empty() {
		t.Errorf("Expected empty bounds, got %+v", bounds)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{" 123 ", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
