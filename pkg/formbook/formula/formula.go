// Package formula composes spreadsheet formula fragments for data
// validation rules, conditional formats and derived cells.
//
// Every function is pure and returns a fragment without a leading "=",
// except ListFormula which produces a list-source reference.
package formula

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxValidationLength is the longest formula a data validation rule may
// hold.
const MaxValidationLength = 255

// Abs converts a relative address such as "D2" into "$D$2". Empty input,
// input that already carries "$" and input that is not a cell name are
// returned unchanged.
func Abs(addr string) string {
	if addr == "" || strings.Contains(addr, "$") {
		return addr
	}
	col, row, err := excelize.SplitCellName(addr)
	if err != nil {
		return addr
	}
	return "$" + col + "$" + strconv.Itoa(row)
}

// Cell returns the absolute address of column col and row.
func Cell(col string, row int) string {
	return "$" + col + "$" + strconv.Itoa(row)
}

// Range returns the absolute range between two cells.
func Range(col1 string, row1 int, col2 string, row2 int) string {
	return Cell(col1, row1) + ":" + Cell(col2, row2)
}

// Sheet quotes a sheet name for use in a reference, doubling embedded quotes.
func Sheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// SheetRange returns an absolute single-column range on another sheet.
func SheetRange(sheet, col string, startRow, endRow int) string {
	return Sheet(sheet) + "!" + Range(col, startRow, col, endRow)
}

// ListFormula returns a dropdown list source such as "='Sheet'!$B$1:$B$10".
func ListFormula(sheet, col string, startRow, endRow int) string {
	return "=" + SheetRange(sheet, col, startRow, endRow)
}

// Str quotes a string literal.
func Str(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Num renders an integer literal.
func Num(n int) string {
	return strconv.Itoa(n)
}

func call(name string, args ...string) string {
	kept := args[:0:0]
	for _, a := range args {
		if a != "" {
			kept = append(kept, a)
		}
	}
	return name + "(" + strings.Join(kept, ",") + ")"
}

// And joins fragments with AND. Empty fragments are dropped.
func And(args ...string) string { return call("AND", args...) }

// Or joins fragments with OR. Empty fragments are dropped.
func Or(args ...string) string { return call("OR", args...) }

// Not negates a fragment.
func Not(arg string) string { return call("NOT", arg) }

// If returns IF(cond,then,otherwise).
func If(cond, then, otherwise string) string { return call("IF", cond, then, otherwise) }

// Today returns TODAY().
func Today() string { return "TODAY()" }

// Eq returns a=b.
func Eq(a, b string) string { return a + "=" + b }

// Neq returns a<>b.
func Neq(a, b string) string { return a + "<>" + b }

// Lt returns a<b.
func Lt(a, b string) string { return a + "<" + b }

// Lte returns a<=b.
func Lte(a, b string) string { return a + "<=" + b }

// Gt returns a>b.
func Gt(a, b string) string { return a + ">" + b }

// Gte returns a>=b.
func Gte(a, b string) string { return a + ">=" + b }

// Len returns LEN(x).
func Len(x string) string { return call("LEN", x) }

// Trim returns TRIM(x).
func Trim(x string) string { return call("TRIM", x) }

// Upper returns UPPER(x).
func Upper(x string) string { return call("UPPER", x) }

// Value returns VALUE(x).
func Value(x string) string { return call("VALUE", x) }

// IsNumber returns ISNUMBER(x).
func IsNumber(x string) string { return call("ISNUMBER", x) }

// Left returns the first n characters of x.
func Left(x string, n int) string { return call("LEFT", x, Num(n)) }

// Right returns the last n characters of x.
func Right(x string, n int) string { return call("RIGHT", x, Num(n)) }

// Mid returns n characters of x starting at the 1-based position start.
func Mid(x string, start, n int) string { return call("MID", x, Num(start), Num(n)) }

// Concat joins fragments with the & operator. Empty fragments are dropped.
func Concat(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "&")
}

// Find returns FIND(find,within), which is case-sensitive and treats
// wildcard characters literally.
func Find(find, within string) string { return call("FIND", find, within) }

// Index returns INDEX(rng,pos).
func Index(rng, pos string) string { return call("INDEX", rng, pos) }

// Match returns the exact-match position MATCH(value,rng,0).
func Match(value, rng string) string { return call("MATCH", value, rng, "0") }

// IfError returns IFERROR(value,fallback).
func IfError(value, fallback string) string { return call("IFERROR", value, fallback) }

// Lookup returns the value of valueRange on the row where keyRange equals
// cell, or an empty string when there is no such row.
func Lookup(cell, keyRange, valueRange string) string {
	return IfError(Index(valueRange, Match(Abs(cell), keyRange)), Str(""))
}

// Sub returns SUBSTITUTE(text,old,replacement). old and replacement are
// fragments; quote literals with Str.
func Sub(text, old, replacement string) string { return call("SUBSTITUTE", text, old, replacement) }

// Search returns SEARCH(find,within).
func Search(find, within string) string { return call("SEARCH", find, within) }

// IsBlank is true when the cell is empty or whitespace only.
func IsBlank(cell string) string {
	return Eq(Len(Trim(Abs(cell))), "0")
}

// TextMax is true when the cell holds at most n characters.
func TextMax(cell string, n int) string {
	return Lte(Len(Abs(cell)), Num(n))
}

// count returns the number of occurrences of ch in cell.
func count(cell, ch string) string {
	return Len(cell) + "-" + Len(Sub(cell, Str(ch), Str("")))
}

// Email is true when the cell holds exactly one "@" and at least one ".".
func Email(cell string) string {
	c := Abs(cell)
	return And(
		IsNumber(Search(Str("@"), c)),
		IsNumber(Search(Str("."), c)),
		Eq(count(c, "@"), "1"),
		Gte(count(c, "."), "1"),
	)
}

// ORCID is true for 0000-0000-0000-000X identifiers: 19 characters, dashes
// at 5, 10 and 15, numeric groups and a final digit or "X".
func ORCID(cell string) string {
	c := Abs(cell)
	return And(
		Eq(Len(c), "19"),
		Eq(Concat(Mid(c, 5, 1), Mid(c, 10, 1), Mid(c, 15, 1)), Str("---")),
		IsNumber(Value(Concat(Left(c, 4), Mid(c, 6, 4), Mid(c, 11, 4), Mid(c, 16, 3)))),
		IsNumber(Find(Right(c, 1), Str("0123456789Xx"))),
	)
}

// UUIDv4 is true for canonical version 4 UUIDs.
func UUIDv4(cell string) string {
	c := Abs(cell)
	return And(
		Eq(Len(c), "36"),
		Eq(Concat(Mid(c, 9, 1), Mid(c, 14, 1), Mid(c, 19, 1), Mid(c, 24, 1)), Str("----")),
		Eq(Mid(c, 15, 1), Str("4")),
		IsNumber(Find(Upper(Mid(c, 20, 1)), Str("89AB"))),
	)
}

// DateOptions tunes DateNotBeforeToday.
type DateOptions struct {
	// AllowBlank accepts an empty or whitespace-only cell.
	AllowBlank bool
}

// DateNotBeforeToday is true when the cell holds a date on or after the
// evaluation date.
func DateNotBeforeToday(cell string, opts DateOptions) string {
	c := Abs(cell)
	rule := And(IsNumber(c), Gte(c, Today()))
	if opts.AllowBlank {
		return Or(IsBlank(c), rule)
	}
	return rule
}
