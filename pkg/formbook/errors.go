package formbook

import (
	"errors"
	"fmt"

	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
)

// ErrInvalidFormat indicates the input buffer is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetMissing indicates an expected section sheet is absent.
var ErrSheetMissing = errors.New("sheet missing")

// ErrLookupNotCreated indicates a section referenced a lookup sheet that no
// earlier section created.
var ErrLookupNotCreated = lookup.ErrNotCreated

// Stages of section processing reported by SectionError.
const (
	StageSerialize = "serialize"
	StageExtract   = "extract"
	StageMap       = "map"
)

// SectionError represents an error while processing one section sheet.
type SectionError struct {
	Sheet string
	Stage string // "serialize", "extract", "map"
	Err   error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section error in sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// NewSectionError creates a new SectionError.
func NewSectionError(sheet, stage string, err error) *SectionError {
	return &SectionError{
		Sheet: sheet,
		Stage: stage,
		Err:   err,
	}
}
