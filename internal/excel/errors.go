package excel

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkbook indicates a file that could not be parsed as an xlsx workbook.
var ErrInvalidWorkbook = errors.New("invalid xlsx workbook")

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrTooManyColumns indicates a scan range wider than the column format table.
var ErrTooManyColumns = errors.New("scan range exceeds column format table")

// ScanError ties a failure to the source file being copied.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
