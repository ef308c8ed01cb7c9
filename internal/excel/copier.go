package excel

import (
	"fmt"
	"io"
	"strings"
)

// SourceLayout describes where data lives in the input workbooks and
// which files count as inputs.
type SourceLayout struct {
	Sheet      string
	Origin     Origin
	Extension  string
	TempPrefix string
}

// ScanSpreadsheetFile copies every data row of path into w and returns the
// number of rows copied. When trace is not nil one line per row is
// written to it.
func ScanSpreadsheetFile(w *Writer, path string, layout SourceLayout, trace io.Writer) (int, error) {
	reader, err := OpenReader(path, layout.Sheet, layout.Origin)
	if err != nil {
		return 0, &ScanError{Path: path, Err: err}
	}
	defer reader.Close()

	rowMin, rowMax, colMin, colMax := reader.Range()

	rules := w.Rules()
	if rowMax > rowMin {
		if err := rules.Check(colMax - colMin); err != nil {
			return 0, &ScanError{Path: path, Err: err}
		}
	}

	numLines := 0
	for row := rowMin; row < rowMax; row++ {
		numLines++
		values := make([]string, 0, colMax-colMin)

		for col := colMin; col < colMax; col++ {
			pos := col - colMin
			value, err := reader.Cell(col)
			if err != nil {
				return numLines - 1, &ScanError{Path: path, Err: err}
			}

			idx, err := rules.Index(pos)
			if err != nil {
				return numLines - 1, &ScanError{Path: path, Err: err}
			}

			cell := w.Cell(w.Origin().Col + pos)
			if err := cell.SetValue(value); err != nil {
				return numLines - 1, &ScanError{Path: path, Err: err}
			}
			if err := cell.ApplyRule(idx); err != nil {
				return numLines - 1, &ScanError{Path: path, Err: err}
			}

			values = append(values, value.String())
		}

		reader.NextRow()
		w.NextRow()
		if trace != nil {
			if _, err := fmt.Fprintf(trace, "%5d: %s\n", numLines, strings.Join(values, ", ")); err != nil {
				return numLines, fmt.Errorf("failed to write trace: %w", err)
			}
		}
	}

	return numLines, nil
}
