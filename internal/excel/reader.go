package excel

import "fmt"

// Origin is the 1-based top-left cell of a data region.
type Origin struct {
	Row int `toml:"row"`
	Col int `toml:"col"`
}

// Reader walks the data rows of one source sheet.
type Reader struct {
	editor *Editor
	sheet  string
	origin Origin
	row    int
	maxRow int
	maxCol int
}

// OpenReader opens path and positions a cursor on the first data row of sheet
func OpenReader(path, sheet string, origin Origin) (*Reader, error) {
	editor, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	if err := editor.RequireSheet(sheet); err != nil {
		editor.Close()
		return nil, err
	}

	maxRow, maxCol, err := editor.Extents(sheet)
	if err != nil {
		editor.Close()
		return nil, fmt.Errorf("failed to read extents of %s: %w", path, err)
	}

	return &Reader{
		editor: editor,
		sheet:  sheet,
		origin: origin,
		maxRow: maxRow,
		maxCol: maxCol,
	}, nil
}

// Range returns the scan bounds; the end values are exclusive.
func (r *Reader) Range() (rowStart, rowEnd, colStart, colEnd int) {
	rowEnd = r.maxRow + 1
	if rowEnd < r.origin.Row {
		rowEnd = r.origin.Row
	}
	colEnd = r.maxCol + 1
	if colEnd < r.origin.Col {
		colEnd = r.origin.Col
	}
	return r.origin.Row, rowEnd, r.origin.Col, colEnd
}

func (r *Reader) NextRow() {
	r.row++
}

// Cell returns the value at column col of the current row
func (r *Reader) Cell(col int) (Value, error) {
	return r.editor.ReadValue(r.sheet, col, r.origin.Row+r.row)
}

// Close releases the workbook without writing
func (r *Reader) Close() error {
	return r.editor.Close()
}
