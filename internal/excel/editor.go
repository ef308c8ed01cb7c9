package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidWorkbook, filepath, err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// HasSheet reports whether the workbook contains the named sheet
func (e *Editor) HasSheet(sheet string) bool {
	idx, err := e.file.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}

// RequireSheet fails with ErrSheetNotFound when the sheet is missing
func (e *Editor) RequireSheet(sheet string) error {
	if !e.HasSheet(sheet) {
		return fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, e.filepath)
	}
	return nil
}

// Extents returns the 1-based maximum row and column used by a sheet.
// The stored dimension reference and the rows actually present are both
// consulted and the larger wins.
func (e *Editor) Extents(sheet string) (maxRow, maxCol int, err error) {
	dimension, err := e.file.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get dimension of %q: %v", sheet, err)
	}
	if dimension != "" {
		parts := strings.Split(dimension, ":")
		col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
		if err == nil {
			maxRow, maxCol = row, col
		}
	}

	rows, err := e.file.GetRows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get rows of %q: %v", sheet, err)
	}
	if len(rows) > maxRow {
		maxRow = len(rows)
	}
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxRow, maxCol, nil
}

// ReadValue returns the typed value stored at (col, row)
func (e *Editor) ReadValue(sheet string, col, row int) (Value, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, err
	}

	formula, err := e.file.GetCellFormula(sheet, cell)
	if err != nil {
		return Value{}, fmt.Errorf("failed to get formula of %s: %v", cell, err)
	}
	if formula != "" {
		return FormulaValue(formula), nil
	}

	cellType, err := e.file.GetCellType(sheet, cell)
	if err != nil {
		return Value{}, fmt.Errorf("failed to get type of %s: %v", cell, err)
	}
	raw, err := e.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return Value{}, fmt.Errorf("failed to get value of %s: %v", cell, err)
	}
	v := classifyValue(cellType, raw)
	if v.Kind != KindNumber {
		return v, nil
	}
	return e.dateValue(sheet, cell, v)
}

// dateValue turns a number into a date when the cell is formatted as one.
func (e *Editor) dateValue(sheet, cell string, v Value) (Value, error) {
	styleID, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return Value{}, fmt.Errorf("failed to get style of %s: %v", cell, err)
	}
	style, err := e.file.GetStyle(styleID)
	if err != nil || style == nil {
		return v, nil
	}
	format := NumberFormat{ID: style.NumFmt}
	if style.CustomNumFmt != nil {
		format.Code = *style.CustomNumFmt
	}
	if !isDateFormat(format) {
		return v, nil
	}

	date1904 := false
	if props, err := e.file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	t, err := excelize.ExcelDateToTime(v.Number, date1904)
	if err != nil {
		return v, nil
	}
	return DateValue(v.Number, t, format), nil
}

// WriteValue stores v at (col, row), keeping the cell's style
func (e *Editor) WriteValue(sheet string, col, row int, v Value) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	switch v.Kind {
	case KindNumber, KindDate:
		err = e.file.SetCellFloat(sheet, cell, v.Number, -1, 64)
	case KindText:
		err = e.file.SetCellStr(sheet, cell, v.Text)
	case KindBool:
		err = e.file.SetCellBool(sheet, cell, v.Bool)
	case KindFormula:
		err = e.file.SetCellFormula(sheet, cell, v.Formula)
	default:
		err = e.file.SetCellDefault(sheet, cell, "")
	}
	if err != nil {
		return fmt.Errorf("failed to set value of %s: %v", cell, err)
	}
	return nil
}

// CellStyle returns the style ID currently applied at (col, row)
func (e *Editor) CellStyle(sheet string, col, row int) (int, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, err
	}
	return e.file.GetCellStyle(sheet, cell)
}

// Style returns the definition of a style ID
func (e *Editor) Style(id int) (*excelize.Style, error) {
	return e.file.GetStyle(id)
}

// NewStyle registers a style and returns its ID
func (e *Editor) NewStyle(style *excelize.Style) (int, error) {
	return e.file.NewStyle(style)
}

// SetStyle applies a style ID to a single cell
func (e *Editor) SetStyle(sheet string, col, row, id int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.file.SetCellStyle(sheet, cell, cell, id)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}
