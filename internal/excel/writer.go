package excel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type styleKey struct {
	base   int
	rule   int
	format NumberFormat
}

// Writer appends rows to one sheet of a copy of the summary template.
// Nothing reaches disk until Close.
type Writer struct {
	editor *Editor
	sheet  string
	origin Origin
	row    int
	rules  RuleTable
	styles map[styleKey]int
	path   string
	closed bool
}

// OpenWriter copies templatePath to outputPath and opens the copy for editing
func OpenWriter(templatePath, outputPath, sheet string, origin Origin, rules RuleTable) (*Writer, error) {
	if err := copyFile(templatePath, outputPath); err != nil {
		return nil, fmt.Errorf("failed to copy template: %w", err)
	}

	editor, err := OpenFile(outputPath)
	if err != nil {
		return nil, err
	}
	if err := editor.RequireSheet(sheet); err != nil {
		editor.Close()
		return nil, err
	}

	return &Writer{
		editor: editor,
		sheet:  sheet,
		origin: origin,
		rules:  rules,
		styles: make(map[styleKey]int),
		path:   outputPath,
	}, nil
}

func (w *Writer) Origin() Origin {
	return w.origin
}

func (w *Writer) Rules() RuleTable {
	return w.rules
}

// Rows returns how many rows have been appended so far.
func (w *Writer) Rows() int {
	return w.row
}

func (w *Writer) NextRow() {
	w.row++
}

// Cell returns a handle on column col of the current output row.
func (w *Writer) Cell(col int) *Cell {
	return &Cell{w: w, col: col, row: w.origin.Row + w.row}
}

// Close saves the workbook to the output path and releases it.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.editor.SaveAs(w.path); err != nil {
		w.editor.Close()
		return fmt.Errorf("failed to save %s: %v", w.path, err)
	}
	return w.editor.Close()
}

// Discard releases the workbook without saving accumulated rows.
func (w *Writer) Discard() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.editor.Close()
}

// styleFor returns a style that is base with rule idx layered on top.
func (w *Writer) styleFor(base, idx int, keep NumberFormat) (int, error) {
	key := styleKey{base: base, rule: idx, format: keep}
	if id, ok := w.styles[key]; ok {
		return id, nil
	}

	baseStyle, err := w.editor.Style(base)
	if err != nil {
		return 0, fmt.Errorf("failed to read style %d: %v", base, err)
	}
	merged, err := w.rules.merge(baseStyle, idx, keep)
	if err != nil {
		return 0, err
	}
	id, err := w.editor.NewStyle(merged)
	if err != nil {
		return 0, fmt.Errorf("failed to create style for rule %d: %v", idx, err)
	}
	w.styles[key] = id
	return id, nil
}

// Cell is a writable position in the output sheet.
type Cell struct {
	w     *Writer
	col   int
	row   int
	value Value
}

func (c *Cell) Col() int { return c.col }

func (c *Cell) Row() int { return c.row }

func (c *Cell) SetValue(v Value) error {
	if err := c.w.editor.WriteValue(c.w.sheet, c.col, c.row, v); err != nil {
		return err
	}
	c.value = v
	return nil
}

// Value reads back what is stored in the cell.
func (c *Cell) Value() (Value, error) {
	return c.w.editor.ReadValue(c.w.sheet, c.col, c.row)
}

// ApplyRule applies the border and format rule idx to the cell. A date
// written through SetValue keeps its number format unless the rule has one.
func (c *Cell) ApplyRule(idx int) error {
	base, err := c.w.editor.CellStyle(c.w.sheet, c.col, c.row)
	if err != nil {
		return err
	}
	var keep NumberFormat
	if c.value.Kind == KindDate {
		keep = c.value.Format
	}
	id, err := c.w.styleFor(base, idx, keep)
	if err != nil {
		return err
	}
	return c.w.editor.SetStyle(c.w.sheet, c.col, c.row, id)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
