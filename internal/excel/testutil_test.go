package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	testInputSheet  = "Data Table"
	testOutputSheet = "Summary of Data Tables"
)

var testOrigin = Origin{Row: 4, Col: 2}

func testLayout() SourceLayout {
	return SourceLayout{
		Sheet:      testInputSheet,
		Origin:     testOrigin,
		Extension:  ".xlsx",
		TempPrefix: "~",
	}
}

// createSource writes a source workbook shaped like the data tables:
//
//	B2: title
//	B3..E3: column headers
//	B4...: one row per entry of rows
func createSource(t *testing.T, path string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", testInputSheet))
	require.NoError(t, f.SetCellValue(testInputSheet, "B2", "Data"))
	require.NoError(t, f.SetSheetRow(testInputSheet, "B3", &[]any{"No", "Name", "Amount", "Count"}))

	// nil entries leave the cell unwritten; string entries starting with
	// '=' become formulas
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(2+j, 4+i)
			require.NoError(t, err)
			if s, ok := v.(string); ok && strings.HasPrefix(s, "=") {
				require.NoError(t, f.SetCellFormula(testInputSheet, cell, s[1:]))
				continue
			}
			require.NoError(t, f.SetCellValue(testInputSheet, cell, v))
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, f.SaveAs(path))
	return path
}

// createTemplate writes a summary template with a cover sheet, headers on
// row 3 and a filled B4 so style preservation can be observed.
func createTemplate(t *testing.T, path string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Cover"))
	require.NoError(t, f.SetCellValue("Cover", "A1", "Quarterly summary"))

	_, err := f.NewSheet(testOutputSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(testOutputSheet, "B3", &[]any{"No", "Name", "Amount", "Count"}))

	fill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"EBECF0"}, Pattern: 1},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(testOutputSheet, "B4", "B4", fill))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, f.SaveAs(path))
	return path
}

// openWriter creates a template in a temp dir and opens a writer on it.
func openWriter(t *testing.T, overflow Overflow) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	template := createTemplate(t, filepath.Join(dir, "template.xlsx"))
	output := filepath.Join(dir, "out", "summary.xlsx")

	table := DefaultRuleTable()
	table.Overflow = overflow
	w, err := OpenWriter(template, output, testOutputSheet, testOrigin, table)
	require.NoError(t, err)
	return w, output
}

// readOutput returns the typed values of the output sheet from row 4 on,
// columns B..E, until the first fully empty row.
func readOutput(t *testing.T, path string) [][]Value {
	t.Helper()
	e, err := OpenFile(path)
	require.NoError(t, err)
	defer e.Close()

	var rows [][]Value
	for row := testOrigin.Row; ; row++ {
		values := make([]Value, 0, 4)
		empty := true
		for col := 2; col <= 5; col++ {
			v, err := e.ReadValue(testOutputSheet, col, row)
			require.NoError(t, err)
			if !v.IsEmpty() {
				empty = false
			}
			values = append(values, v)
		}
		if empty {
			return rows
		}
		rows = append(rows, values)
	}
}
