package config

import (
	"os"
	"path/filepath"
	"testing"

	"excelSummarizer/internal/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Data Table", cfg.Input.Sheet)
	assert.Equal(t, "Summary of Data Tables", cfg.Output.Sheet)
	assert.Equal(t, excel.Origin{Row: 4, Col: 2}, cfg.Input.Origin)
	assert.Equal(t, excel.Origin{Row: 4, Col: 2}, cfg.Output.Origin)
	assert.Equal(t, ".xlsx", cfg.Input.Extension)
	assert.Len(t, cfg.Format.Columns, 4)
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "summarizer.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err)

	// The written file decodes back to the same configuration
	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summarizer.toml")
	content := `
[input]
root = "data"
sheet = "Rows"

[input.origin]
row = 2
col = 1

[format]
column_overflow = "cycle"

[[format.columns]]
number_format = "0.0"

[format.columns.font]
name = "Arial"
size = 11.0
color = "333333"

[[format.columns]]

[format.columns.font]
name = "Arial"
size = 11.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data", cfg.Input.Root)
	assert.Equal(t, "Rows", cfg.Input.Sheet)
	assert.Equal(t, excel.Origin{Row: 2, Col: 1}, cfg.Input.Origin)
	// Untouched keys keep their defaults
	assert.Equal(t, "excel", cfg.Input.Relative)
	assert.Equal(t, "Summary of Data Tables", cfg.Output.Sheet)

	require.Len(t, cfg.Format.Columns, 2)
	assert.Equal(t, "0.0", cfg.Format.Columns[0].NumberFormat)
	assert.Equal(t, "Arial", cfg.Format.Columns[0].Font.Name)
	assert.Nil(t, cfg.Format.Columns[1].Alignment, "rules are not merged with the default table")
	assert.Empty(t, cfg.Format.Columns[1].NumberFormat)

	table, err := cfg.Format.RuleTable()
	require.NoError(t, err)
	assert.Equal(t, excel.OverflowCycle, table.Overflow)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[input\nroot = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Input.Extension = "xlsx"
	cfg.Input.Origin.Row = 0
	cfg.Output.Sheet = ""
	cfg.Format.ColumnOverflow = "wrap"
	cfg.Log.File = ""
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "input.extension")
	assert.Contains(t, msg, "input.origin")
	assert.Contains(t, msg, "output.sheet")
	assert.Contains(t, msg, "format.column_overflow")
	assert.Contains(t, msg, "log.file")
	assert.Contains(t, msg, "log.level")
}

func TestRuleTable_RejectsEmptyColumns(t *testing.T) {
	f := Default().Format
	f.Columns = nil
	_, err := f.RuleTable()
	assert.Error(t, err)

	f = Default().Format
	f.Border.Style = "wavy"
	_, err = f.RuleTable()
	assert.Error(t, err)
}

func TestInputLayout(t *testing.T) {
	layout := Default().Input.Layout()
	assert.Equal(t, "Data Table", layout.Sheet)
	assert.Equal(t, "~", layout.TempPrefix)
	assert.True(t, layout.IsInput("report.xlsx"))
	assert.False(t, layout.IsInput("~$report.xlsx"))
}
