package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"excelSummarizer/internal/excel"
	"excelSummarizer/internal/logger"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Format FormatConfig `toml:"format"`
	Log    LogConfig    `toml:"log"`
}

type InputConfig struct {
	Root       string       `toml:"root"`
	Relative   string       `toml:"relative"`
	Extension  string       `toml:"extension"`
	TempPrefix string       `toml:"temp_prefix"`
	Sheet      string       `toml:"sheet"`
	Origin     excel.Origin `toml:"origin"`
}

type OutputConfig struct {
	Template string       `toml:"template"`
	Workbook string       `toml:"workbook"`
	Sheet    string       `toml:"sheet"`
	Origin   excel.Origin `toml:"origin"`
	DebugLog string       `toml:"debug_log"`
}

type FormatConfig struct {
	ColumnOverflow string                 `toml:"column_overflow"`
	Border         excel.Border           `toml:"border"`
	Columns        []excel.CellFormatRule `toml:"columns"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in layout: every workbook under input/excel
// is summarized into output/excel_summary.xlsx.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Root:       "input",
			Relative:   "excel",
			Extension:  ".xlsx",
			TempPrefix: "~",
			Sheet:      "Data Table",
			Origin:     excel.Origin{Row: 4, Col: 2},
		},
		Output: OutputConfig{
			Template: filepath.Join("input", "excel_summary_template.xlsx"),
			Workbook: filepath.Join("output", "excel_summary.xlsx"),
			Sheet:    "Summary of Data Tables",
			Origin:   excel.Origin{Row: 4, Col: 2},
			DebugLog: filepath.Join("output", "debug.txt"),
		},
		Format: FormatConfig{
			ColumnOverflow: string(excel.OverflowError),
			Border:         excel.DefaultBorder(),
			Columns:        excel.DefaultRules(),
		},
		Log: LogConfig{
			File:  filepath.Join("logs", "excel_summarizer.log"),
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified config file path.
// An empty path yields the defaults; a missing file is created with them.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Column rules are replaced as a whole, never merged with the defaults
	config := Default()
	config.Format.Columns = nil
	_, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}
	if len(config.Format.Columns) == 0 {
		config.Format.Columns = excel.DefaultRules()
	}

	logger.Info("Loaded configuration", "path", configPath)
	return config, nil
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.Root == "" {
		errs = append(errs, errors.New("input.root is required"))
	}
	if !strings.HasPrefix(c.Input.Extension, ".") {
		errs = append(errs, fmt.Errorf("input.extension %q must start with '.'", c.Input.Extension))
	}
	if c.Input.Sheet == "" {
		errs = append(errs, errors.New("input.sheet is required"))
	}
	errs = append(errs, validateOrigin("input.origin", c.Input.Origin))

	if c.Output.Template == "" {
		errs = append(errs, errors.New("output.template is required"))
	}
	if c.Output.Workbook == "" {
		errs = append(errs, errors.New("output.workbook is required"))
	}
	if c.Output.Sheet == "" {
		errs = append(errs, errors.New("output.sheet is required"))
	}
	errs = append(errs, validateOrigin("output.origin", c.Output.Origin))

	if _, err := c.Format.RuleTable(); err != nil {
		errs = append(errs, err)
	}

	if c.Log.File == "" {
		errs = append(errs, errors.New("log.file is required"))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

func validateOrigin(name string, o excel.Origin) error {
	if o.Row < 1 || o.Col < 1 {
		return fmt.Errorf("%s must be 1-based, got row %d col %d", name, o.Row, o.Col)
	}
	return nil
}

// RuleTable converts the format section into the table used when writing.
func (f FormatConfig) RuleTable() (excel.RuleTable, error) {
	overflow, err := excel.ParseOverflow(f.ColumnOverflow)
	if err != nil {
		return excel.RuleTable{}, fmt.Errorf("format.column_overflow: %w", err)
	}
	if len(f.Columns) == 0 {
		return excel.RuleTable{}, errors.New("format.columns needs at least one rule")
	}
	if _, err := excel.BorderStyleID(f.Border.Style); err != nil {
		return excel.RuleTable{}, fmt.Errorf("format.border: %w", err)
	}
	return excel.RuleTable{
		Rules:    f.Columns,
		Border:   f.Border,
		Overflow: overflow,
	}, nil
}

// Layout returns the input file layout used by the directory walk.
func (i InputConfig) Layout() excel.SourceLayout {
	return excel.SourceLayout{
		Sheet:      i.Sheet,
		Origin:     i.Origin,
		Extension:  i.Extension,
		TempPrefix: i.TempPrefix,
	}
}
