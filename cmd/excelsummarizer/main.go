package main

import (
	"fmt"
	"io"
	"os"

	"excelSummarizer/internal/config"
	"excelSummarizer/internal/logger"
	"excelSummarizer/internal/summary"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "excelsummarizer",
		Short: "Collect the data tables of many workbooks into one summary",
		Long: `excelsummarizer walks input/excel recursively, copies the rows of the
"Data Table" sheet of every .xlsx file into the "Summary of Data Tables"
sheet of a copy of input/excel_summary_template.xlsx and saves it as
output/excel_summary.xlsx. Every copied row is traced to output/debug.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags parsed fine; from here on errors are runtime failures
			cmd.SilenceUsage = true
			return run(configPath, out)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file (default: built-in layout)")

	return rootCmd
}

func run(configPath string, out io.Writer) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		return err
	}
	defer logger.Close()

	result, err := summary.New(cfg, out).Run()
	if err != nil {
		logger.Error("Summary failed", "error", err)
		return err
	}

	logger.Info("Finished", "files", result.Files, "rows", result.Rows)
	return nil
}
