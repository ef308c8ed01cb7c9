// Package summary runs one summarization pass: it copies every input
// workbook into the summary template and writes the trace log.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"excelSummarizer/internal/config"
	"excelSummarizer/internal/excel"
	"excelSummarizer/internal/logger"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04:05"

type Summarizer struct {
	cfg    *config.Config
	out    io.Writer
	banner lipgloss.Style
	now    func() time.Time
}

func New(cfg *config.Config, out io.Writer) *Summarizer {
	renderer := lipgloss.NewRenderer(out)
	return &Summarizer{
		cfg:    cfg,
		out:    out,
		banner: renderer.NewStyle().Bold(true),
		now:    time.Now,
	}
}

// Run performs the whole pass. The output workbook is saved only when
// every input file was copied.
func (s *Summarizer) Run() (excel.WalkResult, error) {
	s.printBanner("start")

	rules, err := s.cfg.Format.RuleTable()
	if err != nil {
		return excel.WalkResult{}, err
	}

	trace, err := openTrace(s.cfg.Output.DebugLog)
	if err != nil {
		return excel.WalkResult{}, err
	}
	defer trace.Close()

	writer, err := excel.OpenWriter(
		s.cfg.Output.Template,
		s.cfg.Output.Workbook,
		s.cfg.Output.Sheet,
		s.cfg.Output.Origin,
		rules,
	)
	if err != nil {
		return excel.WalkResult{}, fmt.Errorf("failed to open output workbook: %w", err)
	}

	logger.Info("Starting summary",
		"input_root", s.cfg.Input.Root,
		"template", s.cfg.Output.Template,
		"output", s.cfg.Output.Workbook)

	walker := &excel.Walker{
		Writer: writer,
		Layout: s.cfg.Input.Layout(),
		Trace:  trace.writer(),
		Stdout: s.out,
	}
	dirRoot := filepath.Join(s.cfg.Input.Root, s.cfg.Input.Relative)
	result, err := walker.Walk(dirRoot, s.cfg.Input.Relative)
	if err != nil {
		writer.Discard()
		logger.Error("Summary aborted", "rows_discarded", writer.Rows(), "error", err)
		return result, err
	}

	if err := writer.Close(); err != nil {
		return result, err
	}
	if err := trace.Close(); err != nil {
		return result, err
	}

	logger.Info("Summary completed", "files", result.Files, "rows", result.Rows)
	s.printBanner("end")
	return result, nil
}

func (s *Summarizer) printBanner(stage string) {
	line := fmt.Sprintf("Excel Summarizer - %s [%s]", stage, s.now().Format(timeLayout))
	fmt.Fprintln(s.out, s.banner.Render(line))
}

// traceLog is the plain-text debug file. A zero traceLog writes nothing.
type traceLog struct {
	file *os.File
	buf  *bufio.Writer
}

func openTrace(path string) (*traceLog, error) {
	if path == "" {
		return &traceLog{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create debug log directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create debug log: %w", err)
	}
	return &traceLog{file: file, buf: bufio.NewWriter(file)}, nil
}

func (t *traceLog) writer() io.Writer {
	if t.buf == nil {
		return nil
	}
	return t.buf
}

// Close flushes and closes the file; later calls do nothing.
func (t *traceLog) Close() error {
	if t.file == nil {
		return nil
	}
	flushErr := t.buf.Flush()
	closeErr := t.file.Close()
	t.file, t.buf = nil, nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
