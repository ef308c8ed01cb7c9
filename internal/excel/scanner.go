package excel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"excelSummarizer/internal/logger"

	"golang.org/x/text/cases"
)

// WalkResult totals what a directory walk copied.
type WalkResult struct {
	Files int
	Rows  int
}

// Walker copies every input workbook under a directory tree into Writer.
type Walker struct {
	Writer *Writer
	Layout SourceLayout
	// Trace receives every visited file path and the per-row trace lines.
	Trace io.Writer
	// Stdout receives one summary line per copied file.
	Stdout io.Writer

	result WalkResult
}

// Walk visits dirRoot depth-first. dirRelative is the name reported for
// dirRoot in summary lines.
func (wk *Walker) Walk(dirRoot, dirRelative string) (WalkResult, error) {
	wk.result = WalkResult{}
	err := wk.SeekDirectories(0, dirRoot, dirRelative)
	return wk.result, err
}

// SeekDirectories processes the files of dirRoot in case-insensitive
// name order and then recurses into its subdirectories in the same order.
func (wk *Walker) SeekDirectories(level int, dirRoot, dirRelative string) error {
	logger.Debug("Entering directory", "path", dirRoot, "level", level)

	files, dirs, err := listDirectory(dirRoot)
	if err != nil {
		return err
	}

	for _, file := range files {
		fullPath := filepath.Join(dirRoot, file)
		if wk.Trace != nil {
			if _, err := fmt.Fprintf(wk.Trace, "%s\n", fullPath); err != nil {
				return fmt.Errorf("failed to write trace: %w", err)
			}
		}
		if !wk.Layout.IsInput(file) {
			logger.Debug("Skipping file", "path", fullPath)
			continue
		}

		lines, err := ScanSpreadsheetFile(wk.Writer, fullPath, wk.Layout, wk.Trace)
		if err != nil {
			return err
		}
		wk.result.Files++
		wk.result.Rows += lines

		logger.Info("Copied file", "path", fullPath, "rows", lines)
		if wk.Stdout != nil {
			if _, err := fmt.Fprintf(wk.Stdout, "%s %s %d\n", dirRelative, file, lines); err != nil {
				return fmt.Errorf("failed to write summary line: %w", err)
			}
		}
	}

	for _, dir := range dirs {
		err := wk.SeekDirectories(level+1, filepath.Join(dirRoot, dir), filepath.Join(dirRelative, dir))
		if err != nil {
			return err
		}
	}

	return nil
}

// IsInput reports whether a file name is an input workbook: the
// extension must match exactly and the base name must not carry the
// temporary-file prefix.
func (l SourceLayout) IsInput(name string) bool {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" || ext != l.Extension {
		return false
	}
	return l.TempPrefix == "" || !strings.HasPrefix(base, l.TempPrefix)
}

// listDirectory splits the entries of dir into files and directories,
// each sorted by case-folded name. Symlinks are resolved; anything that
// is neither a regular file nor a directory is skipped.
func listDirectory(dir string) (files, dirs []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			continue
		}
		switch {
		case info.Mode().IsRegular():
			files = append(files, entry.Name())
		case info.IsDir():
			dirs = append(dirs, entry.Name())
		default:
			logger.Warn("Skipping special file", "path", path, "mode", info.Mode().String())
		}
	}

	sortFolded(files)
	sortFolded(dirs)
	return files, dirs, nil
}

type foldedName struct {
	key  string
	name string
}

// sortFolded orders names case-insensitively, breaking ties on the raw name.
func sortFolded(names []string) {
	caser := cases.Fold()
	items := make([]foldedName, len(names))
	for i, name := range names {
		items[i] = foldedName{key: caser.String(name), name: name}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].key != items[j].key {
			return items[i].key < items[j].key
		}
		return items[i].name < items[j].name
	})
	for i := range items {
		names[i] = items[i].name
	}
}
