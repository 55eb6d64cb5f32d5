package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hakkd/job-assigner/types"
)

// ErrSheetNotFound is returned when the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// Spreadsheet reads job names from the first column of an .xlsx workbook.
//
// Every non-blank cell of column A is a job name; there is no header row.
// The workbook is opened on each ListJobs call so edits between rounds are
// picked up.
type Spreadsheet struct {
	path  string
	sheet string
}

var _ types.RosterSource = (*Spreadsheet)(nil)

// SpreadsheetOption configures a Spreadsheet source.
type SpreadsheetOption func(*Spreadsheet)

// WithSheet selects a worksheet by name instead of the first one.
func WithSheet(name string) SpreadsheetOption {
	return func(s *Spreadsheet) {
		s.sheet = name
	}
}

// NewSpreadsheet creates a roster source backed by an .xlsx file.
//
// Parameters:
//   - path: Workbook path
//   - opts: Optional settings (WithSheet)
//
// Returns:
//   - *Spreadsheet: Source reading the workbook lazily
//
// Example:
//
//	src := source.NewSpreadsheet("jobs.xlsx", source.WithSheet("Chores"))
//	names, err := src.ListJobs(ctx)
func NewSpreadsheet(path string, opts ...SpreadsheetOption) *Spreadsheet {
	s := &Spreadsheet{path: path}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListJobs returns the distinct non-blank names of column A, top to bottom.
//
// Returns:
//   - []string: Job names
//   - error: Open or read error, or ErrSheetNotFound
func (s *Spreadsheet) ListJobs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet, err := s.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, s.path, err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		names = append(names, row[0])
	}

	return distinct(names), nil
}

func (s *Spreadsheet) resolveSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if s.sheet == "" {
		if len(sheets) == 0 {
			return "", fmt.Errorf("%s has no sheets: %w", s.path, ErrSheetNotFound)
		}

		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == s.sheet {
			return name, nil
		}
	}

	return "", fmt.Errorf("%q in %s: %w", s.sheet, s.path, ErrSheetNotFound)
}
