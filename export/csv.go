package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hakkd/job-assigner/types"
)

// Header is the first row written by CSV.
var Header = []string{"person_id", "job"}

// CSV writes assignments as comma-separated rows with a header.
type CSV struct {
	path string
	w    io.Writer
}

var _ types.ResultExporter = (*CSV)(nil)

// NewCSVFile creates an exporter that replaces the file at path on every export.
//
// Example:
//
//	exp := export.NewCSVFile("assignments.csv")
//	err := exp.Export(ctx, eng.Assignments())
func NewCSVFile(path string) *CSV {
	return &CSV{path: path}
}

// NewCSVWriter creates an exporter that appends to w.
func NewCSVWriter(w io.Writer) *CSV {
	return &CSV{w: w}
}

// Export writes the header followed by one row per assignment.
//
// Unassigned people are written with an empty job column.
//
// Returns:
//   - error: Write or file error
func (c *CSV) Export(ctx context.Context, assignments []types.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.w != nil {
		return writeRows(c.w, assignments)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".assignments-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := writeRows(tmp, assignments); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}

	return nil
}

func writeRows(w io.Writer, assignments []types.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range assignments {
		if err := cw.Write([]string{strconv.Itoa(a.PersonID), a.Job}); err != nil {
			return fmt.Errorf("write person %d: %w", a.PersonID, err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
