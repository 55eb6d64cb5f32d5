package source

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves column A values to sheet and returns the file path.
func writeWorkbook(t *testing.T, sheet string, column []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, v := range column {
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), v))
	}
	// A second column must be ignored.
	require.NoError(t, f.SetCellValue(sheet, "B1", "ignored"))

	path := filepath.Join(t.TempDir(), "jobs.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestSpreadsheet_ListJobs(t *testing.T) {
	t.Run("reads first column of first sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", []string{"dishes", "trash", "sweep"})

		names, err := NewSpreadsheet(path).ListJobs(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"dishes", "trash", "sweep"}, names)
	})

	t.Run("skips blanks and repeats", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", []string{"dishes", "", "trash", "dishes"})

		names, err := NewSpreadsheet(path).ListJobs(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"dishes", "trash"}, names)
	})

	t.Run("reads named sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Chores", []string{"laundry"})

		names, err := NewSpreadsheet(path, WithSheet("Chores")).ListJobs(context.Background())

		require.NoError(t, err)
		require.Equal(t, []string{"laundry"}, names)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", []string{"dishes"})

		_, err := NewSpreadsheet(path, WithSheet("Missing")).ListJobs(context.Background())

		require.ErrorIs(t, err, ErrSheetNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewSpreadsheet(filepath.Join(t.TempDir(), "none.xlsx")).ListJobs(context.Background())

		require.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSpreadsheet("unused.xlsx").ListJobs(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
