package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hakkd/job-assigner/internal/logger"
	"github.com/hakkd/job-assigner/types"
)

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	m := &recordingMetrics{}

	exerciseRoundTrip(t, NewFile(path, WithMetrics(m), WithLogger(logger.NewTest(t))))

	require.Equal(t, []storeCall{
		{backend: "file", operation: "load", success: false},
		{backend: "file", operation: "save", success: true},
		{backend: "file", operation: "load", success: true},
		{backend: "file", operation: "save", success: true},
		{backend: "file", operation: "load", success: true},
	}, m.calls)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFile_DefaultPath(t *testing.T) {
	require.Equal(t, "data.json", NewFile("").Path())
}

func TestFile_Load_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFile(path).Load(context.Background())

	require.ErrorIs(t, err, types.ErrInvalidSnapshot)
}

func TestFile_Save_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "data.json")

	err := NewFile(path).Save(context.Background(), sampleSnapshot(1))

	require.Error(t, err)
}

func TestFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := NewFile(filepath.Join(t.TempDir(), "data.json"))

	require.ErrorIs(t, st.Save(ctx, sampleSnapshot(1)), context.Canceled)
	_, err := st.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
