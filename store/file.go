package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hakkd/job-assigner/types"
)

// DefaultFilePath is the state file used when none is configured.
const DefaultFilePath = "data.json"

// File stores the snapshot as an indented JSON document.
//
// Saves write a temp file in the same directory and rename it over the
// target, so a crash never leaves a truncated state file behind.
type File struct {
	path string
	opts options
}

var _ types.StateStore = (*File)(nil)

// NewFile creates a file-backed state store.
//
// Parameters:
//   - path: State file path (DefaultFilePath if empty)
//   - opts: Optional metrics and logger
//
// Returns:
//   - *File: Store; the file is not touched until Save or Load
func NewFile(path string, opts ...Option) *File {
	if path == "" {
		path = DefaultFilePath
	}

	return &File{path: path, opts: buildOptions(opts)}
}

// Path returns the state file path.
func (f *File) Path() string {
	return f.path
}

// Save replaces the state file with snap.
func (f *File) Save(ctx context.Context, snap types.Snapshot) error {
	start := time.Now()

	return f.opts.observe(backendFile, "save", start, f.save(ctx, snap))
}

// Load reads the state file.
//
// Returns:
//   - types.Snapshot: Decoded snapshot
//   - error: types.ErrStateNotFound if the file does not exist
func (f *File) Load(ctx context.Context) (types.Snapshot, error) {
	start := time.Now()
	snap, err := f.load(ctx)

	return snap, f.opts.observe(backendFile, "load", start, err)
}

func (f *File) save(ctx context.Context, snap types.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	return nil
}

func (f *File) load(ctx context.Context) (types.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return types.Snapshot{}, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.Snapshot{}, fmt.Errorf("%s: %w", f.path, types.ErrStateNotFound)
	}
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("read %s: %w", f.path, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("decode %s: %w: %w", f.path, types.ErrInvalidSnapshot, err)
	}

	return snap, nil
}
