package types

import "context"

// RosterSource provides the ordered list of job names for an engine.
//
// Implementations can read various backends:
//   - Spreadsheet: first column of an .xlsx workbook
//   - Static: fixed list for testing
type RosterSource interface {
	// ListJobs returns distinct job names in input order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []string: Job names
	//   - error: Read error (nil on success)
	ListJobs(ctx context.Context) ([]string, error)
}

// ResultExporter serializes the outcome of an assignment round.
type ResultExporter interface {
	// Export writes one row per person, in person order.
	Export(ctx context.Context, assignments []Assignment) error
}

// StateStore persists engine snapshots so that a session can resume later.
//
// Implementations must round-trip a Snapshot exactly.
type StateStore interface {
	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the last saved snapshot, or ErrStateNotFound.
	Load(ctx context.Context) (Snapshot, error)
}
