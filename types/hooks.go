package types

import "context"

// Hooks defines callbacks for engine lifecycle events.
//
// Hooks run synchronously after the engine lock is released, so they may read
// the engine (Snapshot, Assignments). A concurrent round can already have
// moved the engine on by the time a hook reads it; the arguments passed to the
// hook describe the state the event produced. Hook errors are logged and do
// not fail the operation.
type Hooks struct {
	// OnRoundCompleted is called after a successful round with the new assignments.
	OnRoundCompleted func(ctx context.Context, round int64, assignments []Assignment) error

	// OnReset is called after ResetAll cleared the engine.
	OnReset func(ctx context.Context) error
}
