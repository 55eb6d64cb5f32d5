package types

import "errors"

// Sentinel errors for the job assigner.
//
// These errors provide type-safe error checking using errors.Is().
// Components wrap them with context using fmt.Errorf("%s: %w", msg, err).

// Assignment errors - returned by Engine rounds and job selection.
var (
	// ErrInsufficientCapacity is returned when there are more people than job slots.
	// It is raised before any mutation.
	ErrInsufficientCapacity = errors.New("insufficient job capacity")

	// ErrUnsatisfiable is returned when a person cannot be given any job that
	// has spare capacity and is absent from their history.
	ErrUnsatisfiable = errors.New("no eligible job for person")
)

// Bookkeeping errors - indicate a bug in the commit sequence if ever observed.
var (
	// ErrCapacityExceeded is returned when assigning to a job that is already filled.
	ErrCapacityExceeded = errors.New("job capacity exceeded")

	// ErrUnderflow is returned when unassigning from a job with zero occupancy.
	ErrUnderflow = errors.New("job occupancy underflow")

	// ErrInconsistentState is returned when job occupancy and people's current
	// jobs disagree.
	ErrInconsistentState = errors.New("inconsistent engine state")
)

// Roster errors - returned while populating an engine.
var (
	// ErrNilJob is returned when a nil job is added or assigned.
	ErrNilJob = errors.New("job is required")

	// ErrNilPerson is returned when a nil person is added or assigned.
	ErrNilPerson = errors.New("person is required")

	// ErrDuplicateJob is returned when a different job with an existing name is added.
	ErrDuplicateJob = errors.New("duplicate job name")

	// ErrUnknownJob is returned when a job is not registered with the engine.
	ErrUnknownJob = errors.New("unknown job")

	// ErrInvalidCapacity is returned when a job capacity is not positive.
	ErrInvalidCapacity = errors.New("job capacity must be positive")

	// ErrInvalidJobName is returned when a job name is blank. An empty name
	// marks an unassigned person, so no job may use it.
	ErrInvalidJobName = errors.New("job name must not be blank")
)

// Persistence errors - returned by state stores and snapshot restore.
var (
	// ErrInvalidSnapshot is returned when a snapshot violates engine invariants.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrStateNotFound is returned when a store holds no saved state.
	ErrStateNotFound = errors.New("saved state not found")

	// ErrStateConflict is returned when the stored state was modified by another writer.
	ErrStateConflict = errors.New("saved state modified concurrently")

	// ErrStoreUnavailable is returned when a remote store cannot be reached.
	ErrStoreUnavailable = errors.New("state store unavailable")
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownStrategy is returned when a selection strategy name is not recognized.
	ErrUnknownStrategy = errors.New("unknown selection strategy")
)
