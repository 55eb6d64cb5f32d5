package jobassigner

import "github.com/hakkd/job-assigner/types"

// Re-export types from the types package.
//
// The types subpackage holds the definitions so that strategy, source, export
// and store packages can depend on them without importing the root package.
type (
	Job         = types.Job
	Person      = types.Person
	JobState    = types.JobState
	PersonState = types.PersonState
	Snapshot    = types.Snapshot
	Assignment  = types.Assignment
)

// Re-export interfaces from the types package for convenience.
type (
	JobSelector      = types.JobSelector
	RosterSource     = types.RosterSource
	ResultExporter   = types.ResultExporter
	StateStore       = types.StateStore
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// NewPerson creates an unassigned person.
func NewPerson(id int, firstName, lastName string) *Person {
	return types.NewPerson(id, firstName, lastName)
}
