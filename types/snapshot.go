package types

// JobState is the serializable form of a Job.
type JobState struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Occupancy int    `json:"occupancy"`
}

// PersonState is the serializable form of a Person.
type PersonState struct {
	ID         int      `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	CurrentJob string   `json:"currentJob,omitempty"`
	History    []string `json:"history,omitempty"`
}

// Snapshot captures the complete state of an engine.
//
// A snapshot is sufficient to rebuild the engine: restoring it yields the same
// jobs, people, occupancies and histories.
type Snapshot struct {
	// Round is the number of successful assignment rounds since the last reset.
	Round int64 `json:"round"`

	// Jobs in insertion order.
	Jobs []JobState `json:"jobs"`

	// People in insertion order.
	People []PersonState `json:"people"`
}

// Assignment pairs a person with the job assigned to them.
type Assignment struct {
	PersonID int    `json:"personId"`
	Job      string `json:"job"`
}
