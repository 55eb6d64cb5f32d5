package types

import "slices"

// Checkpoint records the mutable state of a roster so that a failed
// multi-step operation can be undone in place.
//
// Rollback restores values on the same Job and Person instances, so
// references held by callers stay valid.
type Checkpoint struct {
	people    []*Person
	jobs      []*Job
	current   []string
	histories [][]string
	occupancy []int
}

// NewCheckpoint captures the current jobs and histories of people and the
// occupancy of jobs.
func NewCheckpoint(people []*Person, jobs []*Job) *Checkpoint {
	cp := &Checkpoint{
		people:    slices.Clone(people),
		jobs:      slices.Clone(jobs),
		current:   make([]string, len(people)),
		histories: make([][]string, len(people)),
		occupancy: make([]int, len(jobs)),
	}
	for i, p := range people {
		cp.current[i] = p.currentJob
		cp.histories[i] = slices.Clone(p.history)
	}
	for i, j := range jobs {
		cp.occupancy[i] = j.occupancy
	}

	return cp
}

// Rollback puts every captured person and job back to the recorded state.
func (cp *Checkpoint) Rollback() {
	for i, p := range cp.people {
		p.currentJob = cp.current[i]
		p.history = slices.Clone(cp.histories[i])
	}
	for i, j := range cp.jobs {
		j.occupancy = cp.occupancy[i]
	}
}
