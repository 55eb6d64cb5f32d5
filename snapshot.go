package jobassigner

import (
	"fmt"

	"github.com/hakkd/job-assigner/types"
)

// Snapshot captures the complete engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Round:  e.round,
		Jobs:   make([]JobState, 0, len(e.jobs)),
		People: make([]PersonState, 0, len(e.people)),
	}
	for _, j := range e.jobs {
		snap.Jobs = append(snap.Jobs, j.State())
	}
	for _, p := range e.people {
		snap.People = append(snap.People, p.State())
	}

	return snap
}

// Restore replaces the engine state with a snapshot.
//
// The snapshot is validated before anything is replaced: job bounds, unique
// job names, and occupancies matching the people who hold each job. On
// success the engine holds new Job and Person instances; references obtained
// before Restore no longer belong to the engine.
//
// Returns:
//   - error: ErrInvalidSnapshot if the snapshot violates an invariant
func (e *Engine) Restore(snap Snapshot) error {
	if snap.Round < 0 {
		return fmt.Errorf("%w: negative round %d", ErrInvalidSnapshot, snap.Round)
	}

	jobs := make([]*Job, 0, len(snap.Jobs))
	index := make(map[string]int, len(snap.Jobs))
	for _, js := range snap.Jobs {
		job, err := types.RestoreJob(js)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		index[job.Name()] = len(jobs)
		jobs = append(jobs, job)
	}

	people := make([]*Person, 0, len(snap.People))
	for _, ps := range snap.People {
		people = append(people, types.RestorePerson(ps))
	}

	if err := validateRoster(jobs, people); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.jobs = jobs
	e.jobIndex = index
	e.people = people
	e.round = snap.Round
	e.recordOccupancy()
	e.logger.Info("engine restored", "round", snap.Round, "jobs", len(jobs), "people", len(people))

	return nil
}
