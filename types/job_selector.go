package types

import "math/rand/v2"

// JobSelector picks the next job for a person during an assignment round.
//
// Strategies implement different selection algorithms:
//   - Uniform: uniform draw over eligible jobs (default)
//   - LinearProbe: random start with forward probing
//   - Rendezvous: deterministic highest-score eligible job
//
// A job is eligible for a person when it is not filled and the person neither
// holds it now nor has it in their history. Implementations must:
//   - Never return a filled job, the person's current job, or a job from their history
//   - Return ErrUnsatisfiable instead of looping when no job is eligible
//   - Draw randomness only from the supplied generator, so seeded engines are reproducible
//   - Not mutate jobs or the person
type JobSelector interface {
	// Select returns an eligible job for person.
	//
	// Parameters:
	//   - rng: Random source owned by the engine
	//   - jobs: Jobs in engine insertion order
	//   - person: Person being assigned
	//
	// Returns:
	//   - *Job: Selected job (one of jobs)
	//   - error: ErrUnsatisfiable when no eligible job can be found
	Select(rng *rand.Rand, jobs []*Job, person *Person) (*Job, error)
}

// Eligible reports whether job can be given to person.
func Eligible(job *Job, person *Person) bool {
	return job.Spare() > 0 && !person.HasHeld(job.Name())
}
