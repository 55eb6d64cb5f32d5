package strategy

import (
	"math/rand/v2"

	"github.com/hakkd/job-assigner/types"
)

// Uniform draws uniformly from the jobs eligible for a person.
type Uniform struct{}

var _ types.JobSelector = (*Uniform)(nil)

// NewUniform creates a new uniform strategy.
//
// Returns:
//   - *Uniform: Initialized uniform strategy
//
// Example:
//
//	eng, err := jobassigner.NewEngine(&cfg, jobassigner.WithSelector(strategy.NewUniform()))
func NewUniform() *Uniform {
	return &Uniform{}
}

// Select returns a uniformly drawn eligible job.
//
// The algorithm:
//  1. Collect jobs with spare capacity whose names are not in the person's history
//  2. Fail with ErrUnsatisfiable if none remain
//  3. Draw one index uniformly
func (u *Uniform) Select(rng *rand.Rand, jobs []*types.Job, person *types.Person) (*types.Job, error) {
	candidates := make([]*types.Job, 0, len(jobs))
	for _, j := range jobs {
		if types.Eligible(j, person) {
			candidates = append(candidates, j)
		}
	}

	if len(candidates) == 0 {
		return nil, unsatisfiable(person, "every job is full or already held")
	}

	return candidates[rng.IntN(len(candidates))], nil
}
