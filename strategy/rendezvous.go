package strategy

import (
	"math/rand/v2"

	"github.com/hakkd/job-assigner/internal/hash"
	"github.com/hakkd/job-assigner/types"
)

// Rendezvous picks the eligible job with the highest xxh3 score for the person.
//
// The score depends on the seed, the person id, the person's history length
// (so consecutive rounds rank jobs differently) and the job name. The random
// source is not used.
type Rendezvous struct {
	scorer *hash.Rendezvous
}

var _ types.JobSelector = (*Rendezvous)(nil)

// NewRendezvous creates a new rendezvous strategy.
//
// Parameters:
//   - seed: Hash seed (0 for unseeded)
//
// Returns:
//   - *Rendezvous: Initialized strategy
func NewRendezvous(seed uint64) *Rendezvous {
	return &Rendezvous{scorer: hash.NewRendezvous(seed)}
}

// Select returns the highest scoring eligible job.
func (r *Rendezvous) Select(_ *rand.Rand, jobs []*types.Job, person *types.Person) (*types.Job, error) {
	key := r.scorer.PersonKey(person.ID(), len(person.History()))

	var (
		best      *types.Job
		bestScore uint64
	)
	for _, j := range jobs {
		if !types.Eligible(j, person) {
			continue
		}
		if s := r.scorer.Score(key, j.Name()); best == nil || s > bestScore {
			best, bestScore = j, s
		}
	}

	if best == nil {
		return nil, unsatisfiable(person, "every job is full or already held")
	}

	return best, nil
}
