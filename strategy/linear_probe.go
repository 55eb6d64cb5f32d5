package strategy

import (
	"math/rand/v2"

	"github.com/hakkd/job-assigner/types"
)

// DefaultMaxAttempts is the minimum number of random starts LinearProbe makes
// before falling back to a full scan.
const DefaultMaxAttempts = 16

// LinearProbe implements random-start forward probing.
//
// Each attempt draws a start index uniformly, then walks forward (wrapping)
// to the first job with spare capacity. If the person already held that job
// the attempt is rejected and a new start is drawn. Once the attempts run out
// the jobs are scanned once from a random start, so an eligible job is always
// found when one exists.
type LinearProbe struct {
	maxAttempts int
}

var _ types.JobSelector = (*LinearProbe)(nil)

// LinearProbeOption configures a LinearProbe strategy.
type LinearProbeOption func(*LinearProbe)

// WithMaxAttempts bounds the number of random starts per selection.
//
// Values <= 0 select the default of 4 attempts per job, at least DefaultMaxAttempts.
func WithMaxAttempts(n int) LinearProbeOption {
	return func(lp *LinearProbe) {
		lp.maxAttempts = n
	}
}

// NewLinearProbe creates a new linear probe strategy.
//
// Parameters:
//   - opts: Optional configuration (WithMaxAttempts)
//
// Returns:
//   - *LinearProbe: Initialized strategy
func NewLinearProbe(opts ...LinearProbeOption) *LinearProbe {
	lp := &LinearProbe{}
	for _, opt := range opts {
		opt(lp)
	}

	return lp
}

// Select probes for a job with spare capacity that the person has not held.
//
// Returns ErrUnsatisfiable when every job is full, or when the fallback scan
// finds no job the person has not held.
func (lp *LinearProbe) Select(rng *rand.Rand, jobs []*types.Job, person *types.Person) (*types.Job, error) {
	if len(jobs) == 0 {
		return nil, unsatisfiable(person, "no jobs")
	}

	attempts := lp.attempts(len(jobs))
	for range attempts {
		job := probe(jobs, rng.IntN(len(jobs)))
		if job == nil {
			return nil, unsatisfiable(person, "every job is full")
		}
		if !person.HasHeld(job.Name()) {
			return job, nil
		}
	}

	if job := scan(jobs, rng.IntN(len(jobs)), person); job != nil {
		return job, nil
	}

	return nil, unsatisfiable(person, "no job left that was not held")
}

func (lp *LinearProbe) attempts(jobCount int) int {
	if lp.maxAttempts > 0 {
		return lp.maxAttempts
	}

	return max(4*jobCount, DefaultMaxAttempts)
}

// probe walks forward from start, wrapping once, and returns the first job
// that is not filled, or nil after a full lap.
func probe(jobs []*types.Job, start int) *types.Job {
	for i := range jobs {
		job := jobs[(start+i)%len(jobs)]
		if !job.IsFilled() {
			return job
		}
	}

	return nil
}

// scan walks forward from start, wrapping once, and returns the first job
// eligible for person, or nil after a full lap.
func scan(jobs []*types.Job, start int, person *types.Person) *types.Job {
	for i := range jobs {
		job := jobs[(start+i)%len(jobs)]
		if types.Eligible(job, person) {
			return job
		}
	}

	return nil
}
