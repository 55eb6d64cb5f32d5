package strategy

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hakkd/job-assigner/types"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11)) //nolint:gosec
}

func makeJobs(t *testing.T, capacity int, names ...string) []*types.Job {
	t.Helper()

	jobs := make([]*types.Job, 0, len(names))
	for _, n := range names {
		j, err := types.NewJob(n, capacity)
		require.NoError(t, err)
		jobs = append(jobs, j)
	}

	return jobs
}

func fill(t *testing.T, j *types.Job) {
	t.Helper()

	for !j.IsFilled() {
		require.NoError(t, j.Assign())
	}
}

func allSelectors() map[string]types.JobSelector {
	return map[string]types.JobSelector{
		NameUniform:     NewUniform(),
		NameLinearProbe: NewLinearProbe(WithMaxAttempts(64)),
		NameRendezvous:  NewRendezvous(99),
	}
}

func TestSelectors_RespectConstraints(t *testing.T) {
	for name, sel := range allSelectors() {
		t.Run(name, func(t *testing.T) {
			jobs := makeJobs(t, 1, "dishes", "trash", "sweep", "laundry")
			fill(t, jobs[1])
			person := types.RestorePerson(types.PersonState{ID: 1, History: []string{"sweep"}})
			rng := newRand()

			for range 200 {
				job, err := sel.Select(rng, jobs, person)
				require.NoError(t, err)
				require.False(t, job.IsFilled())
				require.NotEqual(t, "sweep", job.Name())
			}
		})
	}
}

func TestSelectors_Unsatisfiable(t *testing.T) {
	for name, sel := range allSelectors() {
		t.Run(name+"/all jobs full", func(t *testing.T) {
			jobs := makeJobs(t, 1, "dishes", "trash")
			fill(t, jobs[0])
			fill(t, jobs[1])

			_, err := sel.Select(newRand(), jobs, types.NewPerson(1, "", ""))
			require.ErrorIs(t, err, types.ErrUnsatisfiable)
		})

		t.Run(name+"/only free job already held", func(t *testing.T) {
			jobs := makeJobs(t, 1, "dishes", "trash", "sweep")
			fill(t, jobs[0])
			fill(t, jobs[2])
			person := types.RestorePerson(types.PersonState{ID: 1, History: []string{"trash"}})

			_, err := sel.Select(newRand(), jobs, person)
			require.ErrorIs(t, err, types.ErrUnsatisfiable)
		})

		t.Run(name+"/no jobs", func(t *testing.T) {
			_, err := sel.Select(newRand(), nil, types.NewPerson(1, "", ""))
			require.ErrorIs(t, err, types.ErrUnsatisfiable)
		})
	}
}

func TestUniform_CoversEveryEligibleJob(t *testing.T) {
	jobs := makeJobs(t, 1, "dishes", "trash", "sweep")
	person := types.NewPerson(1, "", "")
	rng := newRand()
	counts := make(map[string]int)

	for range 3000 {
		job, err := NewUniform().Select(rng, jobs, person)
		require.NoError(t, err)
		counts[job.Name()]++
	}

	for _, j := range jobs {
		require.InDelta(t, 1000, counts[j.Name()], 150)
	}
}

func TestLinearProbe_FavorsJobAfterFilledRun(t *testing.T) {
	// Starts at 0, 1 and 2 all land on "sweep"; only start 3 lands on "laundry".
	jobs := makeJobs(t, 1, "dishes", "trash", "sweep", "laundry")
	fill(t, jobs[0])
	fill(t, jobs[1])
	person := types.NewPerson(1, "", "")
	rng := newRand()
	counts := make(map[string]int)

	for range 4000 {
		job, err := NewLinearProbe().Select(rng, jobs, person)
		require.NoError(t, err)
		counts[job.Name()]++
	}

	require.InDelta(t, 3000, counts["sweep"], 200)
	require.InDelta(t, 1000, counts["laundry"], 200)
}

func TestLinearProbe_FallsBackToScan(t *testing.T) {
	// Every start but the last probes onto "job-98", which the person held, so
	// random starts alone rarely reach "job-99".
	names := make([]string, 100)
	for i := range names {
		names[i] = fmt.Sprintf("job-%d", i)
	}
	jobs := makeJobs(t, 1, names...)
	for _, j := range jobs[:98] {
		fill(t, j)
	}
	person := types.RestorePerson(types.PersonState{ID: 1, History: []string{"job-98"}})
	sel := NewLinearProbe(WithMaxAttempts(1))

	for seed := range uint64(50) {
		job, err := sel.Select(rand.New(rand.NewPCG(seed, seed)), jobs, person) //nolint:gosec
		require.NoError(t, err)
		require.Same(t, jobs[99], job)
	}
}

func TestLinearProbe_AttemptBound(t *testing.T) {
	require.Equal(t, DefaultMaxAttempts, NewLinearProbe().attempts(2))
	require.Equal(t, 40, NewLinearProbe().attempts(10))
	require.Equal(t, 3, NewLinearProbe(WithMaxAttempts(3)).attempts(10))
}

func TestRendezvous_Deterministic(t *testing.T) {
	jobs := makeJobs(t, 5, "dishes", "trash", "sweep", "laundry")
	sel := NewRendezvous(1234)

	for id := 1; id <= 10; id++ {
		person := types.NewPerson(id, "", "")
		first, err := sel.Select(nil, jobs, person)
		require.NoError(t, err)
		second, err := sel.Select(newRand(), jobs, person)
		require.NoError(t, err)
		require.Same(t, first, second)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{NameUniform, NameLinearProbe, NameRendezvous} {
		sel, err := New(name, 0, 0)
		require.NoError(t, err)
		require.NotNil(t, sel)
	}

	_, err := New("round-robin", 0, 0)
	require.ErrorIs(t, err, types.ErrUnknownStrategy)
}
