package jobassigner

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hakkd/job-assigner/internal/hooks"
	"github.com/hakkd/job-assigner/internal/logger"
	"github.com/hakkd/job-assigner/internal/metrics"
	"github.com/hakkd/job-assigner/strategy"
	"github.com/hakkd/job-assigner/types"
)

// Round outcomes reported to MetricsCollector.RecordRound.
const (
	outcomeSuccess              = "success"
	outcomeInsufficientCapacity = "insufficient_capacity"
	outcomeUnsatisfiable        = "unsatisfiable"
	outcomeError                = "error"
)

// Engine owns the jobs and people of one assignment universe and runs
// assignment rounds over them.
//
// Every exported method takes the engine lock, and RunAssignment holds it for
// the whole round, so an Engine is safe to share but rounds never overlap.
// The engine is the only component that changes job occupancy and people's
// current jobs; callers should treat the *Job and *Person values it returns
// as read-only.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	jobs     []*Job
	jobIndex map[string]int
	people   []*Person
	round    int64

	selector     JobSelector
	selectorName string
	rng          *rand.Rand

	hooks   Hooks
	metrics MetricsCollector
	logger  Logger
}

// NewEngine creates an empty engine.
//
// Parameters:
//   - cfg: Configuration (nil for DefaultConfig); defaults are applied to a copy
//   - opts: Optional dependencies (WithSelector, WithRand, WithHooks, WithMetrics, WithLogger)
//
// Returns:
//   - *Engine: Engine with no jobs and no people
//   - error: ErrInvalidConfig if the configuration is invalid
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	SetDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		cfg:          c,
		jobIndex:     make(map[string]int),
		selector:     o.selector,
		selectorName: "custom",
		rng:          o.rng,
		hooks:        hooks.Fill(o.hooks),
		metrics:      o.metrics,
		logger:       o.logger,
	}

	if e.selector == nil {
		sel, err := strategy.New(c.Strategy, c.MaxProbeAttempts, c.Seed)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		e.selector = sel
		e.selectorName = c.Strategy
	}

	if e.rng == nil {
		seed := c.Seed
		if seed == 0 {
			seed = rand.Uint64() //nolint:gosec // selection randomness, not security sensitive
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec
	}

	if e.metrics == nil {
		e.metrics = metrics.NewNop()
	}
	if e.logger == nil {
		e.logger = logger.NewNop()
	}

	return e, nil
}

// Config returns a copy of the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// NewJob creates a job with the configured SlotsPerJob capacity.
//
// The job is not added to the engine.
func (e *Engine) NewJob(name string) (*Job, error) {
	return types.NewJob(name, e.cfg.SlotsPerJob)
}

// AddJob appends a job.
//
// Adding the same *Job twice is a no-op. Adding a different job whose name is
// already registered fails with ErrDuplicateJob. A job must be empty when
// added since no person holds it yet.
//
// Returns:
//   - error: ErrNilJob, ErrInvalidJobName, ErrInvalidCapacity, ErrDuplicateJob or ErrInconsistentState
func (e *Engine) AddJob(job *Job) error {
	if job == nil {
		return ErrNilJob
	}
	if strings.TrimSpace(job.Name()) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidJobName, job.Name())
	}
	if job.Capacity() <= 0 {
		return fmt.Errorf("job %q: %w (got %d)", job.Name(), ErrInvalidCapacity, job.Capacity())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if idx, ok := e.jobIndex[job.Name()]; ok {
		if e.jobs[idx] == job {
			return nil
		}

		return fmt.Errorf("%w: %q", ErrDuplicateJob, job.Name())
	}

	if job.Occupancy() != 0 {
		return fmt.Errorf("job %q added with occupancy %d: %w", job.Name(), job.Occupancy(), ErrInconsistentState)
	}

	e.jobIndex[job.Name()] = len(e.jobs)
	e.jobs = append(e.jobs, job)
	e.metrics.RecordOccupancy(job.Name(), job.Occupancy(), job.Capacity())

	return nil
}

// LoadJobs adds one job per name listed by the source, each with the
// configured SlotsPerJob capacity.
//
// Names already registered or repeated in the listing are skipped, so
// reloading the same roster is safe.
//
// Returns:
//   - int: Number of jobs added
//   - error: Source error, ErrInvalidJobName or ErrInvalidCapacity; nothing is
//     added when any listed name is rejected
func (e *Engine) LoadJobs(ctx context.Context, src RosterSource) (int, error) {
	names, err := src.ListJobs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list jobs: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pending := make([]*Job, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := e.jobIndex[name]; ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}

		job, err := types.NewJob(name, e.cfg.SlotsPerJob)
		if err != nil {
			return 0, fmt.Errorf("load jobs: %w", err)
		}
		seen[name] = struct{}{}
		pending = append(pending, job)
	}

	for _, job := range pending {
		e.jobIndex[job.Name()] = len(e.jobs)
		e.jobs = append(e.jobs, job)
		e.metrics.RecordOccupancy(job.Name(), 0, job.Capacity())
	}

	e.logger.Info("jobs loaded", "added", len(pending), "listed", len(names), "total", len(e.jobs))

	return len(pending), nil
}

// AddPerson appends a person.
//
// No duplicate check is made. A person may arrive with a history (for
// example carried over from an earlier session) but must not hold a job,
// since no job occupancy accounts for it.
//
// Returns:
//   - error: ErrNilPerson or ErrInconsistentState
func (e *Engine) AddPerson(person *Person) error {
	if person == nil {
		return ErrNilPerson
	}
	if person.Assigned() {
		return fmt.Errorf("person %d added while holding %q: %w", person.ID(), person.CurrentJob(), ErrInconsistentState)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.people = append(e.people, person)

	return nil
}

// Jobs returns the jobs in insertion order.
func (e *Engine) Jobs() []*Job {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.jobs)
}

// People returns the people in insertion order.
func (e *Engine) People() []*Person {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.people)
}

// Job looks up a job by name.
func (e *Engine) Job(name string) (*Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.jobIndex[name]
	if !ok {
		return nil, false
	}

	return e.jobs[idx], true
}

// TotalCapacity returns the sum of all job capacities.
func (e *Engine) TotalCapacity() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.totalCapacity()
}

// Round returns the number of successful rounds since the last reset.
func (e *Engine) Round() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.round
}

// SelectAvailableJob asks the configured strategy for a job the person may take.
//
// Nothing is committed; use AssignJob to apply the choice.
//
// Returns:
//   - *Job: Job with spare capacity that is not in the person's history
//   - error: ErrUnsatisfiable when none exists
func (e *Engine) SelectAvailableJob(person *Person) (*Job, error) {
	if person == nil {
		return nil, ErrNilPerson
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.selectJob(person)
}

// AssignJob moves a registered person to a registered job.
//
// The previously held job goes to the person's history and loses one
// occupant, the new job gains one. The change is atomic: on error neither
// the person nor any job is modified.
//
// Returns:
//   - error: ErrNilPerson, ErrNilJob, ErrUnknownJob, ErrInconsistentState or ErrCapacityExceeded
func (e *Engine) AssignJob(person *Person, job *Job) error {
	if person == nil {
		return ErrNilPerson
	}
	if job == nil {
		return ErrNilJob
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !slices.Contains(e.people, person) {
		return fmt.Errorf("person %d is not registered: %w", person.ID(), ErrInconsistentState)
	}

	return e.assignJob(person, job)
}

// RunAssignment runs one round.
//
// The algorithm:
//  1. Fail with ErrInsufficientCapacity if there are more people than slots
//  2. With VacateFirst, release every held job into its holder's history
//  3. For each person in insertion order, select an eligible job and commit it
//  4. On any failure, restore every person and job to the pre-round state
//
// OnRoundCompleted runs after the engine lock is released.
//
// Parameters:
//   - ctx: Checked between people; cancellation aborts and restores the round
//
// Returns:
//   - error: ErrInsufficientCapacity, ErrUnsatisfiable, a context error or a bookkeeping error
func (e *Engine) RunAssignment(ctx context.Context) error {
	round, rows, err := e.runAssignment(ctx)
	if err != nil {
		return err
	}

	if err := e.hooks.OnRoundCompleted(ctx, round, rows); err != nil {
		e.logger.Warn("round completed hook failed", "round", round, "error", err)
	}

	return nil
}

func (e *Engine) runAssignment(ctx context.Context) (int64, []Assignment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()

	if capacity := e.totalCapacity(); len(e.people) > capacity {
		e.metrics.RecordRound(outcomeInsufficientCapacity, time.Since(start).Seconds())
		e.logger.Warn("not enough job slots for round",
			"people", len(e.people), "jobs", len(e.jobs), "capacity", capacity)

		return 0, nil, fmt.Errorf("%d people, %d slots across %d jobs: %w",
			len(e.people), capacity, len(e.jobs), ErrInsufficientCapacity)
	}

	round := e.round + 1
	e.logger.Debug("starting round", "round", round, "people", len(e.people), "jobs", len(e.jobs))

	cp := types.NewCheckpoint(e.people, e.jobs)
	if err := e.assignAll(ctx); err != nil {
		cp.Rollback()
		e.recordOccupancy()

		outcome := outcomeError
		if errors.Is(err, ErrUnsatisfiable) {
			outcome = outcomeUnsatisfiable
		}
		e.metrics.RecordRound(outcome, time.Since(start).Seconds())
		e.logger.Warn("round failed, state restored", "round", round, "error", err)

		return 0, nil, fmt.Errorf("round %d: %w", round, err)
	}

	e.round = round
	e.recordOccupancy()
	e.metrics.RecordRound(outcomeSuccess, time.Since(start).Seconds())
	e.logger.Info("round completed", "round", round, "people", len(e.people),
		"duration", time.Since(start))

	return round, e.assignments(), nil
}

// RunRound runs a round and, when ResetOnExhaustion is enabled, starts a new
// session if people have run out of jobs they have not held.
//
// Returns:
//   - error: Same errors as RunAssignment
func (e *Engine) RunRound(ctx context.Context) error {
	err := e.RunAssignment(ctx)
	if err == nil || !errors.Is(err, ErrUnsatisfiable) || !e.cfg.ResetOnExhaustion {
		return err
	}

	e.logger.Info("histories exhausted, starting a new session", "error", err)
	e.ResetAll(ctx)

	return e.RunAssignment(ctx)
}

// ResetAll clears every person's job and history and every job's occupancy.
//
// Jobs and people keep their identities. Calling ResetAll repeatedly has the
// same effect as calling it once. OnReset runs after the engine lock is released.
func (e *Engine) ResetAll(ctx context.Context) {
	e.mu.Lock()
	types.ResetRoster(e.people, e.jobs)
	e.round = 0
	e.recordOccupancy()
	e.metrics.RecordReset()
	e.logger.Info("engine reset", "people", len(e.people), "jobs", len(e.jobs))
	e.mu.Unlock()

	if err := e.hooks.OnReset(ctx); err != nil {
		e.logger.Warn("reset hook failed", "error", err)
	}
}

// Assignments returns one (person id, job name) row per person, in person
// order. Unassigned people have an empty job name.
func (e *Engine) Assignments() []Assignment {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.assignments()
}

// Validate checks that occupancies and people's current jobs agree.
//
// Returns:
//   - error: ErrInconsistentState describing the first mismatch, nil if consistent
func (e *Engine) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateRoster(e.jobs, e.people); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}

	return nil
}

func (e *Engine) totalCapacity() int {
	total := 0
	for _, j := range e.jobs {
		total += j.Capacity()
	}

	return total
}

func (e *Engine) assignAll(ctx context.Context) error {
	if e.cfg.VacateFirst {
		for _, p := range e.people {
			held, err := e.heldJob(p)
			if err != nil {
				return err
			}
			if err := p.Vacate(held); err != nil {
				return err
			}
		}
	}

	for _, p := range e.people {
		if err := ctx.Err(); err != nil {
			return err
		}

		job, err := e.selectJob(p)
		if err != nil {
			return err
		}

		if err := e.assignJob(p, job); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) selectJob(person *Person) (*Job, error) {
	job, err := e.selector.Select(e.rng, e.jobs, person)
	e.metrics.RecordSelection(e.selectorName, err == nil)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("selector returned no job for person %d: %w", person.ID(), ErrNilJob)
	}

	if idx, ok := e.jobIndex[job.Name()]; !ok || e.jobs[idx] != job {
		return nil, fmt.Errorf("selector returned %q: %w", job.Name(), ErrUnknownJob)
	}
	if !types.Eligible(job, person) {
		return nil, fmt.Errorf("selector returned ineligible job %q for person %d: %w",
			job.Name(), person.ID(), ErrInconsistentState)
	}

	return job, nil
}

func (e *Engine) assignJob(person *Person, job *Job) error {
	idx, ok := e.jobIndex[job.Name()]
	if !ok || e.jobs[idx] != job {
		return fmt.Errorf("%w: %q", ErrUnknownJob, job.Name())
	}

	held, err := e.heldJob(person)
	if err != nil {
		return err
	}

	if err := person.AssignJob(held, job); err != nil {
		return err
	}

	e.logger.Debug("job assigned", "person", person.ID(), "job", job.Name(),
		"occupancy", job.Occupancy(), "spare", job.Spare())

	return nil
}

// heldJob resolves the person's current job, nil when unassigned.
func (e *Engine) heldJob(person *Person) (*Job, error) {
	name := person.CurrentJob()
	if name == "" {
		return nil, nil
	}

	idx, ok := e.jobIndex[name]
	if !ok {
		return nil, fmt.Errorf("person %d holds unregistered job %q: %w", person.ID(), name, ErrInconsistentState)
	}

	return e.jobs[idx], nil
}

func (e *Engine) assignments() []Assignment {
	out := make([]Assignment, 0, len(e.people))
	for _, p := range e.people {
		out = append(out, Assignment{PersonID: p.ID(), Job: p.CurrentJob()})
	}

	return out
}

func (e *Engine) recordOccupancy() {
	for _, j := range e.jobs {
		e.metrics.RecordOccupancy(j.Name(), j.Occupancy(), j.Capacity())
	}
}

// validateRoster checks the bidirectional job/person relation.
func validateRoster(jobs []*Job, people []*Person) error {
	holders := make(map[string]int, len(jobs))
	for _, j := range jobs {
		if _, dup := holders[j.Name()]; dup {
			return fmt.Errorf("job %q appears twice", j.Name())
		}
		holders[j.Name()] = 0
	}

	for _, p := range people {
		name := p.CurrentJob()
		if name == "" {
			continue
		}
		n, ok := holders[name]
		if !ok {
			return fmt.Errorf("person %d holds unknown job %q", p.ID(), name)
		}
		holders[name] = n + 1
	}

	for _, j := range jobs {
		if j.Occupancy() < 0 || j.Occupancy() > j.Capacity() {
			return fmt.Errorf("job %q occupancy %d outside [0, %d]", j.Name(), j.Occupancy(), j.Capacity())
		}
		if got := holders[j.Name()]; got != j.Occupancy() {
			return fmt.Errorf("job %q has occupancy %d but %d holders", j.Name(), j.Occupancy(), got)
		}
	}

	return nil
}
