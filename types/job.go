package types

import (
	"fmt"
	"strings"
)

// Job is a capacity-bounded assignment target.
//
// Occupancy only changes through Assign and Unassign, so it can never leave
// the range [0, Capacity]. The engine is the single authority that keeps a
// job's occupancy equal to the number of people currently holding it.
type Job struct {
	name      string
	capacity  int
	occupancy int
}

// NewJob creates an empty job.
//
// Parameters:
//   - name: Unique, non-blank job name within an engine
//   - capacity: Number of slots (must be positive)
//
// Returns:
//   - *Job: Job with zero occupancy
//   - error: ErrInvalidJobName if name is blank, ErrInvalidCapacity if capacity <= 0
func NewJob(name string, capacity int) (*Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJobName, name)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("job %q: %w (got %d)", name, ErrInvalidCapacity, capacity)
	}

	return &Job{name: name, capacity: capacity}, nil
}

// Name returns the job name.
func (j *Job) Name() string {
	return j.name
}

// Capacity returns the number of slots.
func (j *Job) Capacity() int {
	return j.capacity
}

// Occupancy returns the number of slots currently taken.
func (j *Job) Occupancy() int {
	return j.occupancy
}

// Spare returns the number of free slots.
func (j *Job) Spare() int {
	return j.capacity - j.occupancy
}

// IsFilled reports whether every slot is taken.
func (j *Job) IsFilled() bool {
	return j.occupancy == j.capacity
}

// Assign takes one slot.
//
// Returns:
//   - error: ErrCapacityExceeded if the job is already filled
func (j *Job) Assign() error {
	if j.IsFilled() {
		return fmt.Errorf("job %q (%d/%d): %w", j.name, j.occupancy, j.capacity, ErrCapacityExceeded)
	}
	j.occupancy++

	return nil
}

// Unassign releases one slot.
//
// Returns:
//   - error: ErrUnderflow if no slot is taken
func (j *Job) Unassign() error {
	if j.occupancy == 0 {
		return fmt.Errorf("job %q: %w", j.name, ErrUnderflow)
	}
	j.occupancy--

	return nil
}

// State returns the serializable form of the job.
func (j *Job) State() JobState {
	return JobState{Name: j.name, Capacity: j.capacity, Occupancy: j.occupancy}
}

// RestoreJob rebuilds a job from its serialized form.
//
// Returns:
//   - *Job: Job carrying the saved occupancy
//   - error: ErrInvalidJobName, ErrInvalidCapacity or ErrInvalidSnapshot when the bounds do not hold
func RestoreJob(s JobState) (*Job, error) {
	job, err := NewJob(s.Name, s.Capacity)
	if err != nil {
		return nil, err
	}
	if s.Occupancy < 0 || s.Occupancy > s.Capacity {
		return nil, fmt.Errorf("job %q occupancy %d outside [0, %d]: %w",
			s.Name, s.Occupancy, s.Capacity, ErrInvalidSnapshot)
	}
	job.occupancy = s.Occupancy

	return job, nil
}
