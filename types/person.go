package types

import (
	"fmt"
	"slices"
)

// Person is an assignable identity tracked across assignment rounds.
//
// A person refers to its current job by name only. The job side of the
// relation (occupancy) is updated in the same call that changes the name,
// so the two never drift as long as all changes go through AssignJob and
// ResetRoster.
type Person struct {
	id         int
	firstName  string
	lastName   string
	currentJob string
	history    []string
}

// NewPerson creates an unassigned person with an empty history.
func NewPerson(id int, firstName, lastName string) *Person {
	return &Person{id: id, firstName: firstName, lastName: lastName}
}

// ID returns the stable person identifier.
func (p *Person) ID() int {
	return p.id
}

// FirstName returns the display first name.
func (p *Person) FirstName() string {
	return p.firstName
}

// LastName returns the display last name.
func (p *Person) LastName() string {
	return p.lastName
}

// CurrentJob returns the name of the held job, or "" when unassigned.
func (p *Person) CurrentJob() string {
	return p.currentJob
}

// Assigned reports whether the person currently holds a job.
func (p *Person) Assigned() bool {
	return p.currentJob != ""
}

// History returns a copy of the previously held job names, oldest first.
func (p *Person) History() []string {
	return slices.Clone(p.history)
}

// HasHeld reports whether the person holds the named job or has held it
// earlier in the session.
func (p *Person) HasHeld(name string) bool {
	return name != "" && (name == p.currentJob || slices.Contains(p.history, name))
}

// AssignJob moves the person from held to next.
//
// held must be the job the person currently holds (nil when unassigned).
// The previous job is pushed onto the history and vacated, then next is
// occupied. If occupying next fails, the vacate and the history push are
// undone so that neither side changes.
//
// Parameters:
//   - held: Job currently held by the person, nil if none
//   - next: Job to occupy
//
// Returns:
//   - error: ErrNilJob, ErrInconsistentState, ErrUnderflow or ErrCapacityExceeded
func (p *Person) AssignJob(held, next *Job) error {
	if next == nil {
		return ErrNilJob
	}

	heldName := ""
	if held != nil {
		heldName = held.Name()
	}
	if heldName != p.currentJob {
		return fmt.Errorf("person %d holds %q but %q was supplied: %w",
			p.id, p.currentJob, heldName, ErrInconsistentState)
	}
	if held == next {
		return nil
	}

	if held != nil {
		if err := held.Unassign(); err != nil {
			return fmt.Errorf("person %d: %w", p.id, err)
		}
		p.history = append(p.history, heldName)
	}

	if err := next.Assign(); err != nil {
		if held != nil {
			p.history = p.history[:len(p.history)-1]
			held.occupancy++
		}

		return fmt.Errorf("person %d: %w", p.id, err)
	}
	p.currentJob = next.Name()

	return nil
}

// Vacate releases the held job and pushes it onto the history.
//
// held must be the job the person currently holds. Vacating an unassigned
// person is a no-op.
//
// Returns:
//   - error: ErrInconsistentState or ErrUnderflow; the person is unchanged on error
func (p *Person) Vacate(held *Job) error {
	if p.currentJob == "" && held == nil {
		return nil
	}
	if held == nil || held.Name() != p.currentJob {
		return fmt.Errorf("person %d holds %q: %w", p.id, p.currentJob, ErrInconsistentState)
	}

	if err := held.Unassign(); err != nil {
		return fmt.Errorf("person %d: %w", p.id, err)
	}
	p.history = append(p.history, p.currentJob)
	p.currentJob = ""

	return nil
}

// State returns the serializable form of the person.
func (p *Person) State() PersonState {
	return PersonState{
		ID:         p.id,
		FirstName:  p.firstName,
		LastName:   p.lastName,
		CurrentJob: p.currentJob,
		History:    slices.Clone(p.history),
	}
}

// RestorePerson rebuilds a person from its serialized form.
//
// The caller is responsible for checking that job occupancies agree with the
// restored current jobs.
func RestorePerson(s PersonState) *Person {
	return &Person{
		id:         s.ID,
		firstName:  s.FirstName,
		lastName:   s.LastName,
		currentJob: s.CurrentJob,
		history:    slices.Clone(s.History),
	}
}

// ResetRoster clears every person's current job and history and every job's
// occupancy in one step.
//
// This is the only way to clear people. Clearing people without zeroing the
// jobs they held would leave occupancy counting phantom assignees.
func ResetRoster(people []*Person, jobs []*Job) {
	for _, p := range people {
		p.currentJob = ""
		p.history = nil
	}
	for _, j := range jobs {
		j.occupancy = 0
	}
}
