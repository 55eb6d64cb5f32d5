package source

import (
	"context"
	"strings"
	"sync"

	"github.com/hakkd/job-assigner/types"
)

// Static implements a roster source with a fixed list of job names.
type Static struct {
	mu   sync.RWMutex
	jobs []string
}

var _ types.RosterSource = (*Static)(nil)

// NewStatic creates a new static roster source.
//
// Blank and repeated names are dropped, keeping the first occurrence.
//
// Parameters:
//   - jobs: Job names in the order they should be added to the engine
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]string{"dishes", "trash", "sweep"})
//	err := eng.LoadJobs(ctx, src)
func NewStatic(jobs []string) *Static {
	return &Static{
		jobs: distinct(jobs),
	}
}

// ListJobs returns the static list of job names.
//
// Returns:
//   - []string: Copy of the job names
//   - error: Always nil (never fails)
func (s *Static) ListJobs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.jobs))
	copy(result, s.jobs)

	return result, nil
}

// Update replaces the job list.
//
// Parameters:
//   - jobs: New list of job names
func (s *Static) Update(jobs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = distinct(jobs)
}

// distinct trims names, drops blanks and keeps the first of each repeated name.
func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}
