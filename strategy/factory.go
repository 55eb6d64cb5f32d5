package strategy

import (
	"fmt"

	"github.com/hakkd/job-assigner/types"
)

// Strategy names accepted by New.
const (
	NameUniform     = "uniform"
	NameLinearProbe = "linear-probe"
	NameRendezvous  = "rendezvous"
)

// New creates a selector by name.
//
// Parameters:
//   - name: One of NameUniform, NameLinearProbe, NameRendezvous
//   - maxAttempts: Attempt bound for LinearProbe (ignored by the others)
//   - seed: Hash seed for Rendezvous (ignored by the others)
//
// Returns:
//   - types.JobSelector: Selector instance
//   - error: ErrUnknownStrategy for unrecognized names
func New(name string, maxAttempts int, seed uint64) (types.JobSelector, error) {
	switch name {
	case NameUniform:
		return NewUniform(), nil
	case NameLinearProbe:
		return NewLinearProbe(WithMaxAttempts(maxAttempts)), nil
	case NameRendezvous:
		return NewRendezvous(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownStrategy, name)
	}
}
