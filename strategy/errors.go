package strategy

import (
	"fmt"

	"github.com/hakkd/job-assigner/types"
)

func unsatisfiable(person *types.Person, reason string) error {
	return fmt.Errorf("person %d: %s: %w", person.ID(), reason, types.ErrUnsatisfiable)
}
