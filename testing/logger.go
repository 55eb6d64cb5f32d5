package testing

import (
	"testing"

	"github.com/hakkd/job-assigner/internal/logger"
	"github.com/hakkd/job-assigner/types"
)

// NewTestLogger creates a logger that writes to the test log, so engine
// output shows up with -v and next to failures.
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
