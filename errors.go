package jobassigner

import "github.com/hakkd/job-assigner/types"

// Sentinel errors re-exported from the types package.
var (
	ErrInsufficientCapacity = types.ErrInsufficientCapacity
	ErrUnsatisfiable        = types.ErrUnsatisfiable
	ErrCapacityExceeded     = types.ErrCapacityExceeded
	ErrUnderflow            = types.ErrUnderflow
	ErrInconsistentState    = types.ErrInconsistentState
	ErrNilJob               = types.ErrNilJob
	ErrNilPerson            = types.ErrNilPerson
	ErrDuplicateJob         = types.ErrDuplicateJob
	ErrUnknownJob           = types.ErrUnknownJob
	ErrInvalidCapacity      = types.ErrInvalidCapacity
	ErrInvalidJobName       = types.ErrInvalidJobName
	ErrInvalidSnapshot      = types.ErrInvalidSnapshot
	ErrStateNotFound        = types.ErrStateNotFound
	ErrStateConflict        = types.ErrStateConflict
	ErrStoreUnavailable     = types.ErrStoreUnavailable
	ErrInvalidConfig        = types.ErrInvalidConfig
	ErrUnknownStrategy      = types.ErrUnknownStrategy
)
