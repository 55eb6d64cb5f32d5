package types

// MetricsCollector defines methods for recording engine metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
//
// This interface composes smaller, domain-focused interfaces.
type MetricsCollector interface {
	RoundMetrics
	StoreMetrics
}

// RoundMetrics defines metrics for assignment rounds.
type RoundMetrics interface {
	// RecordRound records the outcome of one assignment round.
	//
	// Parameters:
	//   - outcome: "success", "insufficient_capacity", "unsatisfiable" or "error"
	//   - duration: Time taken in seconds
	RecordRound(outcome string, duration float64)

	// RecordSelection records one job selection.
	//
	// Parameters:
	//   - strategy: Selector name
	//   - success: true if an eligible job was found
	RecordSelection(strategy string, success bool)

	// RecordOccupancy sets the current occupancy of a job (gauge metric).
	RecordOccupancy(job string, occupancy, capacity int)

	// RecordReset records a full engine reset.
	RecordReset()
}

// StoreMetrics defines metrics for state persistence.
type StoreMetrics interface {
	// RecordStoreOperation records a state store operation.
	//
	// Parameters:
	//   - backend: "file" or "kv"
	//   - operation: "save" or "load"
	//   - duration: Time taken in seconds
	//   - success: true if the operation succeeded
	RecordStoreOperation(backend, operation string, duration float64, success bool)
}
