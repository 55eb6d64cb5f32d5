// Package types provides core type definitions and interfaces for the job assigner.
//
// This package contains shared types that are used across multiple packages in the
// module. By keeping these types in a separate package, we avoid import cycles
// between the root jobassigner package and its strategy, source, export and store
// implementations.
//
// Key types:
//   - Job: Capacity-bounded assignment target
//   - Person: Assignable identity with a job history
//   - Snapshot: Serializable engine state
//   - JobSelector: Pluggable job selection algorithm
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
