// Package strategy provides built-in job selection strategies.
//
// A selection strategy decides which job a person receives next. Every
// strategy only returns jobs that have spare capacity and are absent from the
// person's history, and every strategy reports types.ErrUnsatisfiable instead
// of looping when no such job exists.
//
//   - Uniform: Uniform draw over the eligible jobs (recommended)
//   - LinearProbe: Random start index, forward probe to the first job with spare capacity
//   - Rendezvous: Deterministic highest-score eligible job using xxh3
//
// # Strategy Selection Guide
//
// Uniform:
//   - Every eligible job is equally likely
//   - Single pass over the jobs, no retries
//
// LinearProbe:
//   - Reproduces the classic probe: jobs right after a long run of filled jobs
//     are favored, so the distribution is not uniform
//   - History rejections are retried with a fresh random start, bounded by MaxAttempts
//
// Rendezvous:
//   - Ignores the random source; the same roster and seed always produce the same assignment
//   - Useful for reproducible rotas that do not depend on a stored random seed
//
// Custom strategies can be implemented by satisfying the types.JobSelector interface.
package strategy
