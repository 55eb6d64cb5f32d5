// Package store provides types.StateStore implementations for resuming a
// session across process restarts.
//
// The package includes:
//
//   - File: JSON document on the local filesystem
//   - KV: Entry in a NATS JetStream KeyValue bucket, guarded by revision checks
package store
