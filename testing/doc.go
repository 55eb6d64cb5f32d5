// Package testing provides test utilities for job-assigner.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - StartJetStream: In-process NATS server with JetStream for KV state store tests
//   - NewTestLogger: Logger writing to the test log
//
// Example usage:
//
//	import (
//	    "testing"
//	    jatest "github.com/hakkd/job-assigner/testing"
//	)
//
//	func TestKVStore(t *testing.T) {
//	    srv := jatest.StartJetStream(t)
//	    st, err := store.NewKV(ctx, srv.JS, store.KVConfig{Bucket: "rounds"})
//	}
package testing
