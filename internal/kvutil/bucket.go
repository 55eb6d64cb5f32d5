// Package kvutil provides helpers for NATS JetStream KeyValue buckets.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultAttempts is used when OpenBucket is given a non-positive attempt count.
const DefaultAttempts = 3

// OpenBucket opens a KV bucket, creating it first when it does not exist.
//
// Several processes may start against the same bucket at once; a lost
// creation race is resolved by opening the bucket the winner created.
// Transient failures are retried with exponential backoff (10ms, 20ms, ...).
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream handle
//   - cfg: Bucket configuration used on creation
//   - attempts: Maximum number of tries (DefaultAttempts if <= 0)
//
// Returns:
//   - jetstream.KeyValue: Bucket handle
//   - error: Last failure after all attempts, or the context error
//
// Example:
//
//	kv, err := kvutil.OpenBucket(ctx, js, jetstream.KeyValueConfig{Bucket: "job-assigner"}, 0)
func OpenBucket(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig, attempts int) (jetstream.KeyValue, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := range attempts {
		kv, err := openOnce(ctx, js, cfg)
		if err == nil {
			return kv, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("open KV bucket %s: %w", cfg.Bucket, ctx.Err())
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open KV bucket %s: %w", cfg.Bucket, ctx.Err())
		case <-time.After(backoff(attempt)):
		}
	}

	return nil, fmt.Errorf("open KV bucket %s after %d attempts: %w", cfg.Bucket, attempts, lastErr)
}

func openOnce(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, cfg)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketExists) {
		return nil, err
	}

	kv, err = js.KeyValue(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket exists but failed to open: %w", err)
	}

	return kv, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is small
}
