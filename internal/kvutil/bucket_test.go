package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	jatest "github.com/hakkd/job-assigner/testing"
)

func TestOpenBucket(t *testing.T) {
	srv := jatest.StartJetStream(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("creates missing bucket", func(t *testing.T) {
		kv, err := OpenBucket(ctx, srv.JS, jetstream.KeyValueConfig{Bucket: "fresh"}, 0)
		require.NoError(t, err)
		require.Equal(t, "fresh", kv.Bucket())
	})

	t.Run("opens existing bucket", func(t *testing.T) {
		first, err := OpenBucket(ctx, srv.JS, jetstream.KeyValueConfig{Bucket: "shared"}, 0)
		require.NoError(t, err)
		_, err = first.Put(ctx, "state", []byte("kept"))
		require.NoError(t, err)

		// A different config makes CreateKeyValue report an existing bucket.
		second, err := OpenBucket(ctx, srv.JS, jetstream.KeyValueConfig{Bucket: "shared", History: 5}, 0)
		require.NoError(t, err)

		entry, err := second.Get(ctx, "state")
		require.NoError(t, err)
		require.Equal(t, []byte("kept"), entry.Value())
	})

	t.Run("concurrent openers share one bucket", func(t *testing.T) {
		const openers = 5

		var wg sync.WaitGroup
		errs := make(chan error, openers)
		for range openers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := OpenBucket(ctx, srv.JS, jetstream.KeyValueConfig{Bucket: "race", History: 1}, 0)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, stop := context.WithCancel(context.Background())
		stop()

		_, err := OpenBucket(canceled, srv.JS, jetstream.KeyValueConfig{Bucket: "never"}, 3)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoff(t *testing.T) {
	require.Equal(t, 10*time.Millisecond, backoff(0))
	require.Equal(t, 20*time.Millisecond, backoff(1))
	require.Equal(t, 40*time.Millisecond, backoff(2))
}
