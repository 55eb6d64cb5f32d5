package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/hakkd/job-assigner/internal/kvutil"
	"github.com/hakkd/job-assigner/internal/natsutil"
	"github.com/hakkd/job-assigner/types"
)

// KV defaults.
const (
	DefaultBucket = "job-assigner"
	DefaultKey    = "engine"
)

// KVConfig configures a KV state store.
type KVConfig struct {
	// Bucket is created when missing (DefaultBucket if empty).
	Bucket string

	// Key holds the snapshot (DefaultKey if empty).
	Key string

	// History is the number of revisions the bucket keeps (1 if zero).
	History uint8

	// OpenAttempts bounds bucket creation retries (kvutil.DefaultAttempts if zero).
	OpenAttempts int
}

// KV stores the snapshot as a JSON value in a NATS JetStream KeyValue bucket.
//
// Writes are optimistic: Save only succeeds when the key is still at the
// revision this store last loaded or saved. Another writer moving the key in
// between makes Save fail with types.ErrStateConflict; Load again to pick up
// the newer state.
type KV struct {
	kv   jetstream.KeyValue
	key  string
	opts options

	mu       sync.Mutex
	revision uint64
}

var _ types.StateStore = (*KV)(nil)

// NewKV opens (or creates) the bucket and returns a store bound to one key.
//
// Parameters:
//   - ctx: Bounds bucket creation
//   - js: JetStream handle
//   - cfg: Bucket and key settings
//   - opts: Optional metrics and logger
//
// Returns:
//   - *KV: Store with no known revision; call Load before overwriting existing state
//   - error: Bucket creation failure
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	st, err := store.NewKV(ctx, js, store.KVConfig{Bucket: "chores"})
func NewKV(ctx context.Context, js jetstream.JetStream, cfg KVConfig, opts ...Option) (*KV, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.History == 0 {
		cfg.History = 1
	}

	kv, err := kvutil.OpenBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      cfg.Bucket,
		Description: "job-assigner engine state",
		History:     cfg.History,
	}, cfg.OpenAttempts)
	if err != nil {
		return nil, err
	}

	return &KV{kv: kv, key: cfg.Key, opts: buildOptions(opts)}, nil
}

// Revision returns the key revision last seen by Load or Save, 0 if none.
func (s *KV) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revision
}

// Save writes snap if the key has not moved since the last Load or Save.
//
// Returns:
//   - error: types.ErrStateConflict on a concurrent write
func (s *KV) Save(ctx context.Context, snap types.Snapshot) error {
	start := time.Now()

	return s.opts.observe(backendKV, "save", start, s.save(ctx, snap))
}

// Load reads the snapshot and remembers its revision.
//
// Returns:
//   - types.Snapshot: Decoded snapshot
//   - error: types.ErrStateNotFound if the key is missing or deleted
func (s *KV) Load(ctx context.Context) (types.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx)

	return snap, s.opts.observe(backendKV, "load", start, err)
}

func (s *KV) save(ctx context.Context, snap types.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rev uint64
	if s.revision == 0 {
		rev, err = s.kv.Create(ctx, s.key, data)
	} else {
		rev, err = s.kv.Update(ctx, s.key, data, s.revision)
	}
	if err != nil {
		if isRevisionMismatch(err) {
			return fmt.Errorf("key %q at revision %d: %w", s.key, s.revision, types.ErrStateConflict)
		}

		return wrapRemote("write key "+s.key, err)
	}
	s.revision = rev

	return nil
}

func (s *KV) load(ctx context.Context) (types.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		// Create also succeeds over a delete marker.
		s.revision = 0

		return types.Snapshot{}, fmt.Errorf("key %q: %w", s.key, types.ErrStateNotFound)
	}
	if err != nil {
		return types.Snapshot{}, wrapRemote("read key "+s.key, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(entry.Value(), &snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("decode key %q: %w: %w", s.key, types.ErrInvalidSnapshot, err)
	}
	s.revision = entry.Revision()

	return snap, nil
}

// wrapRemote adds ErrStoreUnavailable to errors caused by losing the server.
func wrapRemote(op string, err error) error {
	if natsutil.IsConnectivityError(err) {
		return fmt.Errorf("%s: %w: %w", op, types.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isRevisionMismatch reports whether a conditional write lost to another writer.
func isRevisionMismatch(err error) bool {
	if errors.Is(err, jetstream.ErrKeyExists) {
		return true
	}

	var apiErr *jetstream.APIError

	return errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
}

// Watch streams the snapshots saved under the key, starting with the current
// one if any. Deletes and undecodable values are skipped. The channel is
// closed when ctx is done.
//
// Example:
//
//	updates, err := st.Watch(ctx)
//	for snap := range updates {
//	    fmt.Println("round", snap.Round)
//	}
func (s *KV) Watch(ctx context.Context) (<-chan types.Snapshot, error) {
	w, err := s.kv.Watch(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("watch key %q: %w", s.key, err)
	}

	out := make(chan types.Snapshot)
	go func() {
		defer close(out)
		defer func() { _ = w.Stop() }()

		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-w.Updates():
				if !ok {
					return
				}
				// nil marks the end of the initial values.
				if entry == nil || entry.Operation() != jetstream.KeyValuePut {
					continue
				}

				var snap types.Snapshot
				if err := json.Unmarshal(entry.Value(), &snap); err != nil {
					s.opts.logger.Warn("skipping undecodable state", "key", s.key,
						"revision", entry.Revision(), "error", err)

					continue
				}

				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
