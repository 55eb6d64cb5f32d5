package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hakkd/job-assigner/types"
)

// storeCall is one RecordStoreOperation invocation.
type storeCall struct {
	backend   string
	operation string
	success   bool
}

type recordingMetrics struct {
	mu    sync.Mutex
	calls []storeCall
}

func (m *recordingMetrics) RecordStoreOperation(backend, operation string, _ float64, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, storeCall{backend: backend, operation: operation, success: success})
}

func sampleSnapshot(round int64) types.Snapshot {
	return types.Snapshot{
		Round: round,
		Jobs: []types.JobState{
			{Name: "dishes", Capacity: 2, Occupancy: 1},
			{Name: "trash", Capacity: 2, Occupancy: 1},
		},
		People: []types.PersonState{
			{ID: 1, FirstName: "first name", LastName: "last name", CurrentJob: "dishes", History: []string{"trash"}},
			{ID: 2, FirstName: "first name", LastName: "last name", CurrentJob: "trash", History: []string{"dishes"}},
		},
	}
}

// exerciseRoundTrip checks behavior shared by every StateStore.
func exerciseRoundTrip(t *testing.T, st types.StateStore) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Load(ctx)
	require.ErrorIs(t, err, types.ErrStateNotFound)

	first := sampleSnapshot(2)
	require.NoError(t, st.Save(ctx, first))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, first, got)

	second := sampleSnapshot(3)
	second.People[0].History = append(second.People[0].History, "dishes")
	require.NoError(t, st.Save(ctx, second))

	got, err = st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, got)
}
