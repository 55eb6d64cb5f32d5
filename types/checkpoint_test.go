package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpoint_Rollback(t *testing.T) {
	dishes := mustJob(t, "dishes", 2)
	trash := mustJob(t, "trash", 2)
	a := NewPerson(1, "", "")
	b := NewPerson(2, "", "")
	require.NoError(t, a.AssignJob(nil, dishes))

	people := []*Person{a, b}
	jobs := []*Job{dishes, trash}
	cp := NewCheckpoint(people, jobs)

	require.NoError(t, a.AssignJob(dishes, trash))
	require.NoError(t, b.AssignJob(nil, dishes))

	cp.Rollback()

	require.Equal(t, "dishes", a.CurrentJob())
	require.Empty(t, a.History())
	require.False(t, b.Assigned())
	require.Equal(t, 1, dishes.Occupancy())
	require.Equal(t, 0, trash.Occupancy())

	t.Run("rollback can be applied twice", func(t *testing.T) {
		require.NoError(t, b.AssignJob(nil, trash))
		cp.Rollback()
		require.False(t, b.Assigned())
		require.Equal(t, 0, trash.Occupancy())
	})
}
