package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

func TestStoreReplaceAndSnapshotIsolation(t *testing.T) {
	s := NewStore("r1", 3, 3, 100, []types.VehicleState{
		{ID: PlayerID, IsPlayer: true, Lap: 1},
		{ID: "ai-0", Lap: 1},
	})

	assert.True(t, s.Replace(types.VehicleState{ID: "ai-0", Lap: 2, Speed: 120}))
	assert.False(t, s.Replace(types.VehicleState{ID: "ghost"}))

	v, ok := s.Vehicle("ai-0")
	require.True(t, ok)
	assert.Equal(t, 2, v.Lap)
	assert.Equal(t, 120, v.Speed)

	snap := s.Snapshot()
	snap.Vehicles[0].Lap = 99
	snap.Events = append(snap.Events, types.RaceEvent{Type: "x"})

	fresh := s.Snapshot()
	assert.Equal(t, 1, fresh.Vehicles[0].Lap)
	assert.Empty(t, fresh.Events)
	assert.Len(t, fresh.Vehicles, 2)
}

func TestStoreCommitReplacesEvents(t *testing.T) {
	s := NewStore("r1", 3, 0, 50, nil)
	assert.Equal(t, types.PhaseRacing, s.Snapshot().Phase)

	s.commit(1, types.PhaseRacing, 0, 40, 1, []types.RaceEvent{{Type: "checkpoint"}})
	s.commit(2, types.PhaseFinished, 0, 30, 2, nil)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Tick)
	assert.Equal(t, types.PhaseFinished, snap.Phase)
	assert.Equal(t, 30.0, snap.Nitro)
	assert.Equal(t, 2, snap.PlayerRank)
	assert.Empty(t, snap.Events)
}
