package race

import (
	"sort"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// Progress is the monotonic race-advancement measure used for ranking.
func Progress(v types.VehicleState, checkpointCount int) int {
	return v.Lap*checkpointCount + v.Checkpoint
}

// Standings returns a copy of vehicles ordered by descending progress. Equal
// progress keeps input order.
func Standings(vehicles []types.VehicleState, checkpointCount int) []types.VehicleState {
	out := make([]types.VehicleState, len(vehicles))
	copy(out, vehicles)
	sort.SliceStable(out, func(i, j int) bool {
		return Progress(out[i], checkpointCount) > Progress(out[j], checkpointCount)
	})
	return out
}

// Rank returns the 1-based position of id in the standings, or 0 if absent.
func Rank(vehicles []types.VehicleState, checkpointCount int, id string) int {
	for i, v := range Standings(vehicles, checkpointCount) {
		if v.ID == id {
			return i + 1
		}
	}
	return 0
}
