package race

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	TrackWidth     = 20.0
	TrackRadius    = 60.0
	StraightLength = 100.0
	RideHeight     = 0.5

	PlayerID    = "player"
	PlayerColor = "#007bff"
)

var aiColors = []string{"#ff4040", "#40ff40", "#4040ff"}

// Track is the fixed circuit layout. Checkpoints are lap-progress triggers
// in driving order; the last one is the start/finish line. Waypoints are
// coarse navigation targets used only by AI drivers.
type Track struct {
	Checkpoints []r3.Vec
	Waypoints   []r3.Vec
}

// DefaultTrack returns the oval circuit.
func DefaultTrack() Track {
	return Track{
		Checkpoints: []r3.Vec{
			{X: 0, Y: 0, Z: StraightLength / 2},
			{X: TrackRadius + TrackWidth/2, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: -StraightLength / 2},
			{X: -TrackRadius - TrackWidth/2, Y: 0, Z: 0},
		},
		Waypoints: []r3.Vec{
			{X: TrackRadius, Y: 0, Z: StraightLength / 2},
			{X: TrackRadius, Y: 0, Z: -StraightLength / 2},
			{X: -TrackRadius, Y: 0, Z: -StraightLength / 2},
			{X: -TrackRadius, Y: 0, Z: StraightLength / 2},
		},
	}
}

// HalfExtents returns the X and Z half sizes of the circuit's outer wall box.
func (t Track) HalfExtents() (float64, float64) {
	return TrackRadius + TrackWidth, StraightLength/2 + TrackRadius + TrackWidth
}

// Slot is a starting grid position.
type Slot struct {
	ID       string
	Position r3.Vec
	Yaw      float64
	Color    string
	IsPlayer bool
}

// StartingGrid places the player first, then aiCount AI drivers behind and to
// the side. Every slot faces +Z.
func StartingGrid(aiCount int) []Slot {
	slots := make([]Slot, 0, aiCount+1)
	slots = append(slots, Slot{
		ID:       PlayerID,
		Position: r3.Vec{X: 0, Y: RideHeight, Z: -5},
		Color:    PlayerColor,
		IsPlayer: true,
	})
	for i := range aiCount {
		slots = append(slots, Slot{
			ID:       AIID(i),
			Position: r3.Vec{X: 5 + float64(i)*5, Y: RideHeight, Z: -10},
			Color:    aiColors[i%len(aiColors)],
		})
	}
	return slots
}

// AIID returns the stable id of the i-th AI driver.
func AIID(i int) string {
	return "ai-" + strconv.Itoa(i)
}
