package race

import "gonum.org/v1/gonum/spatial/r3"

// Tracker advances one vehicle's checkpoint and lap counters. Only the
// checkpoint immediately after the last one passed is ever tested, so
// checkpoints can't be skipped.
type Tracker struct {
	checkpoints []r3.Vec
	radius      float64
	lap         int
	checkpoint  int
}

// NewTracker starts on lap 1 with the start/finish line as the last
// checkpoint passed, so the first forward crossing is checkpoint 0.
func NewTracker(checkpoints []r3.Vec, radius float64) *Tracker {
	return &Tracker{
		checkpoints: checkpoints,
		radius:      radius,
		lap:         1,
		checkpoint:  len(checkpoints) - 1,
	}
}

// Lap returns the raw lap counter. It exceeds the race's lap total once the
// vehicle has finished.
func (t *Tracker) Lap() int { return t.lap }

// Checkpoint returns the index of the last checkpoint passed.
func (t *Tracker) Checkpoint() int { return t.checkpoint }

// Next returns the index of the checkpoint being approached.
func (t *Tracker) Next() int {
	return wrap(t.checkpoint+1, len(t.checkpoints))
}

// Update tests pos against the next checkpoint. It reports whether the
// checkpoint was passed and whether that completed a lap.
func (t *Tracker) Update(pos r3.Vec) (passed, lapped bool) {
	n := len(t.checkpoints)
	if n == 0 {
		return false, false
	}
	next := t.Next()
	if r3.Norm(r3.Sub(pos, t.checkpoints[next])) >= t.radius {
		return false, false
	}
	t.checkpoint = next
	if next == n-1 {
		t.lap++
		return true, true
	}
	return true, false
}

// DisplayLap clamps a lap counter to totalLaps+1 for publishing.
func DisplayLap(lap, totalLaps int) int {
	if lap > totalLaps+1 {
		return totalLaps + 1
	}
	return lap
}
