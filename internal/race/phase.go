package race

import "github.com/abhishek9871/3D-Racing-Game/internal/shared/types"

// tickEpsilon absorbs float drift when fixed steps sum to a whole second.
const tickEpsilon = 1e-9

// Clock owns race phase transitions. The countdown is driven by simulation
// time passed to Advance.
type Clock struct {
	phase     types.Phase
	remaining int
	carry     float64
}

// NewClock starts a countdown of the given whole seconds. A non-positive
// countdown starts the race immediately.
func NewClock(seconds int) *Clock {
	if seconds <= 0 {
		return &Clock{phase: types.PhaseRacing}
	}
	return &Clock{phase: types.PhaseCountdown, remaining: seconds}
}

// Phase returns the current phase.
func (c *Clock) Phase() types.Phase { return c.phase }

// Remaining returns the countdown seconds left.
func (c *Clock) Remaining() int { return c.remaining }

// Advance moves the countdown by dt seconds. It returns the countdown values
// entered during this call and whether the race started.
func (c *Clock) Advance(dt float64) (ticks []int, started bool) {
	if c.phase != types.PhaseCountdown || dt <= 0 {
		return nil, false
	}
	c.carry += dt
	for c.carry >= 1-tickEpsilon && c.remaining > 0 {
		c.carry--
		c.remaining--
		ticks = append(ticks, c.remaining)
	}
	if c.remaining == 0 {
		c.phase = types.PhaseRacing
		c.carry = 0
		return ticks, true
	}
	return ticks, false
}

// Finish moves Racing to Finished. It reports true only for that transition.
func (c *Clock) Finish() bool {
	if c.phase != types.PhaseRacing {
		return false
	}
	c.phase = types.PhaseFinished
	return true
}
