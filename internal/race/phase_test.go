package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

func TestCountdownDecrementsOncePerSecond(t *testing.T) {
	c := NewClock(3)
	require.Equal(t, types.PhaseCountdown, c.Phase())
	require.Equal(t, 3, c.Remaining())

	var seen []int
	starts := 0
	for range 16 {
		ticks, started := c.Advance(0.25)
		seen = append(seen, ticks...)
		if started {
			starts++
		}
	}

	assert.Equal(t, []int{2, 1, 0}, seen)
	assert.Equal(t, 1, starts)
	assert.Equal(t, types.PhaseRacing, c.Phase())
	assert.Equal(t, 0, c.Remaining())
}

func TestCountdownHoldsBelowOneSecond(t *testing.T) {
	c := NewClock(3)
	ticks, started := c.Advance(0.999)
	assert.Empty(t, ticks)
	assert.False(t, started)
	assert.Equal(t, 3, c.Remaining())
}

func TestCountdownAbsorbsFixedStepDrift(t *testing.T) {
	c := NewClock(1)
	started := false
	for range 60 {
		_, s := c.Advance(1.0 / 60.0)
		started = started || s
	}
	assert.True(t, started)
	assert.Equal(t, types.PhaseRacing, c.Phase())
}

func TestCountdownLargeStepCatchesUp(t *testing.T) {
	c := NewClock(3)
	ticks, started := c.Advance(5)
	assert.Equal(t, []int{2, 1, 0}, ticks)
	assert.True(t, started)
}

func TestZeroCountdownStartsRacing(t *testing.T) {
	c := NewClock(0)
	assert.Equal(t, types.PhaseRacing, c.Phase())
	ticks, started := c.Advance(1)
	assert.Empty(t, ticks)
	assert.False(t, started)
}

func TestFinishOnlyFromRacing(t *testing.T) {
	c := NewClock(1)
	assert.False(t, c.Finish(), "cannot finish during countdown")

	c.Advance(1)
	assert.True(t, c.Finish())
	assert.False(t, c.Finish(), "finish transition must happen once")
	assert.Equal(t, types.PhaseFinished, c.Phase())

	ticks, started := c.Advance(10)
	assert.Empty(t, ticks)
	assert.False(t, started)
}
