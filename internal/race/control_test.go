package race

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

func playerView() View {
	return View{Forward: r3.Vec{Z: 1}, Dt: 0.1}
}

func TestPlayerEngineMapping(t *testing.T) {
	tun := DefaultTuning()
	cases := []struct {
		name   string
		in     types.Controls
		engine float64
	}{
		{"idle", types.Controls{}, 0},
		{"forward", types.Controls{Forward: true}, tun.Acceleration},
		{"boost", types.Controls{Forward: true, Boost: true}, tun.Acceleration * tun.NitroBoost},
		{"backward", types.Controls{Backward: true}, -tun.Acceleration / 2},
		{"backward with boost", types.Controls{Backward: true, Boost: true}, -tun.Acceleration / 2},
		{"forward wins over backward", types.Controls{Forward: true, Backward: true}, tun.Acceleration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(tun, &fixedInput{c: tc.in})
			cmd := p.Control(playerView())
			assert.InDelta(t, tc.engine, cmd.EngineForce, 1e-9)
		})
	}
}

func TestPlayerSteeringAndBrake(t *testing.T) {
	tun := DefaultTuning()
	in := &fixedInput{}
	p := NewPlayer(tun, in)

	in.c = types.Controls{Left: true}
	assert.Equal(t, tun.SteeringSensitivity, p.Control(playerView()).Steering)

	in.c = types.Controls{Right: true}
	assert.Equal(t, -tun.SteeringSensitivity, p.Control(playerView()).Steering)

	in.c = types.Controls{Left: true, Right: true}
	assert.Equal(t, tun.SteeringSensitivity, p.Control(playerView()).Steering)

	in.c = types.Controls{}
	cmd := p.Control(playerView())
	assert.Zero(t, cmd.Steering)
	assert.Zero(t, cmd.BrakeForce)

	in.c = types.Controls{Brake: true}
	assert.Equal(t, tun.BrakeForce, p.Control(playerView()).BrakeForce)
}

func TestPlayerSpeedLimitFollowsBoost(t *testing.T) {
	tun := DefaultTuning()
	in := &fixedInput{c: types.Controls{Forward: true}}
	p := NewPlayer(tun, in)

	assert.InDelta(t, tun.MaxSpeed/3.6, p.Control(playerView()).SpeedLimit, 1e-9)

	in.c.Boost = true
	assert.InDelta(t, tun.MaxSpeed*tun.NitroBoost/3.6, p.Control(playerView()).SpeedLimit, 1e-9)
}

func TestNitroDrainsAndFloorsAtZero(t *testing.T) {
	tun := DefaultTuning()
	p := NewPlayer(tun, &fixedInput{c: types.Controls{Forward: true, Boost: true}})
	require.Equal(t, tun.MaxNitro, p.Nitro())

	p.Control(View{Dt: 1})
	assert.InDelta(t, tun.MaxNitro-tun.MaxNitro/tun.NitroDuration, p.Nitro(), 1e-9)

	for range 100 {
		p.Control(View{Dt: 0.5})
		require.GreaterOrEqual(t, p.Nitro(), 0.0)
	}
	assert.Zero(t, p.Nitro())

	cmd := p.Control(View{Dt: 0.5})
	assert.Equal(t, tun.Acceleration, cmd.EngineForce, "empty tank falls back to normal throttle")
	assert.InDelta(t, tun.MaxSpeed/3.6, cmd.SpeedLimit, 1e-9)
	assert.Zero(t, p.Nitro())
}

func TestNitroUnchangedWithoutForward(t *testing.T) {
	tun := DefaultTuning()
	p := NewPlayer(tun, &fixedInput{c: types.Controls{Boost: true}})
	for range 50 {
		p.Control(View{Dt: 0.1})
	}
	assert.Equal(t, tun.MaxNitro, p.Nitro())
}

func TestPlayerWithoutInput(t *testing.T) {
	p := NewPlayer(DefaultTuning(), nil)
	cmd := p.Control(playerView())
	assert.Zero(t, cmd.EngineForce)
	assert.Zero(t, cmd.Steering)
}

func TestAIAdvancesWaypointWithinRadius(t *testing.T) {
	track := DefaultTrack()
	ai := NewAI(DefaultTuning(), track.Waypoints)
	require.Equal(t, 0, ai.Waypoint())

	ai.Control(View{Position: r3.Vec{X: 0, Z: 0}, Forward: r3.Vec{Z: 1}})
	assert.Equal(t, 0, ai.Waypoint(), "far from the waypoint")

	wp := track.Waypoints[0]
	ai.Control(View{Position: r3.Vec{X: wp.X, Z: wp.Z - 24}, Forward: r3.Vec{Z: 1}})
	assert.Equal(t, 1, ai.Waypoint())

	// Wraps back to the first waypoint after the last.
	last := track.Waypoints[len(track.Waypoints)-1]
	ai.index = len(track.Waypoints) - 1
	ai.Control(View{Position: last, Forward: r3.Vec{Z: 1}})
	assert.Equal(t, 0, ai.Waypoint())
}

func TestAISteersTowardsWaypoint(t *testing.T) {
	tun := DefaultTuning()
	forward := r3.Vec{Z: 1}

	left := NewAI(tun, []r3.Vec{{X: 100}})
	cmd := left.Control(View{Forward: forward})
	assert.InDelta(t, math.Pi/2*tun.AISteerGain*tun.AISteerScale, cmd.Steering, 1e-9)

	right := NewAI(tun, []r3.Vec{{X: -100}})
	cmd = right.Control(View{Forward: forward})
	assert.InDelta(t, -math.Pi/2*tun.AISteerGain*tun.AISteerScale, cmd.Steering, 1e-9)

	ahead := NewAI(tun, []r3.Vec{{Z: 100}})
	cmd = ahead.Control(View{Forward: forward})
	assert.InDelta(t, 0, cmd.Steering, 1e-9)

	// Directly behind saturates at full lock.
	behind := NewAI(tun, []r3.Vec{{X: -0.001, Z: -100}})
	cmd = behind.Control(View{Forward: forward})
	assert.InDelta(t, -tun.AISteerScale, cmd.Steering, 1e-9)
}

func TestAISpeedTargetByWaypointParity(t *testing.T) {
	tun := DefaultTuning()
	far := []r3.Vec{{Z: 1000}, {Z: 2000}}
	view := func(kmh float64) View {
		return View{Forward: r3.Vec{Z: 1}, Velocity: r3.Vec{Z: kmh / 3.6}}
	}

	// Even index: straight, target 90% of max.
	ai := NewAI(tun, far)
	cmd := ai.Control(view(200))
	assert.InDelta(t, tun.Acceleration*tun.AIThrottleFactor, cmd.EngineForce, 1e-9)
	assert.Zero(t, cmd.BrakeForce)

	cmd = ai.Control(view(230))
	assert.Zero(t, cmd.EngineForce)
	assert.Equal(t, tun.AIBrakeForce, cmd.BrakeForce)

	// Odd index: approaching a turn, target 70% of max.
	ai.index = 1
	cmd = ai.Control(view(180))
	assert.Zero(t, cmd.EngineForce)
	assert.Equal(t, tun.AIBrakeForce, cmd.BrakeForce)

	cmd = ai.Control(view(170))
	assert.InDelta(t, tun.Acceleration*tun.AIThrottleFactor, cmd.EngineForce, 1e-9)
}

func TestAIWithoutWaypointsBrakes(t *testing.T) {
	ai := NewAI(DefaultTuning(), nil)
	cmd := ai.Control(View{Forward: r3.Vec{Z: 1}})
	assert.Zero(t, cmd.EngineForce)
	assert.Positive(t, cmd.BrakeForce)
}

func TestForwardFollowsYaw(t *testing.T) {
	f := Forward(types.Rotator{})
	assert.InDelta(t, 1, f.Z, 1e-9)

	f = Forward(types.Rotator{Yaw: math.Pi / 2})
	assert.InDelta(t, 1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)
}
