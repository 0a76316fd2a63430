package race

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// Command is one step's control output for a vehicle.
type Command struct {
	Steering    float64
	EngineForce float64
	BrakeForce  float64
	// SpeedLimit caps the body's speed after integration, in world units per
	// second. Zero means no cap.
	SpeedLimit float64
}

// View is the world state a controller sees for its own vehicle.
type View struct {
	Position r3.Vec
	Forward  r3.Vec
	Velocity r3.Vec
	Dt       float64
}

// Controller produces a command for one vehicle each step.
type Controller interface {
	Control(v View) Command
}

// InputSource delivers the current key-state snapshot.
type InputSource interface {
	Snapshot() types.Controls
}

// Player maps sampled input onto commands and owns the nitro resource.
type Player struct {
	tuning Tuning
	input  InputSource
	nitro  float64
}

// NewPlayer returns a player controller with a full nitro tank.
func NewPlayer(t Tuning, in InputSource) *Player {
	return &Player{tuning: t, input: in, nitro: t.MaxNitro}
}

// Nitro returns the remaining boost resource.
func (p *Player) Nitro() float64 { return p.nitro }

// Control implements Controller.
func (p *Player) Control(v View) Command {
	var in types.Controls
	if p.input != nil {
		in = p.input.Snapshot()
	}
	t := p.tuning
	boosting := in.Forward && in.Boost && p.nitro > 0

	var cmd Command
	switch {
	case boosting:
		cmd.EngineForce = t.Acceleration * t.NitroBoost
	case in.Forward:
		cmd.EngineForce = t.Acceleration
	case in.Backward:
		cmd.EngineForce = -t.Acceleration / 2
	}

	switch {
	case in.Left:
		cmd.Steering = t.SteeringSensitivity
	case in.Right:
		cmd.Steering = -t.SteeringSensitivity
	}

	if in.Brake {
		cmd.BrakeForce = t.BrakeForce
	}

	limit := t.MaxSpeed
	if boosting {
		limit *= t.NitroBoost
		if t.NitroDuration > 0 {
			p.nitro -= t.MaxNitro / t.NitroDuration * v.Dt
		}
		if p.nitro < 0 {
			p.nitro = 0
		}
	}
	cmd.SpeedLimit = kmhToMS(limit)
	return cmd
}

// AI follows the waypoint loop with a reactive pursuit controller.
type AI struct {
	tuning    Tuning
	waypoints []r3.Vec
	index     int
}

// NewAI returns an AI controller heading for the first waypoint.
func NewAI(t Tuning, waypoints []r3.Vec) *AI {
	return &AI{tuning: t, waypoints: waypoints}
}

// Waypoint returns the index of the active waypoint.
func (a *AI) Waypoint() int { return a.index }

// Control implements Controller.
func (a *AI) Control(v View) Command {
	if len(a.waypoints) == 0 {
		return Command{BrakeForce: a.tuning.AIBrakeForce}
	}
	t := a.tuning
	a.index = wrap(a.index, len(a.waypoints))
	if r3.Norm(r3.Sub(v.Position, a.waypoints[a.index])) < t.WaypointRadius {
		a.index = (a.index + 1) % len(a.waypoints)
	}
	target := a.waypoints[a.index]

	var cmd Command
	cmd.Steering = steerTowards(v.Forward, r3.Sub(target, v.Position), t.AISteerGain) * t.AISteerScale

	// Even waypoints sit at the end of a straight, odd ones lead into a turn.
	targetSpeed := t.MaxSpeed * t.AIStraightSpeedFactor
	if a.index%2 == 1 {
		targetSpeed = t.MaxSpeed * t.AITurnSpeedFactor
	}
	if msToKMH(r3.Norm(v.Velocity)) < targetSpeed {
		cmd.EngineForce = t.Acceleration * t.AIThrottleFactor
	} else {
		cmd.BrakeForce = t.AIBrakeForce
	}
	return cmd
}

// steerTowards returns clamp(angle*direction*gain, -1, 1) where angle is the
// unsigned angle between heading and the flattened target direction and the
// direction comes from the vertical component of their cross product.
func steerTowards(heading, toTarget r3.Vec, gain float64) float64 {
	toTarget.Y = 0
	heading.Y = 0
	if r3.Norm(toTarget) == 0 || r3.Norm(heading) == 0 {
		return 0
	}
	desired := r3.Unit(toTarget)
	heading = r3.Unit(heading)
	angle := math.Acos(clamp(r3.Dot(heading, desired), -1, 1))
	dir := -1.0
	if r3.Cross(heading, desired).Y > 0 {
		dir = 1
	}
	return clamp(angle*dir*gain, -1, 1)
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
