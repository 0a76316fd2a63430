package race

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// Wheel indices. The front pair steers, the rear pair drives and brakes.
const (
	WheelFrontLeft = iota
	WheelFrontRight
	WheelRearLeft
	WheelRearRight
)

var up = r3.Vec{Y: 1}

// Body is the physics body a vehicle is attached to.
type Body interface {
	Position() r3.Vec
	Orientation() types.Rotator
	Velocity() r3.Vec
	SetVelocity(v r3.Vec)
	SetSteering(wheel int, value float64)
	ApplyEngineForce(wheel int, force float64)
	SetBrake(wheel int, force float64)
}

// Integrator advances every body it owns by dt seconds.
type Integrator interface {
	Step(dt float64)
}

// Forward returns the unit heading for an orientation. Local forward is +Z.
func Forward(rot types.Rotator) r3.Vec {
	return r3.NewRotation(rot.Yaw, up).Rotate(r3.Vec{Z: 1})
}

func applyCommand(b Body, cmd Command) {
	b.SetSteering(WheelFrontLeft, cmd.Steering)
	b.SetSteering(WheelFrontRight, cmd.Steering)
	b.ApplyEngineForce(WheelRearLeft, cmd.EngineForce)
	b.ApplyEngineForce(WheelRearRight, cmd.EngineForce)
	b.SetBrake(WheelRearLeft, cmd.BrakeForce)
	b.SetBrake(WheelRearRight, cmd.BrakeForce)
}

// hold keeps a body parked while the race is not running.
func hold(b Body, brake float64) {
	b.ApplyEngineForce(WheelRearLeft, 0)
	b.ApplyEngineForce(WheelRearRight, 0)
	b.SetBrake(WheelRearLeft, brake)
	b.SetBrake(WheelRearRight, brake)
}

// clampSpeed rescales the body's velocity down to limit, preserving direction.
func clampSpeed(b Body, limit float64) {
	v := b.Velocity()
	speed := r3.Norm(v)
	if speed <= limit || speed == 0 || math.IsNaN(speed) {
		return
	}
	b.SetVelocity(r3.Scale(limit/speed, v))
}
