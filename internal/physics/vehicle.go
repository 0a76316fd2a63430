package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

const wheelCount = 4

var up = r3.Vec{Y: 1}

// Params tunes the kinematic vehicle model.
type Params struct {
	Mass          float64
	DriveGain     float64 // engine force to newtons
	BrakeGain     float64 // brake force to newtons
	Wheelbase     float64
	MaxSteer      float64 // radians of wheel lock
	LateralGrip   float64 // fraction of lateral speed kept per step
	CoastFriction float64 // fraction of forward speed kept per undriven step
	RideHeight    float64
	WallBounce    float64
	HalfX         float64 // outer bounds, centred on the origin
	HalfZ         float64
}

// DefaultParams returns a model tuned for the oval circuit.
func DefaultParams() Params {
	return Params{
		Mass:          150,
		DriveGain:     12,
		BrakeGain:     12,
		Wheelbase:     2.8,
		MaxSteer:      0.6,
		LateralGrip:   0.78,
		CoastFriction: 0.996,
		RideHeight:    0.5,
		WallBounce:    0.3,
		HalfX:         80,
		HalfZ:         130,
	}
}

// Vehicle is a four-wheel body: wheels 0 and 1 steer, 2 and 3 drive and
// brake. Commands persist until changed.
type Vehicle struct {
	id       string
	params   Params
	position r3.Vec
	velocity r3.Vec
	yaw      float64

	steering [wheelCount]float64
	engine   [wheelCount]float64
	brake    [wheelCount]float64
}

// NewVehicle places a body at pos facing yaw radians.
func NewVehicle(id string, p Params, pos r3.Vec, yaw float64) *Vehicle {
	pos.Y = p.RideHeight
	return &Vehicle{id: id, params: p, position: pos, yaw: normalizeSignedRad(yaw)}
}

func (v *Vehicle) ID() string { return v.id }

func (v *Vehicle) Position() r3.Vec { return v.position }

func (v *Vehicle) Velocity() r3.Vec { return v.velocity }

func (v *Vehicle) SetVelocity(vel r3.Vec) { v.velocity = vel }

// Orientation returns Euler angles in radians; the model only yaws.
func (v *Vehicle) Orientation() types.Rotator {
	return types.Rotator{Yaw: v.yaw}
}

func (v *Vehicle) SetSteering(wheel int, value float64) {
	if validWheel(wheel) {
		v.steering[wheel] = value
	}
}

func (v *Vehicle) ApplyEngineForce(wheel int, force float64) {
	if validWheel(wheel) {
		v.engine[wheel] = force
	}
}

func (v *Vehicle) SetBrake(wheel int, force float64) {
	if validWheel(wheel) {
		v.brake[wheel] = math.Abs(force)
	}
}

// SteeringAngle returns the effective front wheel angle.
func (v *Vehicle) SteeringAngle() float64 {
	return clamp((v.steering[0]+v.steering[1])/2, -v.params.MaxSteer, v.params.MaxSteer)
}

// EngineForce returns the summed rear-wheel engine force.
func (v *Vehicle) EngineForce() float64 { return v.engine[2] + v.engine[3] }

// BrakeForce returns the summed rear-wheel brake force.
func (v *Vehicle) BrakeForce() float64 { return v.brake[2] + v.brake[3] }

func (v *Vehicle) integrate(dt float64) {
	p := v.params
	forward, right := v.axes()

	forwardSpeed := r3.Dot(v.velocity, forward)
	lateralSpeed := r3.Dot(v.velocity, right)

	if p.Wheelbase > 0 {
		v.yaw += forwardSpeed * math.Tan(v.SteeringAngle()) / p.Wheelbase * dt
		v.yaw = normalizeSignedRad(v.yaw)
	}
	forward, right = v.axes()

	drive := 0.0
	brake := 0.0
	if p.Mass > 0 {
		drive = v.EngineForce() * p.DriveGain / p.Mass
		brake = v.BrakeForce() * p.BrakeGain / p.Mass
	}
	forwardSpeed += drive * dt

	// Brakes slow towards standstill and never reverse the car.
	if slow := brake * dt; slow >= math.Abs(forwardSpeed) {
		forwardSpeed = 0
	} else {
		forwardSpeed -= math.Copysign(slow, forwardSpeed)
	}
	if drive == 0 {
		forwardSpeed *= p.CoastFriction
	}
	lateralSpeed *= p.LateralGrip

	v.velocity = r3.Add(r3.Scale(forwardSpeed, forward), r3.Scale(lateralSpeed, right))
	v.velocity.Y = 0
	v.position = r3.Add(v.position, r3.Scale(dt, v.velocity))
	v.position.Y = p.RideHeight
	v.clampBounds()
}

// axes returns the forward and right unit vectors for the current yaw.
func (v *Vehicle) axes() (r3.Vec, r3.Vec) {
	forward := r3.NewRotation(v.yaw, up).Rotate(r3.Vec{Z: 1})
	return forward, r3.Cross(forward, up)
}

func (v *Vehicle) clampBounds() {
	p := v.params
	if p.HalfX <= 0 || p.HalfZ <= 0 {
		return
	}
	if v.position.X < -p.HalfX {
		v.position.X = -p.HalfX
		v.velocity.X *= -p.WallBounce
	}
	if v.position.X > p.HalfX {
		v.position.X = p.HalfX
		v.velocity.X *= -p.WallBounce
	}
	if v.position.Z < -p.HalfZ {
		v.position.Z = -p.HalfZ
		v.velocity.Z *= -p.WallBounce
	}
	if v.position.Z > p.HalfZ {
		v.position.Z = p.HalfZ
		v.velocity.Z *= -p.WallBounce
	}
}

func validWheel(i int) bool { return i >= 0 && i < wheelCount }

func normalizeSignedRad(r float64) float64 {
	for r > math.Pi {
		r -= 2 * math.Pi
	}
	for r < -math.Pi {
		r += 2 * math.Pi
	}
	return r
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
