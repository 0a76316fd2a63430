package race

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// fakeBody records the last command applied to every wheel.
type fakeBody struct {
	pos    r3.Vec
	vel    r3.Vec
	rot    types.Rotator
	steer  [4]float64
	engine [4]float64
	brake  [4]float64
}

func (b *fakeBody) Position() r3.Vec { return b.pos }
func (b *fakeBody) Orientation() types.Rotator { return b.rot }
func (b *fakeBody) Velocity() r3.Vec { return b.vel }
func (b *fakeBody) SetVelocity(v r3.Vec) { b.vel = v }
func (b *fakeBody) SetSteering(w int, v float64) { b.steer[w] = v }
func (b *fakeBody) ApplyEngineForce(w int, f float64) { b.engine[w] = f }
func (b *fakeBody) SetBrake(w int, f float64) { b.brake[w] = f }

// stubController returns a fixed command and counts calls.
type stubController struct {
	cmd   Command
	calls int
}

func (c *stubController) Control(View) Command {
	c.calls++
	return c.cmd
}

// scriptedWorld teleports bodies along fixed paths, one point per step, and
// optionally forces a velocity after each move.
type scriptedWorld struct {
	paths    map[*fakeBody][]r3.Vec
	velocity map[*fakeBody]r3.Vec
	steps    int
}

func (w *scriptedWorld) Step(float64) {
	for b, path := range w.paths {
		if w.steps < len(path) {
			b.pos = path[w.steps]
		}
	}
	for b, v := range w.velocity {
		b.vel = v
	}
	w.steps++
}

type fixedInput struct{ c types.Controls }

func (f *fixedInput) Snapshot() types.Controls { return f.c }

// laps returns the checkpoint positions visited in order for n full laps.
func laps(track Track, n int) []r3.Vec {
	var out []r3.Vec
	for range n {
		out = append(out, track.Checkpoints...)
	}
	return out
}
