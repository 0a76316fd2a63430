package physics

import "gonum.org/v1/gonum/spatial/r3"

// World owns every vehicle body of one race and integrates them together.
// It is not safe for concurrent use; the race driver serialises access.
type World struct {
	params Params
	bodies []*Vehicle
	byID   map[string]*Vehicle
}

// NewWorld creates an empty world using p for every body it adds.
func NewWorld(p Params) *World {
	return &World{params: p, byID: make(map[string]*Vehicle)}
}

// AddVehicle creates and registers a body. An existing id is replaced.
func (w *World) AddVehicle(id string, pos r3.Vec, yaw float64) *Vehicle {
	v := NewVehicle(id, w.params, pos, yaw)
	if old, ok := w.byID[id]; ok {
		for i, b := range w.bodies {
			if b == old {
				w.bodies[i] = v
			}
		}
	} else {
		w.bodies = append(w.bodies, v)
	}
	w.byID[id] = v
	return v
}

// Vehicle returns the body registered under id.
func (w *World) Vehicle(id string) (*Vehicle, bool) {
	v, ok := w.byID[id]
	return v, ok
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Step advances every body by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrate(dt)
	}
}
