package race

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// Entrant attaches a controller and a physics body to a grid slot. A nil Body
// means the vehicle is not ready yet and is skipped each step.
type Entrant struct {
	Slot       Slot
	Body       Body
	Controller Controller
}

// FinishFunc receives the player's final 1-based rank, or nil when unknown.
type FinishFunc func(rank *int)

type vehicle struct {
	id         string
	color      string
	isPlayer   bool
	body       Body
	controller Controller
	tracker    *Tracker
	limit      float64
}

// Race drives one race instance: phases, control, physics, tracking and
// ranking, one fixed step at a time.
type Race struct {
	mu       sync.Mutex
	id       string
	tuning   Tuning
	track    Track
	clock    *Clock
	store    *Store
	world    Integrator
	vehicles []*vehicle
	player   *vehicle
	onFinish FinishFunc
	nitro    float64

	tick     uint64
	elapsed  float64
	finished bool
	closed   bool
}

// New creates a race in the countdown phase. world may be nil when bodies
// integrate themselves.
func New(id string, t Tuning, track Track, world Integrator, entrants []Entrant, onFinish FinishFunc) *Race {
	r := &Race{
		id:       id,
		tuning:   t,
		track:    track,
		clock:    NewClock(t.CountdownSeconds),
		world:    world,
		onFinish: onFinish,
	}

	nitro := t.MaxNitro
	states := make([]types.VehicleState, 0, len(entrants))
	for _, e := range entrants {
		v := &vehicle{
			id:         e.Slot.ID,
			color:      e.Slot.Color,
			isPlayer:   e.Slot.IsPlayer,
			body:       e.Body,
			controller: e.Controller,
			tracker:    NewTracker(track.Checkpoints, t.CheckpointRadius),
		}
		r.vehicles = append(r.vehicles, v)
		if v.isPlayer && r.player == nil {
			r.player = v
			if src, ok := e.Controller.(nitroSource); ok {
				nitro = src.Nitro()
			}
		}
		state := types.VehicleState{
			ID:         v.id,
			Position:   types.Vec3From(e.Slot.Position),
			Rotation:   types.Rotator{Yaw: e.Slot.Yaw},
			Lap:        v.tracker.Lap(),
			Checkpoint: v.tracker.Checkpoint(),
			IsPlayer:   v.isPlayer,
			Color:      v.color,
		}
		states = append(states, state)
	}
	r.nitro = nitro
	r.store = NewStore(id, t.TotalLaps, r.clock.Remaining(), nitro, states)
	return r
}

// ID returns the race instance id.
func (r *Race) ID() string { return r.id }

// Store returns the aggregate consumed by presentation.
func (r *Race) Store() *Store { return r.store }

// Snapshot is shorthand for Store().Snapshot().
func (r *Race) Snapshot() types.RaceState { return r.store.Snapshot() }

// Close stops the race. Later steps are no-ops and the finish callback can no
// longer fire.
func (r *Race) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Step advances the race by dt seconds and returns the events it produced.
func (r *Race) Step(dt float64) []types.RaceEvent {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}

	r.tick++
	r.elapsed += dt
	var events []types.RaceEvent

	ticks, started := r.clock.Advance(dt)
	for _, n := range ticks {
		if n > 0 {
			events = append(events, r.event("countdown", "", n))
		}
	}
	if started {
		events = append(events, r.event("go", "", 0))
	}

	racing := r.clock.Phase() == types.PhaseRacing
	for _, v := range r.vehicles {
		if v.body == nil {
			continue
		}
		v.limit = 0
		if !racing || v.controller == nil {
			hold(v.body, r.tuning.HoldBrake)
			continue
		}
		cmd := v.controller.Control(View{
			Position: v.body.Position(),
			Forward:  Forward(v.body.Orientation()),
			Velocity: v.body.Velocity(),
			Dt:       dt,
		})
		v.limit = cmd.SpeedLimit
		applyCommand(v.body, cmd)
	}

	if r.world != nil {
		r.world.Step(dt)
	}

	for _, v := range r.vehicles {
		if v.body == nil {
			continue
		}
		if v.limit > 0 {
			clampSpeed(v.body, v.limit)
		}
		pos := v.body.Position()
		if racing {
			passed, lapped := v.tracker.Update(pos)
			if passed {
				events = append(events, r.event("checkpoint", v.id, v.tracker.Checkpoint()))
			}
			if lapped {
				events = append(events, r.event("lap", v.id, DisplayLap(v.tracker.Lap(), r.tuning.TotalLaps)))
			}
		}
		r.store.Replace(r.publish(v, pos))
	}

	checkpoints := len(r.track.Checkpoints)
	rank := 0
	if r.player != nil {
		rank = Rank(r.store.Vehicles(), checkpoints, r.player.id)
	}

	fire := false
	if racing && !r.finished && r.player != nil && r.player.tracker.Lap() > r.tuning.TotalLaps {
		r.clock.Finish()
		r.finished = true
		fire = true
		events = append(events, r.event("finish", r.player.id, rank))
	}

	r.store.commit(r.tick, r.clock.Phase(), r.clock.Remaining(), r.nitroLevel(), rank, events)
	onFinish := r.onFinish
	r.mu.Unlock()

	if fire && onFinish != nil {
		var final *int
		if rank > 0 {
			final = &rank
		}
		onFinish(final)
	}
	return events
}

func (r *Race) publish(v *vehicle, pos r3.Vec) types.VehicleState {
	speed := msToKMH(r3.Norm(v.body.Velocity()))
	if math.IsNaN(speed) {
		speed = 0
	}
	return types.VehicleState{
		ID:         v.id,
		Position:   types.Vec3From(pos),
		Rotation:   v.body.Orientation(),
		Speed:      int(math.Floor(speed)),
		Lap:        DisplayLap(v.tracker.Lap(), r.tuning.TotalLaps),
		Checkpoint: v.tracker.Checkpoint(),
		IsPlayer:   v.isPlayer,
		Color:      v.color,
	}
}

type nitroSource interface {
	Nitro() float64
}

func (r *Race) nitroLevel() float64 {
	if r.player == nil {
		return r.nitro
	}
	if src, ok := r.player.controller.(nitroSource); ok {
		r.nitro = src.Nitro()
	}
	return r.nitro
}

func (r *Race) event(typ, vehicleID string, value int) types.RaceEvent {
	return types.RaceEvent{
		Type:       typ,
		RaceID:     r.id,
		VehicleID:  vehicleID,
		Value:      value,
		OccurredMS: int64(math.Round(r.elapsed * 1000)),
	}
}
