package race

import (
	"sync"
	"time"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// Store is the race state aggregate read by presentation. Vehicle records are
// replaced whole; readers always get a deep copy.
type Store struct {
	mu    sync.RWMutex
	state types.RaceState
	index map[string]int
}

// NewStore seeds the aggregate with the starting vehicle set.
func NewStore(raceID string, totalLaps int, countdown int, nitro float64, vehicles []types.VehicleState) *Store {
	s := &Store{
		state: types.RaceState{
			RaceID:    raceID,
			CreatedAt: time.Now().UTC(),
			Phase:     types.PhaseCountdown,
			Countdown: countdown,
			Nitro:     nitro,
			TotalLaps: totalLaps,
			Vehicles:  make([]types.VehicleState, len(vehicles)),
			Events:    []types.RaceEvent{},
		},
		index: make(map[string]int, len(vehicles)),
	}
	if countdown <= 0 {
		s.state.Phase = types.PhaseRacing
	}
	copy(s.state.Vehicles, vehicles)
	for i, v := range vehicles {
		s.index[v.ID] = i
	}
	return s
}

// Replace swaps in a vehicle record. Unknown ids are ignored.
func (s *Store) Replace(v types.VehicleState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[v.ID]
	if !ok {
		return false
	}
	s.state.Vehicles[i] = v
	return true
}

// Vehicle returns the record for id.
func (s *Store) Vehicle(id string) (types.VehicleState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return types.VehicleState{}, false
	}
	return s.state.Vehicles[i], true
}

// Vehicles returns a copy of every vehicle record in grid order.
func (s *Store) Vehicles() []types.VehicleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.VehicleState, len(s.state.Vehicles))
	copy(out, s.state.Vehicles)
	return out
}

// commit publishes race-level fields for one step.
func (s *Store) commit(tick uint64, phase types.Phase, countdown int, nitro float64, rank int, events []types.RaceEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tick = tick
	s.state.Phase = phase
	s.state.Countdown = countdown
	s.state.Nitro = nitro
	s.state.PlayerRank = rank
	s.state.Events = append(s.state.Events[:0], events...)
}

// Snapshot returns a deep copy of state for safe replication.
func (s *Store) Snapshot() types.RaceState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vehicles := make([]types.VehicleState, len(s.state.Vehicles))
	copy(vehicles, s.state.Vehicles)

	events := make([]types.RaceEvent, len(s.state.Events))
	copy(events, s.state.Events)

	out := s.state
	out.Vehicles = vehicles
	out.Events = events
	return out
}
