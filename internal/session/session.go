package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhishek9871/3D-Racing-Game/internal/input"
	"github.com/abhishek9871/3D-Racing-Game/internal/physics"
	"github.com/abhishek9871/3D-Racing-Game/internal/race"
	"github.com/abhishek9871/3D-Racing-Game/internal/shared/logger"
	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

// EventSink receives every event a race produces.
type EventSink interface {
	Ingest(ev types.RaceEvent)
}

// Options configures a session.
type Options struct {
	Tuning  race.Tuning
	Track   race.Track
	Physics physics.Params
	SimHz   int
	Sink    EventSink
	Log     logger.Logger
}

// Session is one player's screen flow: menu, a running race, and the
// post-race result. Each race runs on its own fixed-timestep loop.
type Session struct {
	id   string
	opts Options
	keys *input.Keys
	log  logger.Logger

	mu     sync.Mutex
	screen types.Screen
	result *types.RaceResult
	race   *race.Race
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New returns a session on the menu screen.
func New(opts Options) *Session {
	if opts.SimHz <= 0 {
		opts.SimHz = 60
	}
	if len(opts.Track.Checkpoints) == 0 {
		opts.Track = race.DefaultTrack()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		opts:   opts,
		keys:   input.NewKeys(),
		log:    opts.Log.With().Str("session", id).Logger(),
		screen: types.ScreenMenu,
	}
}

func (s *Session) ID() string { return s.id }

// Keys returns the input source fed by the client.
func (s *Session) Keys() *input.Keys { return s.keys }

// Start tears down any running race and starts a fresh one. It is also the
// restart action.
func (s *Session) Start(ctx context.Context) string {
	s.teardown()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}

	s.keys.Reset()
	r := s.newRace()
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.race = r
	s.cancel = cancel
	s.done = done
	s.screen = types.ScreenGame
	s.result = nil

	go s.run(loopCtx, r, done)
	s.log.Info().Str("race", r.ID()).Msg("race started")
	return r.ID()
}

// Menu tears down any running race and returns to the menu screen.
func (s *Session) Menu() {
	s.teardown()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.race = nil
	s.result = nil
	s.screen = types.ScreenMenu
}

// Close stops the session for good. It is safe to call more than once.
func (s *Session) Close() {
	s.teardown()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Snapshot returns the session state for replication.
func (s *Session) Snapshot() types.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := types.SessionState{SessionID: s.id, Screen: s.screen}
	if s.result != nil {
		res := *s.result
		out.Result = &res
	}
	if s.race != nil {
		snap := s.race.Snapshot()
		out.Race = &snap
	}
	return out
}

func (s *Session) newRace() *race.Race {
	t := s.opts.Tuning
	world := physics.NewWorld(s.opts.Physics)
	slots := race.StartingGrid(t.AICount)
	entrants := make([]race.Entrant, 0, len(slots))
	for _, slot := range slots {
		body := world.AddVehicle(slot.ID, slot.Position, slot.Yaw)
		var ctrl race.Controller
		if slot.IsPlayer {
			ctrl = race.NewPlayer(t, s.keys)
		} else {
			ctrl = race.NewAI(t, s.opts.Track.Waypoints)
		}
		entrants = append(entrants, race.Entrant{Slot: slot, Body: body, Controller: ctrl})
	}

	var r *race.Race
	r = race.New(uuid.NewString(), t, s.opts.Track, world, entrants, func(rank *int) {
		s.finish(r, rank)
	})
	return r
}

// finish is the race-completion callback. It runs on the race loop, so it
// only cancels the loop and never waits for it.
func (s *Session) finish(r *race.Race, rank *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.race != r || s.closed {
		return
	}
	s.screen = types.ScreenPostRace
	s.result = &types.RaceResult{PlayerRank: rank, Text: ResultText(rank)}
	if s.cancel != nil {
		s.cancel()
	}
	ev := s.log.Info().Str("race", r.ID())
	if rank != nil {
		ev = ev.Int("rank", *rank)
	}
	ev.Msg("race finished")
}

// teardown stops the running race loop and waits for it to exit.
func (s *Session) teardown() {
	s.mu.Lock()
	r, cancel, done := s.race, s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if r != nil {
		r.Close()
	}
	if done != nil {
		<-done
	}
}

func (s *Session) run(ctx context.Context, r *race.Race, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.SimHz))
	defer ticker.Stop()
	dt := 1.0 / float64(s.opts.SimHz)

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Str("race", r.ID()).Msg("race loop stopped")
			return
		case <-ticker.C:
			for _, ev := range r.Step(dt) {
				if ev.Type == "go" {
					s.log.Debug().Str("race", r.ID()).Msg("race running")
				}
				if s.opts.Sink != nil {
					s.opts.Sink.Ingest(ev)
				}
			}
		}
	}
}

// ResultText renders the post-race headline for a final rank.
func ResultText(rank *int) string {
	if rank == nil {
		return "Race Finished"
	}
	switch *rank {
	case 1:
		return "1st Place!"
	case 2:
		return "2nd Place!"
	case 3:
		return "3rd Place!"
	default:
		return strconv.Itoa(*rank) + "th Place"
	}
}
