package types

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 represents a position or vector in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// R3 converts to the gonum vector used by the simulation.
func (v Vec3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// Vec3From converts a gonum vector to its wire form.
func Vec3From(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Rotator stores orientation as Euler angles in radians. Only Yaw is used by
// gameplay logic.
type Rotator struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Controls is the sampled set of boolean control signals for the player.
type Controls struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Brake    bool `json:"brake"`
	Boost    bool `json:"boost"`
}

// Phase is the race lifecycle state.
type Phase string

const (
	PhaseCountdown Phase = "countdown"
	PhaseRacing    Phase = "racing"
	PhaseFinished  Phase = "finished"
)

// VehicleState is the published state of one vehicle.
type VehicleState struct {
	ID         string  `json:"id"`
	Position   Vec3    `json:"position"`
	Rotation   Rotator `json:"rotation"`
	Speed      int     `json:"speed"` // km/h, floored
	Lap        int     `json:"lap"`
	Checkpoint int     `json:"checkpoint"`
	IsPlayer   bool    `json:"is_player"`
	Color      string  `json:"color"`
}

// RaceEvent tracks state changes worth HUD/audio feedback.
type RaceEvent struct {
	Type       string `json:"type"` // countdown|go|checkpoint|lap|finish
	RaceID     string `json:"race_id,omitempty"`
	VehicleID  string `json:"vehicle_id,omitempty"`
	Value      int    `json:"value,omitempty"`
	OccurredMS int64  `json:"occurred_ms"`
}

// RaceState is the read model consumed by presentation.
type RaceState struct {
	RaceID     string         `json:"race_id"`
	Tick       uint64         `json:"tick"`
	CreatedAt  time.Time      `json:"created_at"`
	Phase      Phase          `json:"phase"`
	Countdown  int            `json:"countdown"`
	Nitro      float64        `json:"nitro"`
	PlayerRank int            `json:"player_rank"`
	TotalLaps  int            `json:"total_laps"`
	Vehicles   []VehicleState `json:"vehicles"`
	Events     []RaceEvent    `json:"events"`
}

// Player returns the player's vehicle, if present.
func (s RaceState) Player() (VehicleState, bool) {
	for _, v := range s.Vehicles {
		if v.IsPlayer {
			return v, true
		}
	}
	return VehicleState{}, false
}

// DisplayLap clamps a lap counter for HUD display.
func (s RaceState) DisplayLap(lap int) int {
	if lap > s.TotalLaps {
		return s.TotalLaps
	}
	return lap
}

// Screen is the session-level UI state.
type Screen string

const (
	ScreenMenu     Screen = "menu"
	ScreenGame     Screen = "game"
	ScreenPostRace Screen = "post_race"
)

// RaceResult is the outcome reported by the race-completion callback.
type RaceResult struct {
	PlayerRank *int   `json:"player_rank"`
	Text       string `json:"text"`
}

// SessionState is replicated to the owning client.
type SessionState struct {
	SessionID string      `json:"session_id"`
	Screen    Screen      `json:"screen"`
	Result    *RaceResult `json:"result,omitempty"`
	Race      *RaceState  `json:"race,omitempty"`
}

// ClientEnvelope is sent from client to server.
type ClientEnvelope struct {
	Type string `json:"type"` // key|start|restart|menu|ping
	Key  string `json:"key,omitempty"`
	Down bool   `json:"down,omitempty"`
}

// ServerEnvelope is sent from server to client.
type ServerEnvelope struct {
	Type     string        `json:"type"` // welcome|state|pong|error
	State    *SessionState `json:"state,omitempty"`
	ServerMS int64         `json:"server_ms,omitempty"`
	Message  string        `json:"message,omitempty"`
}
