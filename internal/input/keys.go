package input

import (
	"sync"

	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
)

type signal int

const (
	forward signal = iota
	backward
	left
	right
	brake
	boost
)

var bindings = map[string]signal{
	"w":          forward,
	"ArrowUp":    forward,
	"s":          backward,
	"ArrowDown":  backward,
	"a":          left,
	"ArrowLeft":  left,
	"d":          right,
	"ArrowRight": right,
	" ":          brake,
	"Shift":      boost,
}

// Keys holds the player's control signals. Key events set and clear
// signals as they arrive; the simulation reads a snapshot once per step.
type Keys struct {
	mu    sync.Mutex
	state types.Controls
}

// NewKeys returns a key state with every signal released.
func NewKeys() *Keys {
	return &Keys{}
}

// Set applies a key-down or key-up event. It reports whether the key is bound.
func (k *Keys) Set(key string, down bool) bool {
	sig, ok := bindings[key]
	if !ok {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	switch sig {
	case forward:
		k.state.Forward = down
	case backward:
		k.state.Backward = down
	case left:
		k.state.Left = down
	case right:
		k.state.Right = down
	case brake:
		k.state.Brake = down
	case boost:
		k.state.Boost = down
	}
	return true
}

// Snapshot returns the current signals.
func (k *Keys) Snapshot() types.Controls {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// Reset releases every signal.
func (k *Keys) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.state = types.Controls{}
}
