// Package input tracks the directional key state that drives the ball.
package input

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// Direction identifies one of the four movement flags.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// State is a snapshot of the four movement flags.
type State struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Bindings maps each direction to a key name understood by common.KeyCode.
type Bindings struct {
	Forward string `toml:"forward"`
	Back    string `toml:"back"`
	Left    string `toml:"left"`
	Right   string `toml:"right"`
}

// DefaultBindings returns the w/a/s/d layout.
func DefaultBindings() Bindings {
	return Bindings{Forward: "W", Back: "S", Left: "A", Right: "D"}
}

// Keyboard is the interface for a key-event driven input source.
type Keyboard interface {
	// KeyDown records a key press for the given key code.
	KeyDown(code uint32)

	// KeyUp records a key release for the given key code.
	KeyUp(code uint32)

	// State returns the current movement flags.
	State() State

	// Reset clears every flag, for example when the window loses focus.
	Reset()
}

type keyboard struct {
	mu    *sync.Mutex
	keys  map[uint32]Direction
	state State
}

var _ Keyboard = &keyboard{}

// NewKeyboard creates a Keyboard for the given bindings.
//
// Parameters:
//   - b: key names for each direction
//
// Returns:
//   - Keyboard: the keyboard tracker
//   - error: when a key name is unknown or bound twice
func NewKeyboard(b Bindings) (Keyboard, error) {
	k := &keyboard{
		mu:   &sync.Mutex{},
		keys: make(map[uint32]Direction, 4),
	}
	for _, pair := range []struct {
		name string
		dir  Direction
	}{
		{b.Forward, Forward},
		{b.Back, Back},
		{b.Left, Left},
		{b.Right, Right},
	} {
		code, ok := common.KeyCode(pair.name)
		if !ok {
			return nil, fmt.Errorf("input: unknown key %q for %s", pair.name, pair.dir)
		}
		if prev, dup := k.keys[code]; dup {
			return nil, fmt.Errorf("input: key %q bound to both %s and %s", pair.name, prev, pair.dir)
		}
		k.keys[code] = pair.dir
	}
	return k, nil
}

func (k *keyboard) KeyDown(code uint32) {
	k.set(code, true)
}

func (k *keyboard) KeyUp(code uint32) {
	k.set(code, false)
}

func (k *keyboard) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

func (k *keyboard) Reset() {
	k.mu.Lock()
	k.state = State{}
	k.mu.Unlock()
}

func (k *keyboard) set(code uint32, down bool) {
	dir, ok := k.keys[code]
	if !ok {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	switch dir {
	case Forward:
		k.state.Forward = down
	case Back:
		k.state.Back = down
	case Left:
		k.state.Left = down
	case Right:
		k.state.Right = down
	}
}
