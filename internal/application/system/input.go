package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Control is a logical game control
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlUp
	ControlDown
	ControlAction
	ControlReset
	controlCount
)

// String returns the control name
func (c Control) String() string {
	switch c {
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	case ControlUp:
		return "Up"
	case ControlDown:
		return "Down"
	case ControlAction:
		return "Action"
	case ControlReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// ControlState selects which edge of a control to query
type ControlState int

const (
	StatePress ControlState = iota // went down this tick
	StateDown                      // held
	StateUp                        // released this tick
)

// Controls answers control queries for one tick
type Controls interface {
	IsControl(c Control, s ControlState) bool
}

// ControlSet is a bit set of controls
type ControlSet uint8

// Has reports whether c is in the set
func (s ControlSet) Has(c Control) bool { return s&(1<<c) != 0 }

// With returns the set with c added
func (s ControlSet) With(c Control) ControlSet { return s | 1<<c }

// InputState holds the controls for one tick
type InputState struct {
	Held     ControlSet
	Pressed  ControlSet
	Released ControlSet
}

// IsControl implements Controls
func (s InputState) IsControl(c Control, st ControlState) bool {
	switch st {
	case StatePress:
		return s.Pressed.Has(c)
	case StateDown:
		return s.Held.Has(c)
	case StateUp:
		return s.Released.Has(c)
	}
	return false
}

// NextInputState derives press and release edges from two held sets
func NextInputState(prev, held ControlSet) InputState {
	return InputState{
		Held:     held,
		Pressed:  held &^ prev,
		Released: prev &^ held,
	}
}

// DefaultBindings maps controls to keys
var DefaultBindings = map[Control][]ebiten.Key{
	ControlLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	ControlRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	ControlUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	ControlDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
	ControlAction: {ebiten.KeySpace, ebiten.KeyX, ebiten.KeyZ},
	ControlReset:  {ebiten.KeyR},
}

// InputSystem reads the keyboard
type InputSystem struct {
	bindings map[Control][]ebiten.Key
}

// NewInputSystem creates a new input system. Nil bindings use DefaultBindings.
func NewInputSystem(bindings map[Control][]ebiten.Key) *InputSystem {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &InputSystem{bindings: bindings}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	var in InputState
	for c := Control(0); c < controlCount; c++ {
		held, pressed, released := false, false, false
		for _, key := range s.bindings[c] {
			held = held || ebiten.IsKeyPressed(key)
			pressed = pressed || inpututil.IsKeyJustPressed(key)
			released = released || inpututil.IsKeyJustReleased(key)
		}
		if held {
			in.Held = in.Held.With(c)
		}
		if pressed {
			in.Pressed = in.Pressed.With(c)
		}
		// another bound key may still be down
		if released && !held {
			in.Released = in.Released.With(c)
		}
	}
	return in
}
