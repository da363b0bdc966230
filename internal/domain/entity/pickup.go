package entity

import (
	"math"
	"strings"
)

// Button latches pressed when a falling player lands on it
type Button struct {
	bounds  AABB
	ID      string
	pressed bool
}

// NewButton creates an unpressed button
func NewButton(bounds AABB, id string) *Button {
	return &Button{bounds: bounds, ID: id}
}

// Bounds returns the button's rectangle
func (b *Button) Bounds() AABB { return b.bounds }

// IsPressed reports whether the button has been pressed
func (b *Button) IsPressed() bool { return b.pressed }

// Press latches the button. Returns true on the first press only.
func (b *Button) Press() bool {
	if b.pressed {
		return false
	}
	b.pressed = true
	return true
}

// Saw is a circular hazard
type Saw struct {
	X, Y   float64
	Radius float64
}

// SawRadius is the default saw radius
const SawRadius = 10

// NewSaw creates a saw centred at (x, y)
func NewSaw(x, y float64) *Saw {
	return &Saw{X: x, Y: y, Radius: SawRadius}
}

// Pos returns the saw's centre
func (s *Saw) Pos() (float64, float64) { return s.X, s.Y }

// Touches reports whether the saw's circle overlaps the rectangle
func (s *Saw) Touches(b AABB) bool {
	cx := math.Max(b.X, math.Min(s.X, b.Right()))
	cy := math.Max(b.Y, math.Min(s.Y, b.Bottom()))
	dx, dy := s.X-cx, s.Y-cy
	return dx*dx+dy*dy < s.Radius*s.Radius
}

// Key is collected by touching it
type Key struct {
	bounds AABB
	ID     string
}

// NewKey creates a key for the gates sharing its id
func NewKey(bounds AABB, id string) *Key {
	return &Key{bounds: bounds, ID: id}
}

// Bounds returns the key's rectangle
func (k *Key) Bounds() AABB { return k.bounds }

// Gate is a solid that opens once every key with its id is collected
type Gate struct {
	bounds AABB
	Keys   string
}

// NewGate creates a closed gate
func NewGate(bounds AABB, keys string) *Gate {
	return &Gate{bounds: bounds, Keys: keys}
}

// Bounds returns the gate's rectangle
func (g *Gate) Bounds() AABB { return g.bounds }

// ExitReach is how close the player's centre must come to an exit
const ExitReach = 16

// Exit completes the level when reached
type Exit struct {
	X, Y float64
}

// NewExit creates an exit at (x, y)
func NewExit(x, y float64) *Exit {
	return &Exit{X: x, Y: y}
}

// Pos returns the exit position
func (e *Exit) Pos() (float64, float64) { return e.X, e.Y }

// Reached reports whether the point is within reach of the exit
func (e *Exit) Reached(x, y float64) bool {
	return math.Hypot(e.X-x, e.Y-y) < ExitReach
}

// SignFadeStep is how much a sign's text alpha changes per tick
const SignFadeStep = 0.125

// Sign shows its text while the player stands in front of it
type Sign struct {
	bounds AABB
	Text   string // lines separated by '|'
	Alpha  float64
}

// NewSign creates a sign with hidden text
func NewSign(bounds AABB, text string) *Sign {
	return &Sign{bounds: bounds, Text: text}
}

// Bounds returns the sign's rectangle
func (s *Sign) Bounds() AABB { return s.bounds }

// Fade moves the text alpha one step toward shown or hidden
func (s *Sign) Fade(shown bool) {
	if shown {
		s.Alpha = math.Min(1, s.Alpha+SignFadeStep)
	} else {
		s.Alpha = math.Max(0, s.Alpha-SignFadeStep)
	}
}

// Lines returns the text split into display lines
func (s *Sign) Lines() []string { return strings.Split(s.Text, "|") }

// OrbRadius is the orb's touch radius
const OrbRadius = 6

// Orb opens a message when touched
type Orb struct {
	X, Y float64
	Text string
}

// NewOrb creates an orb centred at (x, y)
func NewOrb(x, y float64, text string) *Orb {
	return &Orb{X: x, Y: y, Text: text}
}

// Pos returns the orb's centre
func (o *Orb) Pos() (float64, float64) { return o.X, o.Y }

// Touches reports whether the orb's circle overlaps the rectangle
func (o *Orb) Touches(b AABB) bool {
	cx := math.Max(b.X, math.Min(o.X, b.Right()))
	cy := math.Max(b.Y, math.Min(o.Y, b.Bottom()))
	return math.Hypot(o.X-cx, o.Y-cy) < OrbRadius
}
