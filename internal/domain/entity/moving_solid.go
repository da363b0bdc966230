package entity

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// VelocityDelay is how many delay ticks a stopped platform keeps reporting
// its last velocity, so a jump right after it stops still inherits it.
const VelocityDelay = 6

// PathStep is the result of advancing a moving solid by one tick
type PathStep struct {
	DX, DY       float64
	Move         bool // false while delaying or with a degenerate path
	SectionEnded bool // a waypoint was reached this tick
}

// MovingSolid is a kinematic solid travelling back and forth along a path
type MovingSolid struct {
	bounds AABB
	path   []Waypoint

	Steps  int
	Delay  int
	Launch bool
	Button string

	forwards      bool
	section       int
	step          int
	DelayTimer    int
	VelocityDelay int
	XVelocity     float64
	YVelocity     float64

	tweenX *gween.Tween
	tweenY *gween.Tween
}

// NewMovingSolid creates a moving solid of the given size placed at the
// first waypoint. Steps is the number of ticks per section.
func NewMovingSolid(width, height float64, path []Waypoint, steps, delay int) *MovingSolid {
	if steps <= 0 {
		steps = 1
	}
	m := &MovingSolid{
		bounds:   NewAABB(0, 0, width, height),
		path:     path,
		Steps:    steps,
		Delay:    delay,
		forwards: true,
	}
	if len(path) > 0 {
		m.bounds.X, m.bounds.Y = path[0].X, path[0].Y
	}
	m.resetTweens()
	return m
}

// Bounds returns the current rectangle
func (m *MovingSolid) Bounds() AABB { return m.bounds }

// Pos returns the top-left corner
func (m *MovingSolid) Pos() (float64, float64) { return m.bounds.X, m.bounds.Y }

// Path returns the waypoints
func (m *MovingSolid) Path() []Waypoint { return m.path }

// Section returns the index of the waypoint the current section starts from
func (m *MovingSolid) Section() int { return m.section }

// Step returns the tick within the current section
func (m *MovingSolid) Step() int { return m.step }

// Forwards reports whether the solid travels toward the path's end
func (m *MovingSolid) Forwards() bool { return m.forwards }

// MoveX shifts the solid horizontally
func (m *MovingSolid) MoveX(dx float64) { m.bounds.X += dx }

// MoveY shifts the solid vertically
func (m *MovingSolid) MoveY(dy float64) { m.bounds.Y += dy }

// Advance steps the path traversal by one tick and returns the displacement
// the solid should make. The solid itself is not moved.
func (m *MovingSolid) Advance() PathStep {
	if len(m.path) < 2 {
		return PathStep{}
	}
	if m.DelayTimer > 0 {
		m.DelayTimer--
		m.VelocityDelay--
		if m.VelocityDelay < 0 {
			m.XVelocity, m.YVelocity = 0, 0
		}
		return PathStep{}
	}

	var out PathStep
	m.step++
	if m.step > m.Steps {
		if m.forwards {
			m.section++
		} else {
			m.section--
		}
		if m.section >= len(m.path)-1 {
			m.section = len(m.path) - 1
			m.forwards = false
		}
		if m.section <= 0 {
			m.section = 0
			m.forwards = true
		}
		m.step = 0
		m.DelayTimer = m.Delay
		m.resetTweens()
		out.SectionEnded = true
	}
	if m.DelayTimer > 0 {
		m.VelocityDelay = VelocityDelay
		return out
	}

	x, _ := m.tweenX.Set(float32(m.step))
	y, _ := m.tweenY.Set(float32(m.step))
	out.DX = float64(x) - m.bounds.X
	out.DY = float64(y) - m.bounds.Y
	out.Move = true
	return out
}

func (m *MovingSolid) resetTweens() {
	if len(m.path) < 2 {
		return
	}
	from := m.path[m.section]
	next := m.section + 1
	if !m.forwards {
		next = m.section - 1
	}
	to := m.path[next]
	m.tweenX = gween.New(float32(from.X), float32(to.X), float32(m.Steps), ease.Linear)
	m.tweenY = gween.New(float32(from.Y), float32(to.Y), float32(m.Steps), ease.Linear)
}
