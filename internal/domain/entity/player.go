package entity

import "math"

// Shape describes the player's unscaled footprint and scale limits
type Shape struct {
	Width     float64
	Height    float64
	ScaleStep float64
	MinScale  float64
	MaxScale  float64
}

// DefaultShape is a 10x10 footprint scaling in 0.1 steps within [0.2, 1.8]
var DefaultShape = Shape{Width: 10, Height: 10, ScaleStep: 0.1, MinScale: 0.2, MaxScale: 1.8}

// shift returns how far the side probes and the top probes move per step
func (s Shape) shift() (dx, dy float64) {
	return s.Width * s.ScaleStep / 2, s.Height * s.ScaleStep
}

func (s Shape) squishLimits() (lo, hi int) {
	lo = int(math.Round((s.MinScale - 1) / s.ScaleStep))
	hi = int(math.Round((s.MaxScale - 1) / s.ScaleStep))
	return lo, hi
}

// View is the vertical camera state owned by the player.
// It survives respawn.
type View struct {
	OffsetY   float64
	Scrolling bool
	Tick      int
	FromY     float64
	ToY       float64
}

// Player is the controllable actor.
// (X, Y) is the bottom-centre foot point.
type Player struct {
	X, Y   float64
	VX, VY float64

	shape  Shape
	probes ProbeQuad
	squish int

	Jumps       int
	MaxJumps    int
	CoyoteTime  int
	JumpingTime int
	RejumpTime  int
	LandTime    int
	ExplodeTime int

	Jump      bool // float phase active
	Rejump    bool // buffered jump press
	Exploding bool
	Anim      Anim

	SpawnX, SpawnY float64
	View           View
}

// NewPlayer creates a neutral-scale player standing at (x, y),
// which also becomes its spawn point.
func NewPlayer(x, y float64, shape Shape, maxJumps int) *Player {
	return &Player{
		X:        x,
		Y:        y,
		shape:    shape,
		probes:   NewProbeQuad(x, y, shape.Width/2, shape.Height),
		Jumps:    maxJumps,
		MaxJumps: maxJumps,
		SpawnX:   x,
		SpawnY:   y,
		Anim:     AnimStand,
	}
}

// Respawn returns a fresh player at the spawn point, keeping the view
func (p *Player) Respawn() *Player {
	np := NewPlayer(p.SpawnX, p.SpawnY, p.shape, p.MaxJumps)
	np.View = p.View
	return np
}

// Pos returns the foot point
func (p *Player) Pos() (float64, float64) { return p.X, p.Y }

// Bounds returns the bounding box of the probes
func (p *Player) Bounds() AABB { return p.probes.Bounds() }

// Probes returns a copy of the corner probes
func (p *Player) Probes() ProbeQuad { return p.probes }

// Squish returns the integer scale step
func (p *Player) Squish() int { return p.squish }

// ScaleX returns the horizontal scale
func (p *Player) ScaleX() float64 { return 1 - float64(p.squish)*p.shape.ScaleStep }

// ScaleY returns the vertical scale
func (p *Player) ScaleY() float64 { return 1 + float64(p.squish)*p.shape.ScaleStep }

// MoveDelta moves the player and its probes together
func (p *Player) MoveDelta(dx, dy float64) {
	p.X += dx
	p.Y += dy
	p.probes.Translate(dx, dy)
}

// OnSolid returns the candidate the bottom probes rest on when shifted down
// by tolerance, or nil.
func (p *Player) OnSolid(candidates []Collidable, tolerance float64) Collidable {
	q := p.probes
	q.Translate(0, tolerance)
	return q.FindOverlapBottom(candidates)
}

// OnPlatform returns the one-way platform the player rests on. The bottom
// probes must touch it after the shift but not before.
func (p *Player) OnPlatform(platforms []Collidable, tolerance float64) Collidable {
	q := p.probes
	q.Translate(0, tolerance)
	for _, c := range platforms {
		one := []Collidable{c}
		if q.FindOverlapBottom(one) != nil && p.probes.FindOverlapBottom(one) == nil {
			return c
		}
	}
	return nil
}

// InSolid returns the first candidate overlapping any probe, or nil
func (p *Player) InSolid(candidates []Collidable) Collidable {
	return p.probes.FindOverlap(candidates)
}

// ScaleUp makes the player one step taller and narrower.
// Returns false and leaves the player untouched if blocked or at the limit.
func (p *Player) ScaleUp(candidates []Collidable) bool {
	_, hi := p.shape.squishLimits()
	if p.squish >= hi {
		return false
	}
	dx, dy := p.shape.shift()
	saved := p.probes
	p.probes.deform(dx, -dy)
	if p.InSolid(candidates) != nil {
		p.probes = saved
		return false
	}
	p.squish++
	return true
}

// ScaleDown makes the player one step shorter and wider. A blocked attempt
// is retried shifted half a step left, then right.
func (p *Player) ScaleDown(candidates []Collidable) bool {
	lo, _ := p.shape.squishLimits()
	if p.squish <= lo {
		return false
	}
	dx, dy := p.shape.shift()
	saved := p.probes
	p.probes.deform(-dx, dy)
	for _, off := range []float64{0, -dx, dx} {
		p.MoveDelta(off, 0)
		if p.InSolid(candidates) == nil {
			p.squish--
			return true
		}
		p.MoveDelta(-off, 0)
	}
	p.probes = saved
	return false
}

// ScaleBack moves the scale one step toward neutral
func (p *Player) ScaleBack(candidates []Collidable) bool {
	switch {
	case p.squish > 0:
		return p.ScaleDown(candidates)
	case p.squish < 0:
		return p.ScaleUp(candidates)
	default:
		return true
	}
}

// Explode starts the death animation. Calling it again has no effect.
func (p *Player) Explode() {
	if p.Exploding {
		return
	}
	p.Exploding = true
	p.ExplodeTime = 0
	p.VX, p.VY = 0, 0
	p.Jump = false
	p.Anim = AnimExplode
}

// Launch adds an impulse, typically from a spring platform
func (p *Player) Launch(dvx, dvy float64) {
	if p.Exploding {
		return
	}
	p.VX += dvx
	p.VY += dvy
	p.Jump = false
	p.Anim = AnimJump
}

// IsFalling reports whether the player is coming down or has just landed
func (p *Player) IsFalling() bool {
	return p.VY > 0 || p.Anim == AnimLand
}
