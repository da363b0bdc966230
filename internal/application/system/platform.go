package system

import (
	"math"

	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

// PlatformSystem moves the moving solids and resolves carry, push and crush
type PlatformSystem struct {
	config *config.PhysicsConfig
	audio  Audio

	// OnCrush is called once when the player is crushed
	OnCrush func(reason string)
}

// NewPlatformSystem creates a new platform system
func NewPlatformSystem(cfg *config.PhysicsConfig, audio Audio) *PlatformSystem {
	if audio == nil {
		audio = NopAudio{}
	}
	return &PlatformSystem{config: cfg, audio: audio}
}

// SetConfig swaps the tuning, used by hot reload
func (s *PlatformSystem) SetConfig(cfg *config.PhysicsConfig) { s.config = cfg }

// Update ticks every moving solid in registration order
func (s *PlatformSystem) Update(f *Frame) {
	for _, m := range f.Snap.Movers() {
		s.Tick(f, m)
	}
}

// Tick advances one moving solid along its path
func (s *PlatformSystem) Tick(f *Frame, m *entity.MovingSolid) {
	if m.Button != "" && !f.Snap.ButtonsPressed(m.Button) {
		return
	}

	step := m.Advance()
	p := f.Player
	if step.SectionEnded && m.Launch && s.active(p) && p.OnSolid([]entity.Collidable{m}, groundTolerance) != nil {
		lf := s.config.Platform.LaunchFactor
		p.Launch(m.XVelocity*lf, m.YVelocity*lf)
		s.audio.Play(CueLaunch)
	}
	if !step.Move {
		return
	}
	s.move(f, m, step.DX, step.DY)
}

func (s *PlatformSystem) active(p *entity.Player) bool {
	return p != nil && !p.Exploding
}

func (s *PlatformSystem) move(f *Frame, m *entity.MovingSolid, dx, dy float64) {
	p := f.Player
	mine := []entity.Collidable{m}
	others := f.Snap.SolidsExcept(m)

	riding := s.active(p) && p.OnSolid(mine, groundTolerance) != nil
	if riding {
		s.carry(p, others, dx, dy)
	}
	m.XVelocity, m.YVelocity = dx, dy

	m.MoveX(dx)
	if dx != 0 && s.active(p) && p.InSolid(mine) != nil &&
		p.OnSolid(mine, s.config.Platform.PushTolerance) == nil {
		s.pushX(p, others, dx)
	}

	m.MoveY(dy)
	if dy != 0 && s.active(p) && p.InSolid(mine) != nil {
		s.pushY(p, others, dy)
	}
}

// carry moves a rider with the platform, falling back to one axis at a time
func (s *PlatformSystem) carry(p *entity.Player, others []entity.Collidable, dx, dy float64) {
	p.MoveDelta(dx, dy)
	if p.InSolid(others) == nil {
		return
	}
	p.MoveDelta(-dx, -dy)

	if dx != 0 {
		p.MoveDelta(dx, 0)
		if p.InSolid(others) != nil {
			p.MoveDelta(-dx, 0)
		}
	}
	if dy == 0 {
		return
	}
	if dy > 0 {
		p.MoveDelta(0, dy)
		if p.InSolid(others) != nil {
			p.MoveDelta(0, -dy)
		}
		return
	}
	// rising into a ceiling: squash against it
	if !s.squeezeY(p, others, dy) {
		s.crush(p, "ceiling")
	}
}

// pushX shoves the player sideways, squeezing it taller against a wall
func (s *PlatformSystem) pushX(p *entity.Player, others []entity.Collidable, dx float64) {
	p.MoveDelta(dx, 0)
	if p.InSolid(others) == nil {
		return
	}
	p.MoveDelta(-dx, 0)

	dir := sign(dx)
	half := s.squeezeShift(p)
	for rem := math.Abs(dx); rem > 0; rem-- {
		step := math.Min(rem, 1)
		p.MoveDelta(dir*step, 0)
		if p.InSolid(others) == nil {
			continue
		}
		p.MoveDelta(-dir*step, 0)
		if !p.ScaleUp(others) {
			if dir > 0 {
				s.crush(p, "right")
			} else {
				s.crush(p, "left")
			}
			return
		}
		// keep the wall side in place; the narrowing gives way on the platform side
		p.MoveDelta(dir*half, 0)
	}
}

// pushY shoves the player vertically, squeezing it flatter when blocked
func (s *PlatformSystem) pushY(p *entity.Player, others []entity.Collidable, dy float64) {
	p.MoveDelta(0, dy)
	if p.InSolid(others) == nil {
		return
	}
	p.MoveDelta(0, -dy)

	if !s.squeezeY(p, others, dy) {
		if dy > 0 {
			s.crush(p, "down")
		} else {
			s.crush(p, "up")
		}
	}
}

// squeezeY walks the player by dy in unit increments, flattening it one
// scale step for each blocked increment. Pushed down, the flattening absorbs
// the increment; lifted, the feet still rise. Returns false if it cannot flatten.
func (s *PlatformSystem) squeezeY(p *entity.Player, others []entity.Collidable, dy float64) bool {
	dir := sign(dy)
	for rem := math.Abs(dy); rem > 0; rem-- {
		step := math.Min(rem, 1)
		p.MoveDelta(0, dir*step)
		if p.InSolid(others) == nil {
			continue
		}
		p.MoveDelta(0, -dir*step)
		if !p.ScaleDown(others) {
			return false
		}
		if dir < 0 {
			// lifted: the feet follow the platform up under the flattened body
			p.MoveDelta(0, -step)
			if p.InSolid(others) != nil {
				p.MoveDelta(0, step)
				return false
			}
		}
	}
	return true
}

func (s *PlatformSystem) squeezeShift(p *entity.Player) float64 {
	return s.config.Player.Width * s.config.Scale.Step / 2
}

func (s *PlatformSystem) crush(p *entity.Player, reason string) {
	p.Explode()
	s.audio.Play(CueCrush)
	if s.OnCrush != nil {
		s.OnCrush(reason)
	}
}
