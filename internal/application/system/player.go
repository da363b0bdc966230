package system

import (
	"math"

	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

// groundTolerance is how far below the feet ground contact is probed
const groundTolerance = 1

// PlayerSystem runs the player's movement, jump and squish state machine
type PlayerSystem struct {
	config      *config.PhysicsConfig
	audio       Audio
	levelBottom float64 // 0 means unbounded
	squishing   bool
}

// NewPlayerSystem creates a new player system
func NewPlayerSystem(cfg *config.PhysicsConfig, audio Audio) *PlayerSystem {
	if audio == nil {
		audio = NopAudio{}
	}
	return &PlayerSystem{config: cfg, audio: audio}
}

// SetLevelBottom sets the y below which the player explodes
func (s *PlayerSystem) SetLevelBottom(y float64) { s.levelBottom = y }

// SetConfig swaps the tuning, used by hot reload
func (s *PlayerSystem) SetConfig(cfg *config.PhysicsConfig) { s.config = cfg }

// ground returns what the player stands on and whether it is a one-way platform
func ground(p *entity.Player, solids, platforms []entity.Collidable) (entity.Collidable, bool) {
	if c := p.OnSolid(solids, groundTolerance); c != nil {
		return c, false
	}
	if c := p.OnPlatform(platforms, groundTolerance); c != nil {
		return c, true
	}
	return nil, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// UpdateHorizontal applies input, friction and the horizontal sweep
func (s *PlayerSystem) UpdateHorizontal(f *Frame) {
	p := f.Player
	if p.Exploding {
		return
	}
	mv := s.config.Movement
	solids := f.Snap.SolidsNear(p.Bounds().Expand(math.Abs(p.VX) + mv.Push + 2))
	on, _ := ground(p, solids, f.Snap.Platforms())
	grounded := on != nil

	left := f.Input.IsControl(ControlLeft, StateDown)
	right := f.Input.IsControl(ControlRight, StateDown)
	if left {
		p.VX -= mv.Push
	}
	if right {
		p.VX += mv.Push
	}

	friction := mv.Friction * math.Sqrt(math.Abs(p.VX))
	if !grounded {
		if left || right {
			friction = 0
		} else {
			friction *= mv.AirFrictionFactor
		}
	}
	if p.VX > 0 {
		p.VX = math.Max(0, p.VX-friction)
	} else if p.VX < 0 {
		p.VX = math.Min(0, p.VX+friction)
	}
	p.VX = clamp(p.VX, -mv.MaxHorizontal, mv.MaxHorizontal)

	s.sweepX(p, solids)
}

// sweepX moves in unit sub-steps and stops at the first blocked one
func (s *PlayerSystem) sweepX(p *entity.Player, solids []entity.Collidable) {
	dir := sign(p.VX)
	for rem := math.Abs(p.VX); rem > 0; rem-- {
		step := math.Min(rem, 1)
		p.MoveDelta(dir*step, 0)
		if p.InSolid(solids) != nil {
			p.MoveDelta(-dir*step, 0)
			p.VX = 0
			return
		}
	}
}

// UpdateVertical runs jump handling, gravity, the vertical sweep and squish
func (s *PlayerSystem) UpdateVertical(f *Frame) {
	p := f.Player
	if p.Exploding {
		s.setSquishing(false)
		p.ExplodeTime++
		if p.ExplodeTime >= s.config.Player.ExplodeTicks {
			f.Emit(RespawnIntent{})
		}
		return
	}
	jc := s.config.Jump
	margin := math.Abs(p.VY) + s.config.Physics.MaxVertical + 4
	solids := f.Snap.SolidsNear(p.Bounds().Expand(margin))
	platforms := f.Snap.Platforms()

	on, oneWay := ground(p, solids, platforms)
	if on != nil {
		p.Jumps = p.MaxJumps
		p.CoyoteTime = jc.CoyoteTicks
	} else {
		if p.CoyoteTime > 0 {
			p.CoyoteTime--
		}
		// walked off an edge without jumping: the ground charge is gone
		if p.CoyoteTime == 0 && p.Jumps == p.MaxJumps {
			p.Jumps--
		}
	}

	if p.RejumpTime > 0 {
		p.RejumpTime--
	}
	if p.RejumpTime == 0 {
		p.Rejump = false
	}

	if f.Input.IsControl(ControlAction, StatePress) {
		switch {
		case oneWay && f.Input.IsControl(ControlDown, StateDown):
			s.dropThrough(p)
			on = nil
		case p.Jumps > 0:
			s.jump(f, p, on)
		default:
			p.Rejump = true
			p.RejumpTime = jc.RejumpGrace
		}
	} else if p.Rejump && on != nil {
		s.jump(f, p, on)
	}

	if p.Jump {
		if f.Input.IsControl(ControlAction, StateDown) && p.JumpingTime < jc.FloatTicks {
			p.VY += jc.FloatSpeed
			p.JumpingTime++
		} else {
			p.Jump = false
		}
	}

	if on == nil || p.VY < 0 {
		g := s.config.Physics.Gravity
		drag := 0.0
		if f.Ctx.Abilities.SlowFall && p.VY > 0 {
			drag = g * jc.SlowFallDrag * math.Max(0, p.ScaleX()-1)
		}
		p.VY += g - drag
		p.VY = clamp(p.VY, -s.config.Physics.MaxVertical, s.config.Physics.MaxVertical)
	}

	if p.VY > 0 {
		if s.sweepDown(p, solids, platforms) {
			p.Jumps = p.MaxJumps
			p.CoyoteTime = jc.CoyoteTicks
			if p.Rejump {
				landed, _ := ground(p, solids, platforms)
				s.jump(f, p, landed)
			}
		}
	} else if p.VY < 0 {
		s.sweepUp(p, solids)
	}

	s.updateScale(f, p, solids)

	if s.levelBottom > 0 && p.Bounds().Y > s.levelBottom {
		p.Explode()
	}
	if f.Input.IsControl(ControlReset, StatePress) {
		p.Explode()
	}
	if p.Exploding {
		s.setSquishing(false)
	}
}

func (s *PlayerSystem) jump(f *Frame, p *entity.Player, on entity.Collidable) {
	jc := s.config.Jump
	p.CoyoteTime = 0
	if p.Jumps > 0 {
		p.Jumps--
	}
	p.Rejump = false
	p.RejumpTime = 0

	vy := jc.Speed
	if f.Ctx.Abilities.HighJump && p.ScaleY() > 1 {
		vy *= 1 + jc.HighJumpBoost*(p.ScaleY()-1)
	}
	p.VY = vy
	if m, ok := on.(*entity.MovingSolid); ok {
		p.VX += m.XVelocity
		p.VY += m.YVelocity
	}
	p.Jump = true
	p.JumpingTime = 0
	p.Anim = entity.AnimJump
	s.audio.Play(CueJump)
}

func (s *PlayerSystem) dropThrough(p *entity.Player) {
	if p.Jumps > 0 {
		p.Jumps--
	}
	p.CoyoteTime = 0
	p.MoveDelta(0, s.config.Jump.PlatformDropNudge)
}

// sweepDown falls in unit sub-steps. Returns true on landing.
func (s *PlayerSystem) sweepDown(p *entity.Player, solids, platforms []entity.Collidable) bool {
	for rem := p.VY; rem > 0; rem-- {
		step := math.Min(rem, 1)
		before := p.Probes()
		p.MoveDelta(0, step)

		hit := p.InSolid(solids)
		if hit == nil {
			hit = enteredFromAbove(before, p.Probes(), platforms)
		}
		if hit == nil {
			continue
		}
		probes := p.Probes()
		if probes.FindOverlapBottom([]entity.Collidable{hit}) == nil {
			p.MoveDelta(0, -step)
			p.VY = 0
			return false
		}
		p.MoveDelta(0, hit.Bounds().Y-1-p.Y)
		p.VY = 0
		p.Anim = entity.AnimLand
		p.LandTime = 0
		s.audio.Play(CueLand)
		return true
	}
	return false
}

// enteredFromAbove returns a platform the bottom probes touch now but did not before
func enteredFromAbove(before, after entity.ProbeQuad, platforms []entity.Collidable) entity.Collidable {
	for _, c := range platforms {
		one := []entity.Collidable{c}
		if after.FindOverlapBottom(one) != nil && before.FindOverlapBottom(one) == nil {
			return c
		}
	}
	return nil
}

func (s *PlayerSystem) sweepUp(p *entity.Player, solids []entity.Collidable) {
	for rem := -p.VY; rem > 0; rem-- {
		step := math.Min(rem, 1)
		p.MoveDelta(0, -step)
		if p.InSolid(solids) != nil {
			p.MoveDelta(0, step)
			p.VY = 0
			p.Jump = false
			return
		}
	}
}

func (s *PlayerSystem) updateScale(f *Frame, p *entity.Player, solids []entity.Collidable) {
	ab := f.Ctx.Abilities
	up := ab.SquishUp && f.Input.IsControl(ControlUp, StateDown)
	down := ab.SquishDown && f.Input.IsControl(ControlDown, StateDown)

	squished := false
	switch {
	case up && !down:
		squished = p.ScaleUp(solids)
	case down && !up:
		squished = p.ScaleDown(solids)
	case ab.UnSquish:
		p.ScaleBack(solids)
	}
	s.setSquishing(squished)
}

func (s *PlayerSystem) setSquishing(on bool) {
	if on == s.squishing {
		return
	}
	s.squishing = on
	if on {
		s.audio.StartLoop(CueSquish)
	} else {
		s.audio.StopLoop(CueSquish)
	}
}

// UpdateAnim settles the animation state after everything has moved
func (s *PlayerSystem) UpdateAnim(f *Frame) {
	p := f.Player
	if p.Exploding {
		p.Anim = entity.AnimExplode
		return
	}
	solids := f.Snap.SolidsNear(p.Bounds().Expand(2))
	on, _ := ground(p, solids, f.Snap.Platforms())
	moving := f.Input.IsControl(ControlLeft, StateDown) || f.Input.IsControl(ControlRight, StateDown)

	switch {
	case on == nil || p.VY < 0:
		p.Anim = entity.AnimJump
	case p.Anim == entity.AnimLand && !moving:
		p.LandTime++
		if p.LandTime >= s.config.Player.LandTicks {
			p.Anim = entity.AnimStand
		}
	case moving:
		p.Anim = entity.AnimWalk
	default:
		p.Anim = entity.AnimStand
	}
}
