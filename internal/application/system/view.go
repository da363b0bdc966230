package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/squish/internal/domain/entity"
)

// ViewSystem scrolls the camera a full screen at a time when the player
// leaves the visible band.
type ViewSystem struct {
	screenH     float64
	scrollTicks int
	camera      Camera
	tween       *gween.Tween
}

// NewViewSystem creates a new view system
func NewViewSystem(screenH float64, scrollTicks int, camera Camera) *ViewSystem {
	if scrollTicks <= 0 {
		scrollTicks = 1
	}
	if camera == nil {
		camera = &FixedCamera{}
	}
	return &ViewSystem{screenH: screenH, scrollTicks: scrollTicks, camera: camera}
}

// Update advances an active scroll or starts one
func (s *ViewSystem) Update(f *Frame) {
	p := f.Player
	v := &p.View

	switch {
	case v.Scrolling:
		s.advance(p)
	case !p.Exploding && (p.Y < v.OffsetY || p.Y >= v.OffsetY+s.screenH):
		dir := 1.0
		if p.Y < v.OffsetY {
			dir = -1
		}
		v.Scrolling = true
		v.Tick = 0
		v.FromY = v.OffsetY
		v.ToY = v.OffsetY + dir*s.screenH
		s.tween = nil
	}
	s.camera.SetOffset(0, v.OffsetY)
}

func (s *ViewSystem) advance(p *entity.Player) {
	v := &p.View
	// the tween is rebuilt from the carried state after a respawn
	if s.tween == nil {
		s.tween = gween.New(float32(v.FromY), float32(v.ToY), float32(s.scrollTicks), ease.Linear)
	}
	v.Tick++
	y, done := s.tween.Set(float32(v.Tick))
	v.OffsetY = float64(y)
	if !done {
		return
	}
	v.OffsetY = v.ToY
	v.Scrolling = false
	s.tween = nil
	if !p.Exploding {
		p.SpawnX, p.SpawnY = p.X, p.Y
	}
}
