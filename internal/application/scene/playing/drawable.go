package playing

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/squish/internal/domain/entity"
)

// Drawable renders itself relative to the camera
type Drawable interface {
	Draw(screen *ebiten.Image, camX, camY float64)
}

type rectDrawable struct {
	bounds entity.AABB
	clr    color.Color
	filled bool
}

func (d rectDrawable) Draw(screen *ebiten.Image, camX, camY float64) {
	x, y := d.bounds.X-camX, d.bounds.Y-camY
	if d.filled {
		ebitenutil.DrawRect(screen, x, y, d.bounds.Width, d.bounds.Height, d.clr)
		return
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(d.bounds.Width), float32(d.bounds.Height), 1, d.clr, false)
}

type circleDrawable struct {
	at  entity.Positioned
	r   float64
	clr color.Color
}

func (d circleDrawable) Draw(screen *ebiten.Image, camX, camY float64) {
	x, y := d.at.Pos()
	vector.DrawFilledCircle(screen, float32(x-camX), float32(y-camY), float32(d.r), d.clr, false)
}

// debug font cell size
const (
	glyphW = 6
	glyphH = 16
)

// signDrawable shows the sign's text above it, faded by its alpha
type signDrawable struct {
	s     *entity.Sign
	cache map[*entity.Sign]*ebiten.Image
}

func (d signDrawable) Draw(screen *ebiten.Image, camX, camY float64) {
	b := d.s.Bounds()
	vector.StrokeRect(screen, float32(b.X-camX), float32(b.Y-camY), float32(b.Width), float32(b.Height), 1, colorSign, false)
	if d.s.Alpha <= 0 {
		return
	}

	img := d.text()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.X+b.Width/2-float64(w)/2-camX, b.Y-float64(h)-2-camY)
	op.ColorScale.ScaleAlpha(float32(d.s.Alpha))
	screen.DrawImage(img, op)
}

// text renders the sign's lines once
func (d signDrawable) text() *ebiten.Image {
	if img, ok := d.cache[d.s]; ok {
		return img
	}
	lines := d.s.Lines()
	cols := 1
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	img := ebiten.NewImage(cols*glyphW, len(lines)*glyphH)
	ebitenutil.DebugPrint(img, strings.Join(lines, "\n"))
	d.cache[d.s] = img
	return img
}

type playerDrawable struct {
	p     *entity.Player
	probe bool
}

func (d playerDrawable) Draw(screen *ebiten.Image, camX, camY float64) {
	clr := colorPlayer
	if d.p.Exploding {
		clr = colorExplode
	}
	b := d.p.Bounds()
	ebitenutil.DrawRect(screen, b.X-camX, b.Y-camY, b.Width, b.Height, clr)

	if !d.probe {
		return
	}
	q := d.p.Probes()
	for _, r := range []entity.AABB{q.TopLeft, q.TopRight, q.BottomLeft, q.BottomRight} {
		ebitenutil.DrawRect(screen, r.X-camX, r.Y-camY, r.Width, r.Height, colorProbe)
	}
	ebitenutil.DrawLine(screen, d.p.X-camX, d.p.Y-camY, d.p.X+d.p.VX*4-camX, d.p.Y+d.p.VY*4-camY, colorProbe)
}

// drawables lists everything in the level back to front
func (p *Playing) drawables() []Drawable {
	snap := p.sim.World().Snapshot()
	var out []Drawable

	for _, s := range snap.Solids() {
		if _, ok := s.(*entity.Solid); ok {
			out = append(out, rectDrawable{bounds: s.Bounds(), clr: colorSolid, filled: true})
		}
	}
	for _, pl := range snap.Platforms() {
		out = append(out, rectDrawable{bounds: pl.Bounds(), clr: colorPlat, filled: true})
	}
	for _, g := range snap.Gates() {
		out = append(out, rectDrawable{bounds: g.Bounds(), clr: colorGate, filled: true})
	}
	for _, m := range snap.Movers() {
		out = append(out, rectDrawable{bounds: m.Bounds(), clr: colorMover, filled: true})
	}
	for _, b := range snap.Buttons() {
		out = append(out, rectDrawable{bounds: b.Bounds(), clr: colorButton, filled: b.IsPressed()})
	}
	for _, k := range snap.Keys() {
		out = append(out, rectDrawable{bounds: k.Bounds(), clr: colorKey, filled: true})
	}
	for _, s := range snap.Saws() {
		out = append(out, circleDrawable{at: s, r: s.Radius, clr: colorSaw})
	}
	for _, e := range snap.Exits() {
		out = append(out, circleDrawable{at: e, r: 6, clr: colorExit})
	}
	for _, o := range snap.Orbs() {
		out = append(out, circleDrawable{at: o, r: entity.OrbRadius, clr: colorOrb})
	}
	for _, sg := range snap.Signs() {
		out = append(out, signDrawable{s: sg, cache: p.signText})
	}
	if pl := p.sim.Player(); pl != nil {
		out = append(out, playerDrawable{p: pl, probe: p.debug})
	}
	return out
}
