package system

import (
	"math"

	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/ecs"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

// Level is a loaded level ready to simulate
type Level struct {
	Name   string
	Width  float64
	Height float64
	World  *ecs.World
}

// PlayerShape builds the player footprint from the tuning
func PlayerShape(cfg *config.PhysicsConfig) entity.Shape {
	return entity.Shape{
		Width:     cfg.Player.Width,
		Height:    cfg.Player.Height,
		ScaleStep: cfg.Scale.Step,
		MinScale:  cfg.Scale.Min,
		MaxScale:  cfg.Scale.Max,
	}
}

func rect(r config.RectConfig) entity.AABB {
	return entity.NewAABB(r.X, r.Y, r.Width, r.Height)
}

// LoadLevel converts a LevelConfig into a populated world.
// Entities are registered in a fixed kind order, then file order.
func LoadLevel(lc *config.LevelConfig, cfg *config.PhysicsConfig) *Level {
	w := ecs.NewWorld()

	for _, r := range lc.Solids {
		w.AddSolid(entity.NewSolid(rect(r)))
	}
	for _, r := range lc.Platforms {
		w.AddPlatform(entity.NewPlatform(rect(r)))
	}
	for _, g := range lc.Gates {
		w.AddGate(entity.NewGate(rect(g.Rect), g.Keys))
	}
	for _, mc := range lc.Movers {
		path := make([]entity.Waypoint, len(mc.Path))
		for i, pt := range mc.Path {
			path[i] = entity.Waypoint{X: pt.X, Y: pt.Y}
		}
		m := entity.NewMovingSolid(mc.Width, mc.Height, path, mc.Steps, mc.Delay)
		m.Launch = mc.Launch
		m.Button = mc.Button
		w.AddMover(m)
	}
	for _, b := range lc.Buttons {
		w.AddButton(entity.NewButton(rect(b.Rect), b.ID))
	}
	for _, s := range lc.Saws {
		w.AddSaw(entity.NewSaw(s.X, s.Y))
	}
	for _, k := range lc.Keys {
		w.AddKey(entity.NewKey(rect(k.Rect), k.ID))
	}
	for _, e := range lc.Exits {
		w.AddExit(entity.NewExit(e.X, e.Y))
	}
	for _, s := range lc.Signs {
		w.AddSign(entity.NewSign(rect(s.Rect), s.Text))
	}
	for _, o := range lc.Orbs {
		w.AddOrb(entity.NewOrb(o.Pos.X, o.Pos.Y, o.Text))
	}

	p := entity.NewPlayer(lc.Spawn.X, lc.Spawn.Y, PlayerShape(cfg), cfg.Player.MaxJumps)
	screenH := float64(cfg.Display.ScreenHeight)
	if lc.ViewStart != nil {
		p.View.OffsetY = lc.ViewStart.Y
	} else if screenH > 0 {
		p.View.OffsetY = math.Floor(lc.Spawn.Y/screenH) * screenH
	}
	w.CreatePlayer(p)

	return &Level{
		Name:   lc.Name,
		Width:  lc.Width,
		Height: lc.Height,
		World:  w,
	}
}
