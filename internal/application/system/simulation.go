package system

import (
	"log"

	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/ecs"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

// Simulation advances a level one fixed tick at a time.
//
// Phase order within a tick:
//  1. buttons
//  2. player horizontal
//  3. moving solids, in registration order
//  4. player vertical, jump and squish
//  5. hazards, keys, gates, exit
//  6. animation
//  7. view scroll
//
// Every phase reads the same snapshot. Removals and respawns are applied
// after the last phase.
type Simulation struct {
	level *Level
	ctx   entity.LevelContext

	player    *PlayerSystem
	platforms *PlatformSystem
	triggers  *TriggerSystem
	view      *ViewSystem
	phases    []Tickable

	tick     int
	complete bool
	deaths   int
}

// NewSimulation wires the systems for a level
func NewSimulation(level *Level, cfg *config.PhysicsConfig, ctx entity.LevelContext, audio Audio, camera Camera) *Simulation {
	if audio == nil {
		audio = NopAudio{}
	}
	s := &Simulation{
		level:     level,
		ctx:       ctx,
		player:    NewPlayerSystem(cfg, audio),
		platforms: NewPlatformSystem(cfg, audio),
		triggers:  NewTriggerSystem(audio),
		view:      NewViewSystem(float64(cfg.Display.ScreenHeight), cfg.View.ScrollTicks, camera),
	}
	s.player.SetLevelBottom(level.Height)
	s.platforms.OnCrush = func(reason string) {
		log.Printf("player crushed: %s", reason)
	}
	s.phases = []Tickable{
		TickFunc(s.triggers.UpdateButtons),
		TickFunc(s.player.UpdateHorizontal),
		TickFunc(s.platforms.Update),
		TickFunc(s.player.UpdateVertical),
		TickFunc(s.triggers.Update),
		TickFunc(s.player.UpdateAnim),
		TickFunc(s.view.Update),
	}
	return s
}

// Step runs one tick
func (s *Simulation) Step(in Controls) {
	w := s.level.World
	if s.complete || w.Player == nil {
		return
	}
	f := &Frame{
		Snap:   w.Snapshot(),
		Player: w.Player,
		Input:  in,
		Ctx:    s.ctx,
	}
	for _, phase := range s.phases {
		phase.Tick(f)
	}
	s.apply(f.Intents())
	s.tick++
}

func (s *Simulation) apply(intents []Intent) {
	w := s.level.World
	for _, intent := range intents {
		switch it := intent.(type) {
		case RemoveIntent:
			w.Remove(it.Ref)
		case RespawnIntent:
			if w.Player != nil {
				w.CreatePlayer(w.Player.Respawn())
				s.deaths++
			}
		case CompleteIntent:
			s.complete = true
		}
	}
}

// Player returns the current player
func (s *Simulation) Player() *entity.Player { return s.level.World.Player }

// World returns the level's registry
func (s *Simulation) World() *ecs.World { return s.level.World }

// Level returns the level being simulated
func (s *Simulation) Level() *Level { return s.level }

// Tick returns the number of ticks run
func (s *Simulation) Tick() int { return s.tick }

// Deaths returns how many times the player has respawned
func (s *Simulation) Deaths() int { return s.deaths }

// Complete reports whether the exit was reached
func (s *Simulation) Complete() bool { return s.complete }

// Dialog returns the open orb message, or nil
func (s *Simulation) Dialog() *Dialog { return s.triggers.Dialog() }

// Context returns the level context
func (s *Simulation) Context() entity.LevelContext { return s.ctx }

// SetContext replaces the level context between ticks
func (s *Simulation) SetContext(ctx entity.LevelContext) { s.ctx = ctx }

// SetConfig swaps the tuning between ticks, used by hot reload
func (s *Simulation) SetConfig(cfg *config.PhysicsConfig) {
	s.player.SetConfig(cfg)
	s.platforms.SetConfig(cfg)
}
