package ecs

import "github.com/younwookim/squish/internal/domain/entity"

// Snapshot is a read-only view of the registry taken at the start of a tick.
// All slices are in registration order.
type Snapshot struct {
	solids    []entity.Collidable // static solids, gates and movers
	dynamic   []entity.Collidable // gates and movers
	platforms []entity.Collidable
	movers    []*entity.MovingSolid
	buttons   []*entity.Button
	saws      []*entity.Saw
	keys      []*entity.Key
	gates     []*entity.Gate
	exits     []*entity.Exit
	signs     []*entity.Sign
	orbs      []*entity.Orb

	index *SpatialIndex
}

// Solids returns every blocking collidable
func (s *Snapshot) Solids() []entity.Collidable { return s.solids }

// Platforms returns the one-way platforms
func (s *Snapshot) Platforms() []entity.Collidable { return s.platforms }

// Movers returns the moving solids
func (s *Snapshot) Movers() []*entity.MovingSolid { return s.movers }

// Buttons returns the buttons
func (s *Snapshot) Buttons() []*entity.Button { return s.buttons }

// Saws returns the saw hazards
func (s *Snapshot) Saws() []*entity.Saw { return s.saws }

// Keys returns the uncollected keys
func (s *Snapshot) Keys() []*entity.Key { return s.keys }

// Gates returns the closed gates
func (s *Snapshot) Gates() []*entity.Gate { return s.gates }

// Exits returns the level exits
func (s *Snapshot) Exits() []*entity.Exit { return s.exits }

// Signs returns the level signs
func (s *Snapshot) Signs() []*entity.Sign { return s.signs }

// Orbs returns the level orbs
func (s *Snapshot) Orbs() []*entity.Orb { return s.orbs }

// SolidsNear returns the blocking collidables that may touch region:
// static solids from the broadphase index, followed by gates and movers.
func (s *Snapshot) SolidsNear(region entity.AABB) []entity.Collidable {
	near := s.index.Query(region)
	return append(near, s.dynamic...)
}

// SolidsExcept returns every blocking collidable except c
func (s *Snapshot) SolidsExcept(c entity.Collidable) []entity.Collidable {
	out := make([]entity.Collidable, 0, len(s.solids))
	for _, v := range s.solids {
		if v != c {
			out = append(out, v)
		}
	}
	return out
}

// ButtonsPressed reports whether every button with the id is pressed.
// With no such button it reports true.
func (s *Snapshot) ButtonsPressed(id string) bool {
	for _, b := range s.buttons {
		if b.ID == id && !b.IsPressed() {
			return false
		}
	}
	return true
}

// KeysRemaining counts the uncollected keys with the id
func (s *Snapshot) KeysRemaining(id string) int {
	n := 0
	for _, k := range s.keys {
		if k.ID == id {
			n++
		}
	}
	return n
}
