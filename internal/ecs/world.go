package ecs

import "github.com/younwookim/squish/internal/domain/entity"

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// DefaultCellSize is the broadphase cell size in world units
const DefaultCellSize = 32

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// order is registration order. Iteration never goes through map order.
	order []EntityID
	refs  map[any]EntityID

	// Components
	Solids    map[EntityID]*entity.Solid
	Platforms map[EntityID]*entity.Platform
	Movers    map[EntityID]*entity.MovingSolid
	Buttons   map[EntityID]*entity.Button
	Saws      map[EntityID]*entity.Saw
	Keys      map[EntityID]*entity.Key
	Gates     map[EntityID]*entity.Gate
	Exits     map[EntityID]*entity.Exit
	Signs     map[EntityID]*entity.Sign
	Orbs      map[EntityID]*entity.Orb

	// Singleton references
	PlayerID EntityID
	Player   *entity.Player

	index      *SpatialIndex
	indexDirty bool
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:    1, // 0 is "nil"
		refs:      make(map[any]EntityID),
		Solids:    make(map[EntityID]*entity.Solid),
		Platforms: make(map[EntityID]*entity.Platform),
		Movers:    make(map[EntityID]*entity.MovingSolid),
		Buttons:   make(map[EntityID]*entity.Button),
		Saws:      make(map[EntityID]*entity.Saw),
		Keys:      make(map[EntityID]*entity.Key),
		Gates:     make(map[EntityID]*entity.Gate),
		Exits:     make(map[EntityID]*entity.Exit),
		Signs:     make(map[EntityID]*entity.Sign),
		Orbs:      make(map[EntityID]*entity.Orb),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.order = append(w.order, id)
	return id
}

func (w *World) register(ref any) EntityID {
	id := w.NewEntity()
	w.refs[ref] = id
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	if _, ok := w.Solids[id]; ok {
		w.indexDirty = true
	}
	delete(w.Solids, id)
	delete(w.Platforms, id)
	delete(w.Movers, id)
	delete(w.Buttons, id)
	delete(w.Saws, id)
	delete(w.Keys, id)
	delete(w.Gates, id)
	delete(w.Exits, id)
	delete(w.Signs, id)
	delete(w.Orbs, id)
	if id == w.PlayerID {
		w.PlayerID = 0
		w.Player = nil
	}
	for ref, rid := range w.refs {
		if rid == id {
			delete(w.refs, ref)
		}
	}
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Remove destroys the entity holding the given component.
// Returns false if it is not registered.
func (w *World) Remove(ref any) bool {
	id, ok := w.refs[ref]
	if !ok {
		return false
	}
	w.DestroyEntity(id)
	return true
}

// IDOf returns the entity holding the given component
func (w *World) IDOf(ref any) (EntityID, bool) {
	id, ok := w.refs[ref]
	return id, ok
}

// Exists checks if an entity is still registered
func (w *World) Exists(id EntityID) bool {
	for _, oid := range w.order {
		if oid == id {
			return true
		}
	}
	return false
}

// Len returns the number of live entities
func (w *World) Len() int { return len(w.order) }

// CreatePlayer registers the player, replacing any previous one
func (w *World) CreatePlayer(p *entity.Player) EntityID {
	if w.PlayerID != 0 {
		w.DestroyEntity(w.PlayerID)
	}
	id := w.register(p)
	w.PlayerID = id
	w.Player = p
	return id
}

// AddSolid registers a static solid
func (w *World) AddSolid(s *entity.Solid) EntityID {
	id := w.register(s)
	w.Solids[id] = s
	w.indexDirty = true
	return id
}

// AddPlatform registers a one-way platform
func (w *World) AddPlatform(p *entity.Platform) EntityID {
	id := w.register(p)
	w.Platforms[id] = p
	return id
}

// AddMover registers a moving solid
func (w *World) AddMover(m *entity.MovingSolid) EntityID {
	id := w.register(m)
	w.Movers[id] = m
	return id
}

// AddButton registers a button
func (w *World) AddButton(b *entity.Button) EntityID {
	id := w.register(b)
	w.Buttons[id] = b
	return id
}

// AddSaw registers a saw hazard
func (w *World) AddSaw(s *entity.Saw) EntityID {
	id := w.register(s)
	w.Saws[id] = s
	return id
}

// AddKey registers a key
func (w *World) AddKey(k *entity.Key) EntityID {
	id := w.register(k)
	w.Keys[id] = k
	return id
}

// AddGate registers a gate
func (w *World) AddGate(g *entity.Gate) EntityID {
	id := w.register(g)
	w.Gates[id] = g
	return id
}

// AddExit registers an exit
func (w *World) AddExit(e *entity.Exit) EntityID {
	id := w.register(e)
	w.Exits[id] = e
	return id
}

// AddSign registers a sign
func (w *World) AddSign(s *entity.Sign) EntityID {
	id := w.register(s)
	w.Signs[id] = s
	return id
}

// AddOrb registers an orb
func (w *World) AddOrb(o *entity.Orb) EntityID {
	id := w.register(o)
	w.Orbs[id] = o
	return id
}

// Snapshot captures the current registry for one tick.
// Later additions and removals do not affect it.
func (w *World) Snapshot() *Snapshot {
	if w.indexDirty || w.index == nil {
		var static []entity.Collidable
		for _, id := range w.order {
			if s, ok := w.Solids[id]; ok {
				static = append(static, s)
			}
		}
		w.index = NewSpatialIndex(static, DefaultCellSize)
		w.indexDirty = false
	}

	s := &Snapshot{index: w.index}
	for _, id := range w.order {
		if v, ok := w.Solids[id]; ok {
			s.solids = append(s.solids, v)
		}
		if v, ok := w.Gates[id]; ok {
			s.solids = append(s.solids, v)
			s.dynamic = append(s.dynamic, v)
			s.gates = append(s.gates, v)
		}
		if v, ok := w.Movers[id]; ok {
			s.solids = append(s.solids, v)
			s.dynamic = append(s.dynamic, v)
			s.movers = append(s.movers, v)
		}
		if v, ok := w.Platforms[id]; ok {
			s.platforms = append(s.platforms, v)
		}
		if v, ok := w.Buttons[id]; ok {
			s.buttons = append(s.buttons, v)
		}
		if v, ok := w.Saws[id]; ok {
			s.saws = append(s.saws, v)
		}
		if v, ok := w.Keys[id]; ok {
			s.keys = append(s.keys, v)
		}
		if v, ok := w.Exits[id]; ok {
			s.exits = append(s.exits, v)
		}
		if v, ok := w.Signs[id]; ok {
			s.signs = append(s.signs, v)
		}
		if v, ok := w.Orbs[id]; ok {
			s.orbs = append(s.orbs, v)
		}
	}
	return s
}
