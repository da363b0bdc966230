package system

import (
	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/ecs"
)

// Frame is everything one tick reads, plus the intents it queues
type Frame struct {
	Snap   *ecs.Snapshot
	Player *entity.Player
	Input  Controls
	Ctx    entity.LevelContext

	intents []Intent
}

// Emit queues an intent for after the tick
func (f *Frame) Emit(i Intent) {
	f.intents = append(f.intents, i)
}

// Intents returns the queued intents in emission order
func (f *Frame) Intents() []Intent { return f.intents }

// Tickable is one phase of the simulation tick
type Tickable interface {
	Tick(f *Frame)
}

// TickFunc adapts a function to Tickable
type TickFunc func(f *Frame)

// Tick implements Tickable
func (fn TickFunc) Tick(f *Frame) { fn(f) }
