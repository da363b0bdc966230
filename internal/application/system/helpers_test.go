package system

import (
	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/ecs"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

func createTestPhysicsConfig() *config.PhysicsConfig {
	return config.Default()
}

// newFloorWorld creates a world with only a floor whose top is y=100
func newFloorWorld() *ecs.World {
	w := ecs.NewWorld()
	w.AddSolid(entity.NewSolid(entity.NewAABB(0, 100, 200, 10)))
	return w
}

// newTestWorld creates a world with a floor whose top is y=100 and a
// neutral player standing on it at x.
func newTestWorld(x float64) (*ecs.World, *entity.Player) {
	w := newFloorWorld()
	p := entity.NewPlayer(x, 99, entity.DefaultShape, 1)
	w.CreatePlayer(p)
	return w, p
}

// newEmptyWorld creates a world with only a player
func newEmptyWorld(x, y float64) (*ecs.World, *entity.Player) {
	w := ecs.NewWorld()
	p := entity.NewPlayer(x, y, entity.DefaultShape, 1)
	w.CreatePlayer(p)
	return w, p
}

func newTestSim(w *ecs.World, audio Audio) *Simulation {
	return NewSimulation(&Level{Name: "test", World: w}, createTestPhysicsConfig(), entity.LevelContext{}, audio, nil)
}

func newTestFrame(w *ecs.World, in Controls) *Frame {
	return &Frame{Snap: w.Snapshot(), Player: w.Player, Input: in}
}

func held(cs ...Control) InputState {
	var in InputState
	for _, c := range cs {
		in.Held = in.Held.With(c)
	}
	return in
}

func pressed(cs ...Control) InputState {
	in := held(cs...)
	in.Pressed = in.Held
	return in
}

func stepN(s *Simulation, n int, in Controls) {
	for i := 0; i < n; i++ {
		s.Step(in)
	}
}

type recordingAudio struct {
	played  []Cue
	looping map[Cue]bool
}

func newRecordingAudio() *recordingAudio {
	return &recordingAudio{looping: make(map[Cue]bool)}
}

func (a *recordingAudio) Play(c Cue)      { a.played = append(a.played, c) }
func (a *recordingAudio) StartLoop(c Cue) { a.looping[c] = true }
func (a *recordingAudio) StopLoop(c Cue)  { a.looping[c] = false }

func (a *recordingAudio) has(c Cue) bool {
	for _, p := range a.played {
		if p == c {
			return true
		}
	}
	return false
}
