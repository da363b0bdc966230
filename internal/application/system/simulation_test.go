package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/config"
)

func loadDevRoom(t *testing.T) (*Level, *config.PhysicsConfig) {
	t.Helper()
	loader := config.NewLoader(testConfigDir)
	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)
	lc, err := loader.LoadLevel("dev-room")
	require.NoError(t, err)
	return LoadLevel(lc, cfg), cfg
}

// scriptedInputs returns a reproducible input sequence without Reset
func scriptedInputs(seed int64, n int) []InputState {
	rng := rand.New(rand.NewSource(seed))
	out := make([]InputState, n)
	var prev ControlSet
	for i := range out {
		var set ControlSet
		for c := ControlLeft; c <= ControlAction; c++ {
			if rng.Intn(3) == 0 {
				set = set.With(c)
			}
		}
		out[i] = NextInputState(prev, set)
		prev = set
	}
	return out
}

func TestSimulation_Deterministic(t *testing.T) {
	levelA, cfg := loadDevRoom(t)
	levelB, _ := loadDevRoom(t)
	ctx := entity.LevelContext{Abilities: entity.AllAbilities()}
	a := NewSimulation(levelA, cfg, ctx, nil, nil)
	b := NewSimulation(levelB, cfg, ctx, nil, nil)

	for i, in := range scriptedInputs(42, 900) {
		a.Step(in)
		b.Step(in)
		pa, pb := a.Player(), b.Player()
		require.Equal(t, pa.X, pb.X, "tick %d", i)
		require.Equal(t, pa.Y, pb.Y, "tick %d", i)
		require.Equal(t, pa.VX, pb.VX, "tick %d", i)
		require.Equal(t, pa.VY, pb.VY, "tick %d", i)
		require.Equal(t, pa.Squish(), pb.Squish(), "tick %d", i)
	}
	assert.Equal(t, a.Deaths(), b.Deaths())
	assert.Equal(t, a.Tick(), b.Tick())
	assert.Equal(t, a.World().Len(), b.World().Len())
}

func TestSimulation_ScaleInvariantInDevRoom(t *testing.T) {
	level, cfg := loadDevRoom(t)
	sim := NewSimulation(level, cfg, entity.LevelContext{Abilities: entity.AllAbilities()}, nil, nil)
	shape := PlayerShape(cfg)

	for i, in := range scriptedInputs(3, 1200) {
		sim.Step(in)
		p := sim.Player()
		require.InDelta(t, 2.0, p.ScaleX()+p.ScaleY(), 1e-9, "tick %d", i)
		require.GreaterOrEqual(t, p.ScaleY(), shape.MinScale-1e-9, "tick %d", i)
		require.LessOrEqual(t, p.ScaleY(), shape.MaxScale+1e-9, "tick %d", i)
	}
}

func TestSimulation_ButtonsRunBeforeMovers(t *testing.T) {
	w, p := newTestWorld(50)
	p.Anim = entity.AnimLand
	w.AddButton(entity.NewButton(entity.NewAABB(40, 96, 20, 4), "B1"))
	m := newTestMover(100, 20, 150, 20, 30, 6, 10, 0)
	m.Button = "B1"
	w.AddMover(m)
	sim := newTestSim(w, nil)

	sim.Step(InputState{})
	assert.Equal(t, 1, m.Step(), "button pressed and mover moved in the same tick")
}

func TestSimulation_RespawnKeepsView(t *testing.T) {
	w, p := newTestWorld(50)
	p.View.OffsetY = 208
	p.SpawnX, p.SpawnY = 20, 99
	sim := newTestSim(w, nil)
	explode := createTestPhysicsConfig().Player.ExplodeTicks

	sim.Step(pressed(ControlReset))
	require.True(t, p.Exploding)
	stepN(sim, explode-1, InputState{})
	require.Same(t, p, sim.Player())

	sim.Step(InputState{})
	np := sim.Player()
	require.NotSame(t, p, np)
	assert.Equal(t, 20.0, np.X)
	assert.Equal(t, 208.0, np.View.OffsetY)
	assert.Equal(t, 1, sim.Deaths())
	assert.Equal(t, explode+1, sim.Tick())

	id, ok := w.IDOf(np)
	require.True(t, ok)
	assert.Equal(t, w.PlayerID, id)
	_, ok = w.IDOf(p)
	assert.False(t, ok, "old player is unregistered")
}

func TestSimulation_SetConfig(t *testing.T) {
	w, p := newEmptyWorld(50, 50)
	sim := newTestSim(w, nil)
	cfg := createTestPhysicsConfig()
	cfg.Physics.Gravity = 0.5
	sim.SetConfig(cfg)

	sim.Step(InputState{})
	assert.InDelta(t, 0.5, p.VY, 1e-9)
}

func TestSimulation_CameraFollowsView(t *testing.T) {
	w, p := newEmptyWorld(50, 450)
	p.View.OffsetY = 416
	cam := &FixedCamera{}
	sim := NewSimulation(&Level{World: w}, createTestPhysicsConfig(), entity.LevelContext{}, nil, cam)

	sim.Step(InputState{})
	x, y := cam.Offset()
	assert.Zero(t, x)
	assert.Equal(t, 416.0, y)
}

func TestSimulation_WithoutPlayerIsNoop(t *testing.T) {
	sim := newTestSim(newFloorWorld(), nil)
	sim.Step(pressed(ControlAction))
	assert.Equal(t, 0, sim.Tick())
}
