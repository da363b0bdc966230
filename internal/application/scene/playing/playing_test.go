package playing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/squish/internal/application/scene"
	"github.com/younwookim/squish/internal/application/state"
	"github.com/younwookim/squish/internal/application/system"
	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/config"
	"github.com/younwookim/squish/internal/infrastructure/save"
)

const testConfigDir = "../../../../cmd/game/configs"

// scriptInput plays back a fixed list of held sets
type scriptInput struct {
	frames []system.ControlSet
	i      int
	prev   system.ControlSet
}

func (s *scriptInput) GetInput() (system.InputState, bool) {
	if s.i >= len(s.frames) {
		return system.InputState{}, false
	}
	held := s.frames[s.i]
	s.i++
	in := system.NextInputState(s.prev, held)
	s.prev = held
	return in, true
}

func idle(n int) *scriptInput {
	return &scriptInput{frames: make([]system.ControlSet, n)}
}

type memStore struct {
	saved []save.Progress
	err   error
}

func (m *memStore) SaveProgress(p *save.Progress) error {
	m.saved = append(m.saved, *p)
	return m.err
}

func newTestPlaying(t *testing.T, opts Options) *Playing {
	t.Helper()
	if opts.Loader == nil {
		opts.Loader = config.NewLoader(testConfigDir)
	}
	if opts.Levels == nil {
		opts.Levels = []string{"dev-room"}
	}
	if opts.Input == nil {
		opts.Input = idle(600)
	}
	p, err := New(opts)
	require.NoError(t, err)
	return p
}

// moveToExit puts the player just above the dev-room exit
func moveToExit(p *Playing) {
	pl := p.Simulation().Player()
	pl.MoveDelta(290-pl.X, 398-pl.Y)
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNew_Errors(t *testing.T) {
	loader := config.NewLoader(testConfigDir)
	tests := []struct {
		name string
		opts Options
	}{
		{"no loader", Options{Levels: []string{"dev-room"}}},
		{"no levels", Options{Loader: loader}},
		{"start out of range", Options{Loader: loader, Levels: []string{"dev-room"}, Start: 1}},
		{"missing level", Options{Loader: loader, Levels: []string{"nope"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestNew_StartsPlaying(t *testing.T) {
	p := newTestPlaying(t, Options{})

	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, "dev-room", p.LevelName())
	assert.Equal(t, 0, p.Simulation().Tick())

	pl := p.Simulation().Player()
	require.NotNil(t, pl)
	assert.Equal(t, 30.0, pl.X)
	assert.Equal(t, 199.0, pl.Y)

	w, h := p.Layout(1280, 832)
	assert.Equal(t, 320, w)
	assert.Equal(t, 208, h)
}

func TestPlaying_Update_StepsSimulation(t *testing.T) {
	p := newTestPlaying(t, Options{})

	next, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
	assert.Equal(t, 1, p.Simulation().Tick())
}

func TestPlaying_Update_InputExhausted(t *testing.T) {
	p := newTestPlaying(t, Options{Input: idle(1)})

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)

	_, err = p.Update(1.0 / 60.0)
	assert.True(t, errors.Is(err, ebiten.Termination))
	assert.Equal(t, 1, p.Simulation().Tick())
}

func TestPlaying_PauseStopsTicking(t *testing.T) {
	p := newTestPlaying(t, Options{})

	p.togglePause()
	assert.Equal(t, state.StatePaused, p.State())

	for i := 0; i < 5; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, p.Simulation().Tick())

	p.togglePause()
	assert.Equal(t, state.StatePlaying, p.State())
	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Simulation().Tick())
}

func TestPlaying_CompleteLastLevel(t *testing.T) {
	store := &memStore{}
	p := newTestPlaying(t, Options{Store: store})
	moveToExit(p)

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)

	assert.Equal(t, state.StateLevelComplete, p.State())
	assert.True(t, p.allClear)
	require.Len(t, store.saved, 1)
	assert.Equal(t, 0, store.saved[0].BestDeaths["dev-room"])

	// All clear stays put
	for i := 0; i < completeTicks+5; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, state.StateLevelComplete, p.State())
	assert.Equal(t, "dev-room", p.LevelName())
}

func TestPlaying_CompleteAdvancesOnAction(t *testing.T) {
	action := system.ControlSet(0).With(system.ControlAction)
	input := &scriptInput{frames: []system.ControlSet{0, action, 0}}
	p := newTestPlaying(t, Options{
		Levels: []string{"dev-room", "dev-room"},
		Input:  input,
	})
	moveToExit(p)

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	require.Equal(t, state.StateLevelComplete, p.State())
	assert.False(t, p.allClear)
	assert.Equal(t, "dev-room", p.Progress().Level)

	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, 1, p.levelIdx)
	assert.Equal(t, 0, p.Simulation().Tick())
	assert.Equal(t, 2, p.Simulation().Context().Stage)
}

func TestPlaying_CompleteAdvancesAfterDelay(t *testing.T) {
	p := newTestPlaying(t, Options{Levels: []string{"dev-room", "dev-room"}})
	moveToExit(p)

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)

	for i := 0; i < completeTicks-1; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, state.StateLevelComplete, p.State())

	_, err = p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, 1, p.levelIdx)
}

func TestPlaying_ExitOnComplete(t *testing.T) {
	p := newTestPlaying(t, Options{ExitOnComplete: true})
	moveToExit(p)

	_, err := p.Update(1.0 / 60.0)
	assert.True(t, errors.Is(err, ebiten.Termination))
	assert.True(t, p.Simulation().Complete())
}

func TestPlaying_SaveErrorIsNotFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	p := newTestPlaying(t, Options{Store: store})
	moveToExit(p)

	_, err := p.Update(1.0 / 60.0)
	assert.NoError(t, err)
	assert.Len(t, store.saved, 1)
}

func TestPlaying_Recording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	p := newTestPlaying(t, Options{RecordPath: path})
	require.NotNil(t, p.recorder)

	for i := 0; i < 3; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.recorder.FrameCount())

	p.OnExit()
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPlaying_NoRecordingByDefault(t *testing.T) {
	p := newTestPlaying(t, Options{})
	assert.Nil(t, p.recorder)
	assert.NotPanics(t, p.OnExit)
}

func newMemLoader(t *testing.T) (*config.Loader, fstest.MapFS) {
	t.Helper()
	tmx, err := os.ReadFile(filepath.Join(testConfigDir, "levels", "dev-room.tmx"))
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"physics.yaml":        {Data: []byte("physics:\n  gravity: 0.25\n")},
		"levels/dev-room.tmx": {Data: tmx},
	}
	return config.NewFSLoader(fsys, "mem"), fsys
}

func TestPlaying_ReloadPhysics(t *testing.T) {
	loader, fsys := newMemLoader(t)
	reload := make(chan string, 4)
	p := newTestPlaying(t, Options{Loader: loader, Reload: reload})

	fsys["physics.yaml"] = &fstest.MapFile{Data: []byte("physics:\n  gravity: 0.5\n")}
	reload <- "/configs/physics.yaml"
	p.drainReload()
	assert.Equal(t, 0.5, p.cfg.Physics.Gravity)

	fsys["physics.yaml"] = &fstest.MapFile{Data: []byte("physics: [\n")}
	reload <- "/configs/physics.yaml"
	p.drainReload()
	assert.Equal(t, 0.5, p.cfg.Physics.Gravity, "bad yaml keeps the old tuning")
}

func TestPlaying_ReloadLevel(t *testing.T) {
	loader, _ := newMemLoader(t)
	reload := make(chan string, 4)
	p := newTestPlaying(t, Options{Loader: loader, Reload: reload})

	for i := 0; i < 10; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	before := p.Simulation()

	reload <- "/configs/levels/other.tmx"
	p.drainReload()
	assert.Same(t, before, p.Simulation(), "other levels are ignored")

	reload <- "/configs/levels/dev-room.tmx"
	p.drainReload()
	assert.NotSame(t, before, p.Simulation())
	assert.Equal(t, 0, p.Simulation().Tick())
}

func TestPlaying_ReloadChannelClosed(t *testing.T) {
	reload := make(chan string)
	p := newTestPlaying(t, Options{Reload: reload})
	close(reload)

	assert.NotPanics(t, p.drainReload)
	assert.Nil(t, p.opts.Reload)

	_, err := p.Update(1.0 / 60.0)
	assert.NoError(t, err)
}

func TestPlaying_Drawables(t *testing.T) {
	p := newTestPlaying(t, Options{})

	ds := p.drawables()
	// 5 solids, platform, gate, 2 movers, button, key, saw, exit, sign, player
	assert.Len(t, ds, 15)
	_, ok := ds[len(ds)-1].(playerDrawable)
	assert.True(t, ok, "player is drawn last")

	var circles []entity.Positioned
	for _, d := range ds {
		if c, ok := d.(circleDrawable); ok {
			circles = append(circles, c.at)
		}
	}
	require.Len(t, circles, 2)
	x, y := circles[0].Pos()
	assert.Equal(t, []float64{160, 380}, []float64{x, y}, "saw")
	x, y = circles[1].Pos()
	assert.Equal(t, []float64{290, 394}, []float64{x, y}, "exit")
}

func TestPlaying_SignFadesNearPlayer(t *testing.T) {
	p := newTestPlaying(t, Options{})
	signs := p.Simulation().World().Snapshot().Signs()
	require.Len(t, signs, 1)
	sign := signs[0]

	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	assert.Zero(t, sign.Alpha)

	pl := p.Simulation().Player()
	pl.MoveDelta(48-pl.X, 0)
	for i := 0; i < 8; i++ {
		_, err := p.Update(1.0 / 60.0)
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, sign.Alpha)

	img := signDrawable{s: sign, cache: p.signText}.text()
	assert.Equal(t, len("arrows move")*glyphW, img.Bounds().Dx())
	assert.Equal(t, 2*glyphH, img.Bounds().Dy())
	assert.Same(t, img, signDrawable{s: sign, cache: p.signText}.text(), "text is rendered once")
}
