// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/squish/internal/application/replay"
	"github.com/younwookim/squish/internal/application/scene"
	"github.com/younwookim/squish/internal/application/state"
	"github.com/younwookim/squish/internal/application/system"
	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/config"
	"github.com/younwookim/squish/internal/infrastructure/save"
)

// completeTicks is how long the level-complete banner stays up
const completeTicks = 90

// InputSource supplies one tick of input. ok is false once the source is exhausted.
type InputSource interface {
	GetInput() (in system.InputState, ok bool)
}

// ProgressStore persists progress when a level is completed
type ProgressStore interface {
	SaveProgress(p *save.Progress) error
}

type keyboard struct {
	sys *system.InputSystem
}

func (k keyboard) GetInput() (system.InputState, bool) { return k.sys.GetInput(), true }

// Options configures a Playing scene
type Options struct {
	Loader  *config.Loader
	Physics *config.PhysicsConfig
	Levels  []string
	Start   int // index into Levels

	Abilities entity.Abilities
	Input     InputSource   // nil reads the keyboard
	Audio     system.Audio  // nil is silent
	Store     ProgressStore // nil disables saving
	Progress  *save.Progress

	// RecordPath enables input recording. "-" picks a generated name.
	RecordPath string

	// Reload receives changed config file paths
	Reload <-chan string

	// ExitOnComplete ends the game when the level is completed
	ExitOnComplete bool
}

// Playing is the main gameplay scene
type Playing struct {
	opts     Options
	cfg      *config.PhysicsConfig
	levels   []string
	levelIdx int

	sim    *system.Simulation
	camera *system.FixedCamera
	audio  system.Audio
	input  InputSource
	state  state.GameState

	progress      *save.Progress
	completeTimer int
	allClear      bool

	recorder *replay.Recorder
	signText map[*entity.Sign]*ebiten.Image

	screenW int
	screenH int
	debug   bool
}

// New creates a Playing scene on the start level
func New(opts Options) (*Playing, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("playing: loader is required")
	}
	if len(opts.Levels) == 0 {
		return nil, fmt.Errorf("playing: no levels")
	}
	if opts.Start < 0 || opts.Start >= len(opts.Levels) {
		return nil, fmt.Errorf("playing: start level %d out of range", opts.Start)
	}

	cfg := opts.Physics
	if cfg == nil {
		cfg = config.Default()
	}
	audio := opts.Audio
	if audio == nil {
		audio = system.NopAudio{}
	}
	input := opts.Input
	if input == nil {
		input = keyboard{sys: system.NewInputSystem(nil)}
	}
	progress := opts.Progress
	if progress == nil {
		progress = &save.Progress{Abilities: opts.Abilities}
	}

	p := &Playing{
		opts:     opts,
		cfg:      cfg,
		levels:   opts.Levels,
		camera:   &system.FixedCamera{},
		audio:    audio,
		input:    input,
		progress: progress,
		screenW:  cfg.Display.ScreenWidth,
		screenH:  cfg.Display.ScreenHeight,
	}
	if err := p.loadLevel(opts.Start); err != nil {
		return nil, err
	}
	return p, nil
}

// loadLevel builds a fresh simulation for levels[i]
func (p *Playing) loadLevel(i int) error {
	name := p.levels[i]
	lc, err := p.opts.Loader.LoadLevel(name)
	if err != nil {
		return err
	}

	p.stopLoops()
	level := system.LoadLevel(lc, p.cfg)
	ctx := entity.LevelContext{World: 1, Stage: i + 1, Abilities: p.opts.Abilities}
	p.sim = system.NewSimulation(level, p.cfg, ctx, p.audio, p.camera)
	p.camera.SetOffset(0, p.sim.Player().View.OffsetY)
	p.levelIdx = i
	p.signText = make(map[*entity.Sign]*ebiten.Image)
	p.state = state.StatePlaying
	p.completeTimer = 0

	if p.opts.RecordPath != "" {
		p.saveRecording()
		p.recorder = replay.NewRecorder(name, p.opts.Abilities)
		log.Printf("Recording %s", name)
	}
	log.Printf("Level %d/%d: %s", i+1, len(p.levels), name)
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.drainReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.debug = !p.debug
	}

	switch p.state {
	case state.StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.togglePause()
			return nil, nil
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
			p.saveRecording()
		}
		return nil, p.updatePlaying()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.togglePause()
		}
	case state.StateLevelComplete:
		return nil, p.updateComplete()
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying() error {
	in, ok := p.input.GetInput()
	if !ok {
		log.Printf("Input exhausted at tick %d", p.sim.Tick())
		return ebiten.Termination
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	p.sim.Step(in)

	if p.sim.Complete() {
		p.completeLevel()
		if p.opts.ExitOnComplete {
			return ebiten.Termination
		}
	}
	return nil
}

func (p *Playing) updateComplete() error {
	if p.allClear {
		return nil
	}
	p.completeTimer++
	in, _ := p.input.GetInput()
	if p.completeTimer < completeTicks && !in.IsControl(system.ControlAction, system.StatePress) {
		return nil
	}
	return p.nextLevel()
}

func (p *Playing) togglePause() {
	switch {
	case p.state.Ticking():
		p.state = state.StatePaused
		p.stopLoops()
	case p.state == state.StatePaused:
		p.state = state.StatePlaying
	}
}

func (p *Playing) completeLevel() {
	p.state = state.StateLevelComplete
	p.stopLoops()
	p.saveRecording()
	p.recorder = nil

	name := p.levels[p.levelIdx]
	next := ""
	if p.levelIdx+1 < len(p.levels) {
		next = p.levels[p.levelIdx+1]
	} else {
		p.allClear = true
	}
	log.Printf("Level %s complete in %d ticks (%d deaths)", name, p.sim.Tick(), p.sim.Deaths())

	p.progress.Abilities = p.opts.Abilities
	p.progress.Complete(name, p.sim.Deaths(), next)
	if p.opts.Store == nil {
		return
	}
	if err := p.opts.Store.SaveProgress(p.progress); err != nil {
		log.Printf("Failed to save progress: %v", err)
	}
}

func (p *Playing) nextLevel() error {
	if p.levelIdx+1 >= len(p.levels) {
		return nil
	}
	if err := p.loadLevel(p.levelIdx + 1); err != nil {
		return fmt.Errorf("failed to load next level: %w", err)
	}
	return nil
}

// drainReload applies every pending config change without blocking
func (p *Playing) drainReload() {
	if p.opts.Reload == nil {
		return
	}
	for {
		select {
		case path, ok := <-p.opts.Reload:
			if !ok {
				p.opts.Reload = nil
				return
			}
			p.reload(path)
		default:
			return
		}
	}
}

func (p *Playing) reload(path string) {
	base := filepath.Base(path)
	switch {
	case base == "physics.yaml":
		cfg, err := p.opts.Loader.LoadPhysics()
		if err != nil {
			log.Printf("Reload failed, keeping old physics: %v", err)
			return
		}
		p.cfg = cfg
		p.sim.SetConfig(cfg)
		log.Printf("Reloaded %s", base)
	case strings.EqualFold(filepath.Ext(base), ".tmx"):
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name != p.levels[p.levelIdx] {
			return
		}
		if err := p.loadLevel(p.levelIdx); err != nil {
			log.Printf("Reload failed, keeping old level: %v", err)
			return
		}
		log.Printf("Reloaded level %s", name)
	}
}

// saveRecording writes the current recording, if any
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" || filename == "-" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

func (p *Playing) stopLoops() {
	p.audio.StopLoop(system.CueSquish)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	camX, camY := p.camera.Offset()
	for _, d := range p.drawables() {
		d.Draw(screen, camX, camY)
	}

	p.drawUI(screen)
	p.drawDialog(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED")
	case state.StateLevelComplete:
		if p.allClear {
			p.drawOverlay(screen, "ALL CLEAR")
		} else {
			p.drawOverlay(screen, "LEVEL COMPLETE")
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	msg := fmt.Sprintf("%s  deaths:%d", p.levels[p.levelIdx], p.sim.Deaths())
	if p.debug {
		if pl := p.sim.Player(); pl != nil {
			msg += fmt.Sprintf("\ntick:%d x:%.2f y:%.2f\nvx:%.2f vy:%.2f squish:%d %s",
				p.sim.Tick(), pl.X, pl.Y, pl.VX, pl.VY, pl.Squish(), pl.Anim)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}

// drawDialog shows an open orb message in a box along the bottom
func (p *Playing) drawDialog(screen *ebiten.Image) {
	d := p.sim.Dialog()
	if d == nil {
		return
	}
	const margin, boxH = 8, 40
	y := p.screenH - boxH - margin
	ebitenutil.DrawRect(screen, margin, float64(y), float64(p.screenW-2*margin), boxH, colorOverlay)
	msg := strings.ReplaceAll(d.Text, "|", "\n")
	if d.Delay <= 0 {
		msg += "\n[action]"
	}
	ebitenutil.DebugPrintAt(screen, msg, margin+4, y+2)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-len(text)*3, p.screenH/2-8)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.stopLoops()
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// State returns the scene state
func (p *Playing) State() state.GameState { return p.state }

// Simulation returns the running level
func (p *Playing) Simulation() *system.Simulation { return p.sim }

// LevelName returns the current level name
func (p *Playing) LevelName() string { return p.levels[p.levelIdx] }

// Progress returns the progress recorded so far
func (p *Playing) Progress() *save.Progress { return p.progress }

// Colors for rendering
var (
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorSolid   = color.RGBA{80, 80, 100, 255}
	colorPlat    = color.RGBA{120, 100, 70, 255}
	colorMover   = color.RGBA{110, 130, 170, 255}
	colorGate    = color.RGBA{170, 60, 170, 255}
	colorButton  = color.RGBA{230, 160, 40, 255}
	colorSaw     = color.RGBA{200, 50, 50, 255}
	colorKey     = color.RGBA{255, 215, 0, 255}
	colorExit    = color.RGBA{80, 220, 220, 255}
	colorOrb     = color.RGBA{180, 140, 255, 255}
	colorSign    = color.RGBA{150, 150, 170, 255}
	colorPlayer  = color.RGBA{100, 200, 100, 255}
	colorExplode = color.RGBA{255, 255, 255, 200}
	colorProbe   = color.RGBA{200, 200, 100, 200}
	colorOverlay = color.RGBA{0, 0, 0, 140}
)
