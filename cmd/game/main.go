package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/squish/internal/application/game"
	"github.com/younwookim/squish/internal/application/replay"
	"github.com/younwookim/squish/internal/application/scene/playing"
	"github.com/younwookim/squish/internal/application/system"
	"github.com/younwookim/squish/internal/domain/entity"
	"github.com/younwookim/squish/internal/infrastructure/audio"
	"github.com/younwookim/squish/internal/infrastructure/config"
	"github.com/younwookim/squish/internal/infrastructure/save"
)

const appName = "squish"

type options struct {
	configDir string
	level     string
	watch     bool
	record    string
	replay    string
	headless  bool
	mute      bool
	all       bool
	noSave    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&opts.level, "level", "", "Start at this level")
	flag.BoolVar(&opts.watch, "watch", false, "Hot reload physics.yaml and levels (needs -config)")
	flag.StringVar(&opts.record, "record", "", "Record input to file (\"-\" picks a name)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded replay")
	flag.BoolVar(&opts.headless, "headless", false, "Run -replay without a window and print the result")
	flag.BoolVar(&opts.mute, "mute", false, "Disable sound")
	flag.BoolVar(&opts.all, "all", false, "Unlock every squish ability")
	flag.BoolVar(&opts.noSave, "nosave", false, "Do not read or write progress")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("no levels found in %s", loader.BasePath())
	}

	var data *replay.ReplayData
	if opts.replay != "" {
		data, err = replay.LoadReplay(opts.replay)
		if err != nil {
			return err
		}
		if opts.headless {
			res, err := runHeadless(loader, cfg.Physics, data)
			if err != nil {
				return err
			}
			log.Printf("Replay %s: %d ticks, %d deaths, complete=%v, player (%.2f, %.2f) squish %d",
				data.Level, res.Ticks, res.Deaths, res.Complete, res.X, res.Y, res.Squish)
			return nil
		}
	}

	popts := playing.Options{
		Loader:     loader,
		Physics:    cfg.Physics,
		Levels:     cfg.Levels,
		RecordPath: opts.record,
	}

	var progress *save.Progress
	if !opts.noSave && data == nil {
		store, err := save.Open(appName)
		if err != nil {
			log.Printf("Progress will not be saved: %v", err)
		} else {
			popts.Store = store
			progress, err = store.LoadProgress()
			if err != nil {
				log.Printf("Ignoring saved progress: %v", err)
				progress = nil
			}
		}
	}
	if progress == nil {
		progress = &save.Progress{}
	}
	popts.Progress = progress
	popts.Abilities = progress.Abilities
	if opts.all {
		popts.Abilities = entity.AllAbilities()
	}

	start := opts.level
	if start == "" {
		start = progress.Level
	}
	if data != nil {
		start = data.Level
		popts.Abilities = data.Abilities
		popts.Input = replay.NewReplayer(*data)
		popts.ExitOnComplete = true
		popts.RecordPath = ""
	}
	popts.Start, err = levelIndex(cfg.Levels, start)
	if err != nil {
		return err
	}

	if !opts.mute {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer sm.Cleanup()
			popts.Audio = sm
		}
	}

	if opts.watch {
		if opts.configDir == "" {
			log.Printf("-watch needs -config, hot reload disabled")
		} else {
			w, err := config.NewWatcher(opts.configDir, filepath.Join(opts.configDir, "levels"))
			if err != nil {
				log.Printf("Hot reload disabled: %v", err)
			} else {
				defer func() { _ = w.Close() }()
				go func() {
					for err := range w.Errors {
						log.Printf("Watcher: %v", err)
					}
				}()
				popts.Reload = w.Events
				log.Printf("Watching %s", opts.configDir)
			}
		}
	}

	scene, err := playing.New(popts)
	if err != nil {
		return err
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Squish")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// newLoader reads from dir, or from the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// levelIndex finds name in levels. An empty name is the first level.
func levelIndex(levels []string, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, l := range levels {
		if l == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", name)
}

// runHeadless replays data against its level without opening a window
func runHeadless(loader *config.Loader, cfg *config.PhysicsConfig, data *replay.ReplayData) (replay.Result, error) {
	lc, err := loader.LoadLevel(data.Level)
	if err != nil {
		return replay.Result{}, err
	}
	level := system.LoadLevel(lc, cfg)
	ctx := entity.LevelContext{World: 1, Stage: 1, Abilities: data.Abilities}
	sim := system.NewSimulation(level, cfg, ctx, nil, nil)
	return replay.Run(sim, replay.NewReplayer(*data)), nil
}
