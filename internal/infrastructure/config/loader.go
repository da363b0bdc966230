package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

const (
	physicsFile = "physics.yaml"
	levelsDir   = "levels"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Levels  []string
}

// Loader loads game configuration from YAML and TMX files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string { return l.basePath }

// LoadPhysics loads physics.yaml on top of the defaults
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, physicsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", physicsFile, err)
	}
	return ParsePhysics(data)
}

// ParsePhysics decodes physics YAML on top of the defaults
func ParsePhysics(data []byte) (*PhysicsConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", physicsFile, err)
	}
	return cfg, nil
}

// ListLevels returns the level names found under levels/, sorted
func (l *Loader) ListLevels() ([]string, error) {
	matches, err := fs.Glob(l.fsys, levelsDir+"/*.tmx")
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadLevel loads levels/<name>.tmx
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	tmxPath := levelsDir + "/" + name + ".tmx"
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	level, err := decodeLevel(levelMap)
	if err != nil {
		return nil, fmt.Errorf("failed to decode level %s: %w", name, err)
	}
	level.Name = name
	return level, nil
}

// LoadAll loads physics and the level list
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	levels, err := l.ListLevels()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Levels:  levels,
	}, nil
}

func objectKind(o *tiled.Object) string {
	kind := o.Class
	if kind == "" {
		kind = o.Type //nolint:staticcheck // TMX uses type= attribute
	}
	return kind
}

func rectOf(o *tiled.Object) RectConfig {
	return RectConfig{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

func centreOf(o *tiled.Object) PositionConfig {
	return PositionConfig{X: o.X + o.Width/2, Y: o.Y + o.Height/2}
}

func decodeLevel(levelMap *tiled.Map) (*LevelConfig, error) {
	level := &LevelConfig{
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}

	byID := make(map[uint32]*tiled.Object)
	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			byID[o.ID] = o
		}
	}

	hasSpawn := false
	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			switch objectKind(o) {
			case "Player":
				// foot point: bottom-centre, one unit above the object's bottom edge
				level.Spawn = PositionConfig{X: o.X + o.Width/2, Y: o.Y + o.Height - 1}
				hasSpawn = true
			case "ViewStart":
				level.ViewStart = &PositionConfig{X: o.X, Y: o.Y}
			case "Solid":
				level.Solids = append(level.Solids, rectOf(o))
			case "Platform":
				level.Platforms = append(level.Platforms, rectOf(o))
			case "MovingSolid":
				level.Movers = append(level.Movers, decodeMover(o, byID))
			case "Button":
				level.Buttons = append(level.Buttons, ButtonConfig{Rect: rectOf(o), ID: o.Properties.GetString("id")})
			case "Saw":
				level.Saws = append(level.Saws, centreOf(o))
			case "Key":
				level.Keys = append(level.Keys, KeyConfig{Rect: rectOf(o), ID: o.Properties.GetString("id")})
			case "Gate":
				level.Gates = append(level.Gates, GateConfig{Rect: rectOf(o), Keys: o.Properties.GetString("keys")})
			case "Exit":
				level.Exits = append(level.Exits, centreOf(o))
			case "Sign":
				level.Signs = append(level.Signs, SignConfig{Rect: rectOf(o), Text: o.Properties.GetString("text")})
			case "Orb":
				level.Orbs = append(level.Orbs, OrbConfig{Pos: centreOf(o), Text: o.Properties.GetString("text")})
			}
		}
	}
	if !hasSpawn {
		return nil, fmt.Errorf("no Player object")
	}
	return level, nil
}

func decodeMover(o *tiled.Object, byID map[uint32]*tiled.Object) MoverConfig {
	m := MoverConfig{
		Width:  o.Width,
		Height: o.Height,
		Steps:  1,
		Launch: o.Properties.GetBool("launch"),
		Button: o.Properties.GetString("button"),
		Path:   []PositionConfig{{X: o.X, Y: o.Y}},
	}
	pathObj, ok := byID[uint32(o.Properties.GetInt("path"))]
	if !ok || len(pathObj.PolyLines) == 0 {
		return m
	}
	polyline := pathObj.PolyLines[0]
	if polyline.Points == nil || len(*polyline.Points) < 2 {
		return m
	}
	m.Path = m.Path[:0]
	for _, point := range *polyline.Points {
		m.Path = append(m.Path, PositionConfig{X: pathObj.X + point.X, Y: pathObj.Y + point.Y})
	}
	m.Steps = pathObj.Properties.GetInt("steps")
	m.Delay = pathObj.Properties.GetInt("delay")
	return m
}
