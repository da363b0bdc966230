package config

// LevelConfig is a level's object layout, decoded from a TMX map
type LevelConfig struct {
	Name      string
	Width     float64
	Height    float64
	Spawn     PositionConfig
	ViewStart *PositionConfig

	Solids    []RectConfig
	Platforms []RectConfig
	Movers    []MoverConfig
	Buttons   []ButtonConfig
	Saws      []PositionConfig
	Keys      []KeyConfig
	Gates     []GateConfig
	Exits     []PositionConfig
	Signs     []SignConfig
	Orbs      []OrbConfig
}

type PositionConfig struct {
	X float64
	Y float64
}

type RectConfig struct {
	X, Y          float64
	Width, Height float64
}

type MoverConfig struct {
	Width, Height float64
	Path          []PositionConfig
	Steps         int
	Delay         int
	Launch        bool
	Button        string
}

type ButtonConfig struct {
	Rect RectConfig
	ID   string
}

type KeyConfig struct {
	Rect RectConfig
	ID   string
}

type GateConfig struct {
	Rect RectConfig
	Keys string
}

type SignConfig struct {
	Rect RectConfig
	Text string
}

type OrbConfig struct {
	Pos  PositionConfig
	Text string
}
