package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig   `yaml:"display"`
	Physics  PhysicsSettings `yaml:"physics"`
	Player   PlayerConfig    `yaml:"player"`
	Movement MovementConfig  `yaml:"movement"`
	Jump     JumpConfig      `yaml:"jump"`
	Scale    ScaleConfig     `yaml:"scale"`
	Platform PlatformConfig  `yaml:"platform"`
	View     ViewConfig      `yaml:"view"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

type PhysicsSettings struct {
	Gravity     float64 `yaml:"gravity"`     // units/tick²
	MaxVertical float64 `yaml:"maxVertical"` // units/tick
}

type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxJumps     int     `yaml:"maxJumps"`
	LandTicks    int     `yaml:"landTicks"`
	ExplodeTicks int     `yaml:"explodeTicks"`
}

type MovementConfig struct {
	Push              float64 `yaml:"push"`
	MaxHorizontal     float64 `yaml:"maxHorizontal"`
	Friction          float64 `yaml:"friction"`
	AirFrictionFactor float64 `yaml:"airFrictionFactor"`
}

type JumpConfig struct {
	Speed             float64 `yaml:"speed"`      // initial VY, negative is up
	FloatSpeed        float64 `yaml:"floatSpeed"` // added per tick while held
	FloatTicks        int     `yaml:"floatTicks"`
	CoyoteTicks       int     `yaml:"coyoteTicks"`
	RejumpGrace       int     `yaml:"rejumpGrace"`
	SlowFallDrag      float64 `yaml:"slowFallDrag"`
	HighJumpBoost     float64 `yaml:"highJumpBoost"`
	PlatformDropNudge float64 `yaml:"platformDropNudge"`
}

type ScaleConfig struct {
	Step float64 `yaml:"step"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

type PlatformConfig struct {
	LaunchFactor  float64 `yaml:"launchFactor"`
	PushTolerance float64 `yaml:"pushTolerance"`
}

type ViewConfig struct {
	ScrollTicks int `yaml:"scrollTicks"`
}

// Default returns the built-in tuning. physics.yaml overrides it field by field.
func Default() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{ScreenWidth: 320, ScreenHeight: 208, Scale: 4, Framerate: 60},
		Physics: PhysicsSettings{Gravity: 0.25, MaxVertical: 10},
		Player:  PlayerConfig{Width: 10, Height: 10, MaxJumps: 1, LandTicks: 6, ExplodeTicks: 30},
		Movement: MovementConfig{
			Push:              0.3,
			MaxHorizontal:     2,
			Friction:          0.15,
			AirFrictionFactor: 0.2,
		},
		Jump: JumpConfig{
			Speed:             -3,
			FloatSpeed:        -0.15,
			FloatTicks:        12,
			CoyoteTicks:       6,
			RejumpGrace:       4,
			SlowFallDrag:      0.5,
			HighJumpBoost:     0.5,
			PlatformDropNudge: 2,
		},
		Scale:    ScaleConfig{Step: 0.1, Min: 0.2, Max: 1.8},
		Platform: PlatformConfig{LaunchFactor: 3, PushTolerance: 3},
		View:     ViewConfig{ScrollTicks: 26},
	}
}
