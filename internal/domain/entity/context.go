package entity

// Abilities are the squish powers unlocked so far
type Abilities struct {
	SquishUp   bool `json:"squishUp"`
	SquishDown bool `json:"squishDown"`
	UnSquish   bool `json:"unSquish"`
	SlowFall   bool `json:"slowFall"`
	HighJump   bool `json:"highJump"`
}

// AllAbilities returns every ability unlocked
func AllAbilities() Abilities {
	return Abilities{SquishUp: true, SquishDown: true, UnSquish: true, SlowFall: true, HighJump: true}
}

// LevelContext is the read-only progression state handed to every tick
type LevelContext struct {
	World     int
	Stage     int
	Abilities Abilities
}
