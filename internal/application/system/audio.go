package system

// Cue is a sound effect
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueSquish // looped while a held squish succeeds
	CueCrush
	CueLaunch
	CueButton
	CueKey
	CueGate
	CueExit
)

// String returns the cue name
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueSquish:
		return "squish"
	case CueCrush:
		return "crush"
	case CueLaunch:
		return "launch"
	case CueButton:
		return "button"
	case CueKey:
		return "key"
	case CueGate:
		return "gate"
	case CueExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Audio plays sound cues. Calls never block.
type Audio interface {
	Play(c Cue)
	StartLoop(c Cue)
	StopLoop(c Cue)
}

// NopAudio discards every cue
type NopAudio struct{}

func (NopAudio) Play(Cue)      {}
func (NopAudio) StartLoop(Cue) {}
func (NopAudio) StopLoop(Cue)  {}

// Camera receives the view offset
type Camera interface {
	SetOffset(x, y float64)
	Offset() (x, y float64)
}

// FixedCamera is a plain offset holder
type FixedCamera struct {
	X, Y float64
}

// SetOffset implements Camera
func (c *FixedCamera) SetOffset(x, y float64) { c.X, c.Y = x, y }

// Offset implements Camera
func (c *FixedCamera) Offset() (float64, float64) { return c.X, c.Y }
