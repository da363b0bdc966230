package replay

import (
	"github.com/younwookim/squish/internal/application/system"
	"github.com/younwookim/squish/internal/domain/entity"
)

// Version is the replay file format version
const Version = "2.0"

// FrameInput records the held controls for a single frame.
// Press and release edges are derived on playback.
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	A bool `json:"a,omitempty"` // Action
	X bool `json:"x,omitempty"` // Reset
}

// NewFrameInput captures the held controls of one tick
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F: frame,
		L: in.Held.Has(system.ControlLeft),
		R: in.Held.Has(system.ControlRight),
		U: in.Held.Has(system.ControlUp),
		D: in.Held.Has(system.ControlDown),
		A: in.Held.Has(system.ControlAction),
		X: in.Held.Has(system.ControlReset),
	}
}

// Held returns the recorded controls as a set
func (fi FrameInput) Held() system.ControlSet {
	var s system.ControlSet
	for i, on := range [...]bool{fi.L, fi.R, fi.U, fi.D, fi.A, fi.X} {
		if on {
			s = s.With(system.Control(i))
		}
	}
	return s
}

// ReplayData contains all data needed to replay a level attempt
type ReplayData struct {
	Version   string           `json:"version"`
	Level     string           `json:"level"`
	Abilities entity.Abilities `json:"abilities"`
	StartTime string           `json:"startTime"`
	Frames    []FrameInput     `json:"frames"`
}
