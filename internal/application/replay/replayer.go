package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/squish/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
	prev  system.ControlSet
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	held := r.data.Frames[r.frame].Held()
	in := system.NextInputState(r.prev, held)
	r.prev = held
	r.frame++

	return in, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Data returns the replay being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.prev = 0
}

// Result is the outcome of a headless replay
type Result struct {
	Ticks    int
	Deaths   int
	Complete bool
	X, Y     float64
	Squish   int
}

// Run feeds every recorded frame to the simulation without rendering.
// It stops early if the level is completed.
func Run(sim *system.Simulation, r *Replayer) Result {
	for !sim.Complete() {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		sim.Step(in)
	}
	p := sim.Player()
	res := Result{
		Ticks:    sim.Tick(),
		Deaths:   sim.Deaths(),
		Complete: sim.Complete(),
	}
	if p != nil {
		res.X, res.Y, res.Squish = p.X, p.Y, p.Squish()
	}
	return res
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int, level string) ReplayData {
	data := ReplayData{
		Version:   Version,
		Level:     level,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}
