// Package audio plays the game's sound cues through beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/squish/internal/application/system"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager implements system.Audio with generated tones.
// The speaker goroutine streams the mixer, so mixer and loop control
// changes happen under speaker.Lock; mu guards the loops map.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	loops       map[system.Cue]*beep.Ctrl
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
		loops:  make(map[system.Cue]*beep.Ctrl),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	for _, ctrl := range sm.loops {
		ctrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.loops = make(map[system.Cue]*beep.Ctrl)
	sm.initialized = false
}

// SetMuted silences or restores every cue
func (sm *SoundManager) SetMuted(muted bool) {
	speaker.Lock()
	sm.volume.Silent = muted
	speaker.Unlock()
}

// Play starts a one-shot cue
func (sm *SoundManager) Play(c system.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	def, ok := cueTones[c]
	if !ok {
		return
	}
	s := beep.Take(sampleRate.N(def.duration), newTone(sampleRate, def))
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// StartLoop starts a looping cue. A cue already looping is left alone.
func (sm *SoundManager) StartLoop(c system.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if ctrl, ok := sm.loops[c]; ok && !ctrl.Paused {
		return
	}
	def, ok := cueTones[c]
	if !ok {
		return
	}
	def.repeat = true
	ctrl := &beep.Ctrl{Streamer: newTone(sampleRate, def)}
	sm.loops[c] = ctrl
	speaker.Lock()
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopLoop pauses a looping cue
func (sm *SoundManager) StopLoop(c system.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ctrl, ok := sm.loops[c]; ok {
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
	}
}

// Looping reports whether a cue is currently looping
func (sm *SoundManager) Looping(c system.Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctrl, ok := sm.loops[c]
	return ok && !ctrl.Paused
}
