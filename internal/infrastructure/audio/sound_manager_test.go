package audio

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/squish/internal/application/system"
)

var _ system.Audio = (*SoundManager)(nil)

// newTestManager returns a manager whose mixer is never attached to a speaker
func newTestManager() *SoundManager {
	sm := NewSoundManager()
	sm.initialized = true
	return sm
}

func TestSoundManager_UninitializedIsSilent(t *testing.T) {
	sm := NewSoundManager()
	sm.Play(system.CueJump)
	sm.StartLoop(system.CueSquish)

	assert.Equal(t, 0, sm.mixer.Len())
	assert.False(t, sm.Looping(system.CueSquish))
}

func TestSoundManager_PlayAddsStreamer(t *testing.T) {
	sm := newTestManager()
	sm.Play(system.CueJump)
	sm.Play(system.CueLand)
	assert.Equal(t, 2, sm.mixer.Len())

	sm.Play(system.Cue(99))
	assert.Equal(t, 2, sm.mixer.Len(), "unknown cue is ignored")
}

func TestSoundManager_Loop(t *testing.T) {
	sm := newTestManager()

	sm.StartLoop(system.CueSquish)
	sm.StartLoop(system.CueSquish)
	assert.True(t, sm.Looping(system.CueSquish))
	assert.Equal(t, 1, sm.mixer.Len(), "an active loop is not restarted")

	sm.StopLoop(system.CueSquish)
	assert.False(t, sm.Looping(system.CueSquish))

	sm.StartLoop(system.CueSquish)
	assert.True(t, sm.Looping(system.CueSquish))
}

func TestSoundManager_Cleanup(t *testing.T) {
	sm := newTestManager()
	sm.StartLoop(system.CueSquish)
	sm.Play(system.CueExit)

	sm.Cleanup()
	assert.Equal(t, 0, sm.mixer.Len())
	assert.False(t, sm.Looping(system.CueSquish))
	sm.Play(system.CueExit)
	assert.Equal(t, 0, sm.mixer.Len())
}

// streamLikeSpeaker pulls samples the way the speaker goroutine does
func streamLikeSpeaker(sm *SoundManager, stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([][2]float64, 512)
	for {
		select {
		case <-stop:
			return
		default:
		}
		speaker.Lock()
		sm.volume.Stream(buf)
		speaker.Unlock()
	}
}

func TestSoundManager_ConcurrentWithSpeaker(t *testing.T) {
	tests := []struct {
		name string
		run  func(sm *SoundManager)
	}{
		{"play", func(sm *SoundManager) { sm.Play(system.CueJump) }},
		{"loop", func(sm *SoundManager) {
			sm.StartLoop(system.CueSquish)
			sm.StopLoop(system.CueSquish)
		}},
		{"cleanup", func(sm *SoundManager) {
			sm.StartLoop(system.CueSquish)
			sm.Cleanup()
			sm.initialized = true
		}},
		{"mute", func(sm *SoundManager) {
			sm.SetMuted(true)
			sm.SetMuted(false)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newTestManager()
			stop := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(1)
			go streamLikeSpeaker(sm, stop, &wg)

			assert.NotPanics(t, func() {
				for i := 0; i < 200; i++ {
					tt.run(sm)
				}
			})
			close(stop)
			wg.Wait()
			assert.False(t, sm.Looping(system.CueSquish))
		})
	}
}

func TestCueTones_CoverEveryCue(t *testing.T) {
	for c := system.CueJump; c <= system.CueExit; c++ {
		def, ok := cueTones[c]
		require.True(t, ok, c.String())
		assert.Positive(t, def.duration, c.String())
		assert.LessOrEqual(t, def.volume, 1.0)
	}
}

func TestTone_OneShotEnds(t *testing.T) {
	def := cueTones[system.CueLand]
	g := newTone(sampleRate, def)
	want := sampleRate.N(def.duration)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := g.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, math.Abs(buf[i][0]), def.volume)
			assert.Equal(t, buf[i][0], buf[i][1])
		}
		if !ok {
			break
		}
		require.Less(t, total, want*2, "tone must end")
	}
	assert.Equal(t, want, total)
	assert.NoError(t, g.Err())
}

func TestTone_RepeatNeverEnds(t *testing.T) {
	def := cueTones[system.CueSquish]
	def.repeat = true
	g := newTone(sampleRate, def)

	buf := make([][2]float64, 1024)
	for i := 0; i < 50; i++ {
		n, ok := g.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}

func TestTone_TakeLimitsLength(t *testing.T) {
	def := toneDef{freq: 440, duration: 10 * time.Millisecond, volume: 0.5}
	s := beep.Take(100, newTone(sampleRate, def))

	buf := make([][2]float64, 256)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 100, n)
}
