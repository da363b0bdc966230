package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextInputState(t *testing.T) {
	none := ControlSet(0)
	action := none.With(ControlAction)
	both := action.With(ControlLeft)

	tests := []struct {
		name      string
		prev      ControlSet
		held      ControlSet
		wantPress ControlSet
		wantUp    ControlSet
	}{
		{"nothing", none, none, none, none},
		{"press", none, action, action, none},
		{"hold", action, action, none, none},
		{"release", action, none, none, action},
		{"press second while holding", action, both, none.With(ControlLeft), none},
		{"swap", none.With(ControlLeft), action, action, none.With(ControlLeft)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NextInputState(tt.prev, tt.held)
			assert.Equal(t, tt.held, in.Held)
			assert.Equal(t, tt.wantPress, in.Pressed)
			assert.Equal(t, tt.wantUp, in.Released)
		})
	}
}

func TestInputState_IsControl(t *testing.T) {
	in := NextInputState(ControlSet(0).With(ControlUp), ControlSet(0).With(ControlAction))

	assert.True(t, in.IsControl(ControlAction, StatePress))
	assert.True(t, in.IsControl(ControlAction, StateDown))
	assert.False(t, in.IsControl(ControlAction, StateUp))

	assert.False(t, in.IsControl(ControlUp, StatePress))
	assert.False(t, in.IsControl(ControlUp, StateDown))
	assert.True(t, in.IsControl(ControlUp, StateUp))

	assert.False(t, in.IsControl(ControlAction, ControlState(99)))
}

func TestControlSet(t *testing.T) {
	var s ControlSet
	for c := Control(0); c < controlCount; c++ {
		assert.False(t, s.Has(c))
	}
	s = s.With(ControlReset).With(ControlLeft)
	assert.True(t, s.Has(ControlReset))
	assert.True(t, s.Has(ControlLeft))
	assert.False(t, s.Has(ControlRight))
	assert.Equal(t, s, s.With(ControlLeft), "With is idempotent")
}

func TestControl_String(t *testing.T) {
	assert.Equal(t, "Action", ControlAction.String())
	assert.Equal(t, "Reset", ControlReset.String())
	assert.Equal(t, "Unknown", controlCount.String())
}

func TestDefaultBindings_CoverEveryControl(t *testing.T) {
	for c := Control(0); c < controlCount; c++ {
		assert.NotEmpty(t, DefaultBindings[c], c.String())
	}
}
