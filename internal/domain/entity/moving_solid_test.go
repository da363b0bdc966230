package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanceAndMove(m *MovingSolid) PathStep {
	out := m.Advance()
	if out.Move {
		m.MoveX(out.DX)
		m.MoveY(out.DY)
	}
	return out
}

func TestNewMovingSolid_PlacedAtFirstWaypoint(t *testing.T) {
	m := NewMovingSolid(20, 4, []Waypoint{{10, 50}, {30, 50}}, 10, 0)
	assert.Equal(t, NewAABB(10, 50, 20, 4), m.Bounds())
	assert.True(t, m.Forwards())
}

func TestMovingSolid_LinearSteps(t *testing.T) {
	m := NewMovingSolid(20, 4, []Waypoint{{0, 100}, {20, 100}}, 10, 0)

	for i := 1; i <= 10; i++ {
		out := advanceAndMove(m)
		require.True(t, out.Move)
		assert.InDelta(t, 2.0, out.DX, 1e-6, "step %d", i)
		assert.Zero(t, out.DY)
	}
	assert.InDelta(t, 20.0, m.Bounds().X, 1e-6)
}

func TestMovingSolid_PingPong(t *testing.T) {
	m := NewMovingSolid(10, 10, []Waypoint{{0, 0}, {0, 10}, {0, 20}}, 2, 0)

	var ended []int
	for tick := 0; tick < 12; tick++ {
		out := advanceAndMove(m)
		if out.SectionEnded {
			ended = append(ended, m.Section())
		}
	}
	// 3 ticks per section: 2 moving plus the section change tick
	assert.Equal(t, []int{1, 2, 1, 0}, ended)
	assert.True(t, m.Forwards())
	assert.InDelta(t, 0.0, m.Bounds().Y, 1e-6)
}

func TestMovingSolid_DelayKeepsVelocityBriefly(t *testing.T) {
	m := NewMovingSolid(10, 10, []Waypoint{{0, 0}, {10, 0}}, 2, 10)
	m.XVelocity = 5

	// finish the section
	advanceAndMove(m)
	advanceAndMove(m)
	out := m.Advance()
	require.True(t, out.SectionEnded)
	assert.False(t, out.Move)
	assert.Equal(t, 10, m.DelayTimer)
	assert.Equal(t, VelocityDelay, m.VelocityDelay)

	for i := 0; i < VelocityDelay; i++ {
		m.Advance()
		assert.Equal(t, 5.0, m.XVelocity, "tick %d", i)
	}
	m.Advance()
	assert.Zero(t, m.XVelocity)
}

func TestMovingSolid_DegeneratePath(t *testing.T) {
	tests := []struct {
		name string
		path []Waypoint
	}{
		{"no waypoints", nil},
		{"single waypoint", []Waypoint{{5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMovingSolid(10, 10, tt.path, 5, 0)
			for i := 0; i < 20; i++ {
				out := m.Advance()
				assert.False(t, out.Move)
				assert.False(t, out.SectionEnded)
			}
			assert.Equal(t, 0, m.Step())
		})
	}
}

func TestMovingSolid_NonPositiveStepsTreatedAsOne(t *testing.T) {
	m := NewMovingSolid(10, 10, []Waypoint{{0, 0}, {8, 0}}, 0, 0)
	assert.Equal(t, 1, m.Steps)

	out := advanceAndMove(m)
	require.True(t, out.Move)
	assert.InDelta(t, 8.0, out.DX, 1e-6)
}
