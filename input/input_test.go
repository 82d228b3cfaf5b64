package input

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/thirdperson/component"
)

type fixedRotation mgl64.Vec3

func (r fixedRotation) ControlRotation() mgl64.Vec3 { return mgl64.Vec3(r) }

func TestMoveFromKeys(t *testing.T) {
	tests := []struct {
		name                       string
		forward, back, left, right bool
		want                       mgl64.Vec2
	}{
		{name: "none"},
		{name: "forward", forward: true, want: mgl64.Vec2{0, 1}},
		{name: "back left", back: true, left: true, want: mgl64.Vec2{-1, -1}},
		{name: "opposites cancel", forward: true, back: true, left: true, right: true},
		{name: "right", right: true, want: mgl64.Vec2{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, moveFromKeys(tt.forward, tt.back, tt.left, tt.right))
		})
	}
}

func TestMoveFromStick(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{}, moveFromStick(0.1, 0.2))
	assert.Equal(t, mgl64.Vec2{0, 1}, moveFromStick(0, -1), "stick up is forward")
	assert.Equal(t, mgl64.Vec2{0.5, 0}, moveFromStick(0.5, 0))
}

func TestKeyboardControlRotation(t *testing.T) {
	k := NewKeyboard(nil)
	assert.Equal(t, mgl64.Vec3{}, k.GetControlRotation())

	k.SetRotationSource(fixedRotation{10, 45, 0})
	assert.Equal(t, mgl64.Vec3{10, 45, 0}, k.GetControlRotation())
}

func TestNewScriptRejectsEmptySource(t *testing.T) {
	_, err := NewScript("empty", []byte("  \n"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoScript))
}

func TestNewScriptCompileError(t *testing.T) {
	_, err := NewScript("broken", []byte("move_x = ("), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestScriptDrivesInput(t *testing.T) {
	src := `
move_y = 1.0
if tick >= 2 {
	jump = true
}
yaw = dt * 10
`
	s, err := NewScript("walk", []byte(src), nil)
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.5))
	assert.Equal(t, mgl64.Vec2{0, 1}, s.GetMoveInput())
	assert.False(t, s.IsJumping())
	yaw, pitch := s.Look()
	assert.Equal(t, 5.0, yaw)
	assert.Equal(t, 0.0, pitch)

	require.NoError(t, s.Advance(0.5))
	assert.False(t, s.IsJumping())
	require.NoError(t, s.Advance(0.5))
	assert.True(t, s.IsJumping())
	assert.Equal(t, 3, s.Tick())

	// no rotation source: look deltas accumulate
	assert.Equal(t, mgl64.Vec3{0, 15, 0}, s.GetControlRotation())

	s.SetRotationSource(fixedRotation{0, 90, 0})
	assert.Equal(t, mgl64.Vec3{0, 90, 0}, s.GetControlRotation())
}

func TestScriptOutputsResetEachTick(t *testing.T) {
	src := `
if tick == 0 {
	jump = true
	move_x = -1
}
`
	s, err := NewScript("once", []byte(src), nil)
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.1))
	assert.True(t, s.IsJumping())
	assert.Equal(t, mgl64.Vec2{-1, 0}, s.GetMoveInput())

	require.NoError(t, s.Advance(0.1))
	assert.False(t, s.IsJumping())
	assert.Equal(t, mgl64.Vec2{}, s.GetMoveInput())
}

func TestScriptStatePersists(t *testing.T) {
	src := `
count := state.count
if is_undefined(count) {
	count = 0
}
state.count = count + 1
`
	s, err := NewScript("counter", []byte(src), nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Advance(0.1))
	}
	v, ok := s.State("count")
	require.True(t, ok)
	assert.EqualValues(t, 3, v)

	_, ok = s.State("missing")
	assert.False(t, ok)
}

func TestScriptRuntimeErrorStopsInput(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	src := `
move_y = 1.0
if tick == 1 {
	move_x = 1 / (tick - 1)
}
`
	s, err := NewScript("div", []byte(src), zap.New(core))
	require.NoError(t, err)

	require.NoError(t, s.Advance(0.1))
	assert.Equal(t, mgl64.Vec2{0, 1}, s.GetMoveInput())

	require.Error(t, s.Advance(0.1))
	assert.Equal(t, mgl64.Vec2{}, s.GetMoveInput())
	assert.Equal(t, 1, s.Tick(), "failed ticks are not counted")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "div", logs.All()[0].ContextMap()["script"])
}

var _ component.InputSource = (*Script)(nil)
var _ component.InputSource = (*Keyboard)(nil)
