package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/thirdperson/component"
)

const arenaDt = 1.0 / 60

// arenaRun steps w and counts the ticks spent airborne after the player
// first touched ground.
type arenaRun struct {
	grounded bool
	airborne int
}

func (r *arenaRun) step(w *World) {
	w.FixedUpdate(arenaDt)
	w.Update(arenaDt)
	switch w.Player.State() {
	case component.OnGround:
		r.grounded = true
	case component.InAir:
		if r.grounded {
			r.airborne++
		}
	}
}

func spawnInArena(t *testing.T, cfg component.Movement, in component.InputSource) *World {
	t.Helper()
	w, err := NewWorld("arena", nil)
	require.NoError(t, err)
	_, err = w.SpawnPlayer(cfg, in)
	require.NoError(t, err)
	return w
}

func TestArenaIdleStaysGrounded(t *testing.T) {
	w := spawnInArena(t, component.DefaultMovement(), &fakeInput{})

	var run arenaRun
	for i := 0; i < 180; i++ {
		run.step(w)
	}

	require.True(t, run.grounded, "never found the floor")
	assert.Zero(t, run.airborne)
	assert.Equal(t, component.OnGround, w.Player.State())
	pos := w.Player.Position()
	assert.InDelta(t, 1.0, pos.Y(), 0.1)
	assert.InDelta(t, 0, pos.X(), 1e-3)
}

func TestArenaWalksUpStep(t *testing.T) {
	cfg := component.DefaultMovement()
	cfg.OnGroundMaxSpeed = 2
	in := &fakeInput{move: mgl64.Vec2{1, 0}}
	w := spawnInArena(t, cfg, in)

	var run arenaRun
	for i := 0; i < 600 && w.Player.Position().X() < 3.5; i++ {
		run.step(w)
	}
	require.GreaterOrEqual(t, w.Player.Position().X(), 3.5, "never reached the step")

	in.move = mgl64.Vec2{}
	for i := 0; i < 60; i++ {
		run.step(w)
	}

	// the climb may lose the ground for a tick where the capsule meets the edge
	assert.LessOrEqual(t, run.airborne, 2)
	assert.Equal(t, component.OnGround, w.Player.State())
	pos := w.Player.Position()
	assert.Greater(t, pos.X(), 3.2)
	assert.Less(t, pos.X(), 4.0, "stopped on the first step")
	assert.Greater(t, pos.Y(), 1.1, "raised onto the step")
	assert.Less(t, pos.Y(), 1.35)
}

func TestArenaRidesPlatform(t *testing.T) {
	w := spawnInArena(t, component.DefaultMovement(), &fakeInput{})
	require.NotEmpty(t, w.Space.Platforms())
	platform := w.Space.Platforms()[0]

	platformX := func() float64 {
		min, max := platform.Bounds()
		return (min.X() + max.X()) / 2
	}
	w.Player.SetPosition(mgl64.Vec3{platformX(), 3, 0})

	var run arenaRun
	startX := platformX()
	maxOffset := 0.0
	reversed := false
	for i := 0; i < 300; i++ {
		run.step(w)
		if platform.Velocity().X() < 0 {
			reversed = true
		}
		if run.grounded {
			d := w.Player.Position().X() - platformX()
			if d < 0 {
				d = -d
			}
			if d > maxOffset {
				maxOffset = d
			}
		}
	}

	require.True(t, run.grounded)
	require.True(t, reversed, "platform should turn around within the run")
	assert.Zero(t, run.airborne)
	assert.Equal(t, component.OnGround, w.Player.State())
	assert.Less(t, maxOffset, 0.75, "player tracks the platform")
	assert.NotEqual(t, startX, w.Player.Position().X())
	assert.InDelta(t, 2.95, w.Player.Position().Y(), 0.15)
}
