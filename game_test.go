package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/input"
	"github.com/milk9111/thirdperson/prefabs"
)

func TestScriptedGameRuns(t *testing.T) {
	g, err := NewGame(Options{Level: "arena", Script: "walk_and_jump.tengo"}, nil)
	require.NoError(t, err)
	defer g.Close()

	start := g.player.Position()
	for i := 0; i < 120; i++ {
		g.step(1.0/60, controls{})
	}

	assert.Equal(t, 120, g.script.Tick())
	pos := g.player.Position()
	assert.NotEqual(t, start, pos)
	assert.Greater(t, pos.Y(), 0.0, "stays above the floor")
	assert.Less(t, pos.Y(), 10.0)
}

func TestGameToggleDisable(t *testing.T) {
	g, err := NewGame(Options{Level: "flat"}, nil)
	require.NoError(t, err)
	defer g.Close()

	g.step(1.0/60, controls{})
	require.NotEqual(t, component.Disabled, g.player.State())

	g.step(1.0/60, controls{toggleDisable: true})
	assert.Equal(t, component.Disabled, g.player.State())
	assert.Equal(t, 0.0, g.player.Velocity().Len())

	g.step(1.0/60, controls{toggleDisable: true})
	assert.NotEqual(t, component.Disabled, g.player.State())
}

func TestGameReloadsCharacterSpec(t *testing.T) {
	g, err := NewGame(Options{Level: "flat"}, nil)
	require.NoError(t, err)
	defer g.Close()

	w, err := prefabs.NewWatcher(t.TempDir())
	require.NoError(t, err)
	g.watcher = w

	cfg := g.player.Movement()
	cfg.JumpSpeed = 99
	g.player.SetMovement(cfg)

	w.Events <- "prefabs/" + prefabs.CharacterFile
	g.reload()

	want, err := prefabs.LoadCharacterSpec()
	require.NoError(t, err)
	assert.Equal(t, want.Movement, g.player.Movement())
}

func TestNewGameUnknownScript(t *testing.T) {
	_, err := NewGame(Options{Level: "flat", Script: "missing.tengo"}, nil)
	assert.Error(t, err)
}

func TestGameHoldsCameraWhenScriptFails(t *testing.T) {
	g, err := NewGame(Options{Level: "flat"}, nil)
	require.NoError(t, err)
	defer g.Close()

	s, err := input.NewScript("bad", []byte("yaw = 5.0\nmove_x = 1 / (tick - 1)\n"), nil)
	require.NoError(t, err)
	s.SetRotationSource(g.rig)
	g.script = s
	g.player.SetInput(s)

	// tick 0 divides by -1 and succeeds, tick 1 divides by zero
	g.step(1.0/60, controls{})
	yaw := g.rig.PivotRotation.Y()
	g.step(1.0/60, controls{yaw: 30})

	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, yaw, g.rig.PivotRotation.Y(), "no look input from a failed tick")
}
