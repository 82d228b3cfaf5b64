package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/input"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Level  string
	Script string
	Watch  bool
	Debug  bool
}

// controls is what the host read from the devices this frame.
type controls struct {
	yaw, pitch    float64
	toggleDisable bool
}

type Game struct {
	frames int
	debug  bool
	logger *zap.Logger

	world    *system.World
	player   *system.Character
	rig      *camera.Rig
	view     *camera.View
	keyboard *input.Keyboard
	script   *input.Script
	watcher  *prefabs.Watcher

	scriptName string
}

func NewGame(opts Options, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	charSpec, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return nil, err
	}
	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	world, err := system.NewWorld(opts.Level, logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:    opts.Debug,
		logger:   logger,
		world:    world,
		rig:      camera.NewRig(camSpec.Follow, logger.Named("camera")),
		view:     camera.NewView(baseWidth, baseHeight, camSpec.Zoom),
		keyboard: input.NewKeyboard(nil),
	}
	g.view.SetEase(camSpec.Smoothness)
	g.keyboard.SetRotationSource(g.rig)

	var src component.InputSource = g.keyboard
	if opts.Script != "" {
		s, err := g.loadScript(opts.Script)
		if err != nil {
			return nil, err
		}
		g.script = s
		g.scriptName = opts.Script
		src = s
	}

	g.player, err = world.SpawnPlayer(charSpec.Movement, src)
	if err != nil {
		return nil, err
	}
	g.player.SetJiggle(system.NewJiggle(nil))
	g.rig.SetTarget(g.player)
	g.view.SnapTo(g.player.Position())

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			logger.Warn("game: hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) loadScript(name string) (*input.Script, error) {
	data, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("game: load script %s: %w", name, err)
	}
	s, err := input.NewScript(name, data, g.logger.Named("script"))
	if err != nil {
		return nil, err
	}
	s.SetRotationSource(g.rig)
	return s, nil
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	g.keyboard.Update()
	if g.keyboard.QuitPressed {
		return ebiten.Termination
	}

	g.step(1/float64(ebiten.TPS()), controls{
		yaw:           g.keyboard.Yaw,
		pitch:         g.keyboard.Pitch,
		toggleDisable: g.keyboard.TogglePressed,
	})
	return nil
}

// step runs one fixed tick followed by the render-side updates.
func (g *Game) step(dt float64, in controls) {
	if in.toggleDisable {
		if g.player.State() == component.Disabled {
			g.player.Enable()
		} else {
			g.player.Disable()
		}
	}

	if g.script != nil {
		if err := g.script.Advance(dt); err != nil {
			// Advance logged it and cleared the frame; hold the camera too
			in.yaw, in.pitch = 0, 0
		} else {
			in.yaw, in.pitch = g.script.Look()
		}
	}
	g.rig.UpdateRotation(in.yaw, in.pitch)

	g.world.FixedUpdate(dt)

	g.world.Update(dt)
	g.rig.Update(dt)
	g.view.Update(g.player.Position(), dt)
}

// reload applies prefab and script edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		name := filepath.Base(path)
		switch {
		case name == prefabs.CharacterFile:
			spec, err := prefabs.LoadCharacterSpec()
			if err != nil {
				g.logger.Error("game: reload character", zap.Error(err))
				continue
			}
			g.player.SetMovement(spec.Movement)
		case name == prefabs.CameraFile:
			spec, err := prefabs.LoadCameraSpec()
			if err != nil {
				g.logger.Error("game: reload camera", zap.Error(err))
				continue
			}
			g.rig.Follow().SetConfig(spec.Follow)
			g.view.SetZoom(spec.Zoom)
			g.view.SetEase(spec.Smoothness)
		case prefabs.IsScriptFile(name) && g.script != nil && filepath.Base(g.scriptName) == name:
			s, err := g.loadScript(g.scriptName)
			if err != nil {
				g.logger.Error("game: reload script", zap.Error(err))
				continue
			}
			g.script = s
			g.player.SetInput(s)
		default:
			continue
		}
		g.logger.Info("game: reloaded", zap.String("file", name))
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
