// Command replay runs a level with a scripted player headless and logs
// every locomotion state change.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/input"
	"github.com/milk9111/thirdperson/prefabs"
	"github.com/milk9111/thirdperson/system"
)

type options struct {
	level  string
	script string
	ticks  int
	tps    int
	camera bool
}

type summary struct {
	ticks       int
	transitions int
	final       mgl64.Vec3
	// ticks spent per state
	states map[component.MovementState]int
}

func main() {
	debug := flag.Bool("debug", false, "log at debug level")
	level := flag.String("level", "arena", "level name in levels/")
	script := flag.String("script", "walk_and_jump.tengo", "tengo script from prefabs/scripts")
	ticks := flag.Int("ticks", 600, "number of fixed ticks to run")
	tps := flag.Int("tps", 60, "fixed ticks per second")
	cam := flag.Bool("camera", true, "take the control rotation from the follow camera")
	flag.Parse()

	logger, err := common.NewLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := run(options{level: *level, script: *script, ticks: *ticks, tps: *tps, camera: *cam}, logger)
	if err != nil {
		logger.Error("replay failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("ticks=%d transitions=%d final=(%.3f, %.3f, %.3f) on_ground=%d in_air=%d disabled=%d\n",
		s.ticks, s.transitions, s.final.X(), s.final.Y(), s.final.Z(),
		s.states[component.OnGround], s.states[component.InAir], s.states[component.Disabled])
}

func run(opts options, logger *zap.Logger) (summary, error) {
	if opts.ticks < 0 {
		return summary{}, fmt.Errorf("replay: negative tick count %d", opts.ticks)
	}
	if opts.tps <= 0 {
		return summary{}, fmt.Errorf("replay: tps must be positive, got %d", opts.tps)
	}
	dt := 1 / float64(opts.tps)

	charSpec, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return summary{}, err
	}
	src, err := prefabs.LoadScript(opts.script)
	if err != nil {
		return summary{}, fmt.Errorf("replay: load script %s: %w", opts.script, err)
	}
	script, err := input.NewScript(opts.script, src, logger.Named("script"))
	if err != nil {
		return summary{}, err
	}

	world, err := system.NewWorld(opts.level, logger)
	if err != nil {
		return summary{}, err
	}
	player, err := world.SpawnPlayer(charSpec.Movement, script)
	if err != nil {
		return summary{}, err
	}

	var rig *camera.Rig
	if opts.camera {
		camSpec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return summary{}, err
		}
		rig = camera.NewRig(camSpec.Follow, logger.Named("camera"))
		rig.SetTarget(player)
		script.SetRotationSource(rig)
	}

	s := summary{states: map[component.MovementState]int{}}
	prev := player.State()
	for tick := 0; tick < opts.ticks; tick++ {
		if err := script.Advance(dt); err != nil {
			return s, err
		}
		if rig != nil {
			rig.UpdateRotation(script.Look())
		}
		world.FixedUpdate(dt)
		world.Update(dt)
		if rig != nil {
			rig.Update(dt)
		}

		state := player.State()
		s.states[state]++
		if tick > 0 && state != prev {
			s.transitions++
			pos := player.Position()
			logger.Info("replay: state change",
				zap.Int("tick", tick),
				zap.Stringer("from", prev),
				zap.Stringer("to", state),
				zap.Float64("x", pos.X()), zap.Float64("y", pos.Y()), zap.Float64("z", pos.Z()))
		}
		prev = state
		s.ticks++
	}
	s.final = player.Position()
	return s, nil
}
