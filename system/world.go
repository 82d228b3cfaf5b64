package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/levels"
	"github.com/milk9111/thirdperson/physics"
)

// ErrPlayerExists is returned when a second player is spawned into a world.
var ErrPlayerExists = errors.New("world: player already spawned")

// World owns level loading, the physics space and the single player.
type World struct {
	Level  *levels.Level
	Space  *physics.Space
	Player *Character

	logger    *zap.Logger
	scheduler *Scheduler
}

// NewWorld creates a new world and loads the requested level.
func NewWorld(levelName string, logger *zap.Logger) (*World, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &World{logger: logger}
	if err := w.Load(levelName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load swaps in a level and rebuilds the physics space. An existing player
// survives the swap and is moved to the new spawn point.
func (w *World) Load(levelName string) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return fmt.Errorf("world: load level: %w", err)
	}
	w.Level = lvl
	w.Space = physics.NewSpaceFromLevel(lvl, w.logger)

	if w.Player != nil {
		body := w.addBody(w.Player.Movement())
		w.Player.Attach(body, w.Space)
		w.logger.Info("world: player carried over", zap.String("level", lvl.Name))
	}
	w.rebuild()
	return nil
}

// SpawnPlayer creates the one player of this world at the level spawn.
func (w *World) SpawnPlayer(cfg component.Movement, input component.InputSource) (*Character, error) {
	if w == nil || w.Space == nil {
		return nil, fmt.Errorf("world is not loaded")
	}
	if w.Player != nil {
		return nil, ErrPlayerExists
	}

	body := w.addBody(cfg)
	w.Player = NewCharacter(cfg, body, w.Space, input, w.logger.Named("player"))
	w.rebuild()

	w.logger.Info("world: player spawned",
		zap.Float64("x", w.Level.Spawn[0]), zap.Float64("y", w.Level.Spawn[1]), zap.Float64("z", w.Level.Spawn[2]))
	return w.Player, nil
}

func (w *World) addBody(cfg component.Movement) *physics.CharacterBody {
	return w.Space.AddCharacter(mgl64.Vec3(w.Level.Spawn), cfg.CheckForGroundRadius, cfg.FootOffset)
}

// rebuild orders the tick: locomotion reads and writes velocities, then
// the space integrates them.
func (w *World) rebuild() {
	s := NewScheduler()
	if w.Player != nil {
		s.AddFixed(w.Player)
		s.AddFrame(w.Player)
	}
	s.AddFixed(w.Space)
	w.scheduler = s
}

func (w *World) FixedUpdate(dt float64) {
	if w == nil || w.scheduler == nil {
		return
	}
	w.scheduler.FixedUpdate(dt)
}

func (w *World) Update(dt float64) {
	if w == nil || w.scheduler == nil {
		return
	}
	w.scheduler.Update(dt)
}
