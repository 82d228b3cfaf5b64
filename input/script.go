package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/component"
)

// ErrNoScript is returned for an empty script source.
var ErrNoScript = errors.New("input: script has no source")

// Script is an input source driven by a tengo script. The script runs once
// per fixed tick with `tick`, `dt` and a persistent `state` map in scope
// and sets `move_x`, `move_y`, `jump`, `yaw` and `pitch`.
type Script struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	logger    *zap.Logger

	tick  int
	frame component.Frame
	yaw   float64
	pitch float64

	// accumulated look when no rotation source is attached
	control  mgl64.Vec3
	rotation component.RotationSource
}

var scriptOutputs = []string{"move_x", "move_y", "jump", "yaw", "pitch"}

// NewScript compiles src. name is only used for logging.
func NewScript(name string, src []byte, logger *zap.Logger) (*Script, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoScript, name)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("state", map[string]any{})
	_ = script.Add("move_x", 0.0)
	_ = script.Add("move_y", 0.0)
	_ = script.Add("jump", false)
	_ = script.Add("yaw", 0.0)
	_ = script.Add("pitch", 0.0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}

	return &Script{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
		logger:    logger,
	}, nil
}

// SetRotationSource makes GetControlRotation report rot, usually the camera.
func (s *Script) SetRotationSource(rot component.RotationSource) { s.rotation = rot }

// Advance runs the script for the next tick. On error the previous frame is
// replaced by an empty one so a broken script stops the character.
func (s *Script) Advance(dt float64) error {
	if err := s.run(dt); err != nil {
		s.frame = component.Frame{}
		s.yaw, s.pitch = 0, 0
		s.logger.Error("input: script failed", zap.String("script", s.name), zap.Int("tick", s.tick), zap.Error(err))
		return err
	}
	s.tick++
	return nil
}

func (s *Script) run(dt float64) error {
	if err := s.compiled.Set("tick", s.tick); err != nil {
		return err
	}
	if err := s.compiled.Set("dt", dt); err != nil {
		return err
	}
	if err := s.compiled.Set("state", s.stateData); err != nil {
		return err
	}
	for _, name := range scriptOutputs {
		var zero any = 0.0
		if name == "jump" {
			zero = false
		}
		if err := s.compiled.Set(name, zero); err != nil {
			return err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: run %s: %w", s.name, err)
	}

	s.frame.Move = mgl64.Vec2{s.compiled.Get("move_x").Float(), s.compiled.Get("move_y").Float()}
	s.frame.Jump = s.compiled.Get("jump").Bool()
	s.yaw = s.compiled.Get("yaw").Float()
	s.pitch = s.compiled.Get("pitch").Float()

	s.control[1] += s.yaw
	s.control[0] -= s.pitch
	return nil
}

// Tick is the number of ticks run so far.
func (s *Script) Tick() int { return s.tick }

// Look returns the yaw and pitch deltas requested by the last tick.
func (s *Script) Look() (yaw, pitch float64) { return s.yaw, s.pitch }

func (s *Script) GetMoveInput() mgl64.Vec2 { return s.frame.Move }

func (s *Script) IsJumping() bool { return s.frame.Jump }

func (s *Script) GetControlRotation() mgl64.Vec3 {
	if s.rotation != nil {
		return s.rotation.ControlRotation()
	}
	return s.control
}

// State returns a value the script stored in its state map.
func (s *Script) State(key string) (any, bool) {
	obj, ok := s.stateData.Value[key]
	if !ok {
		return nil, false
	}
	return tengo.ToInterface(obj), true
}
