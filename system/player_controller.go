package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/physics"
)

// Character is a ground-relative rigid-body character. It is driven by two
// host callbacks: FixedUpdate on the simulation tick and Update on the
// render tick. A Character is not safe for concurrent use.
type Character struct {
	logger *zap.Logger

	cfg    component.Movement
	body   physics.Body
	sensor *GroundSensor
	input  component.InputSource
	jiggle *Jiggle

	state   component.MovementState
	entered bool
	motion  component.Motion
	ground  component.GroundInfo

	control    mgl64.Vec3
	rotation   mgl64.Quat
	debugAccel mgl64.Vec3
}

// NewCharacter builds a character around body. The first fixed tick's
// ground query decides the initial state.
func NewCharacter(cfg component.Movement, body physics.Body, query physics.Query, input component.InputSource, logger *zap.Logger) *Character {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Character{
		logger:   logger,
		cfg:      cfg,
		body:     body,
		sensor:   NewGroundSensor(query),
		input:    input,
		jiggle:   NewJiggle(nil),
		state:    component.InAir,
		motion:   component.Motion{AllowJump: true},
		ground:   component.NoGround(),
		rotation: mgl64.QuatIdent(),
	}
}

// Attach moves the character onto a new body and physics world, as on a
// level change. Motion is reset; the state machine is kept.
func (c *Character) Attach(body physics.Body, query physics.Query) {
	c.body = body
	c.sensor.Query = query
	c.motion = component.Motion{AllowJump: true}
	c.ground = component.NoGround()
}

func (c *Character) SetInput(src component.InputSource) { c.input = src }

func (c *Character) SetJiggle(j *Jiggle) { c.jiggle = j }

// SetMovement replaces the tunables and restarts the jiggle timer.
func (c *Character) SetMovement(cfg component.Movement) {
	c.cfg = cfg
	c.jiggle.Reset()
}

func (c *Character) Movement() component.Movement { return c.cfg }

// SetControlRotation overrides the control rotation used by the next Step.
// FixedUpdate refreshes it from the input source.
func (c *Character) SetControlRotation(r mgl64.Vec3) { c.control = r }

// FixedUpdate polls the input source once and advances locomotion by dt.
func (c *Character) FixedUpdate(dt float64) {
	frame := component.Poll(c.input)
	c.control = frame.ControlRotation
	c.Step(dt, frame.Move, frame.Jump)
}

// Step runs one simulation tick with the given local move input (X right,
// Y forward) and jump button state.
func (c *Character) Step(dt float64, move mgl64.Vec2, jump bool) {
	if c.body == nil {
		return
	}
	c.motion.Velocity = c.body.Velocity()
	c.updateGround()

	local := common.Normalize(mgl64.Vec3{move.X(), 0, move.Y()})
	c.dispatch(c.context(dt, local, jump))
}

// Update is the render tick. It only applies cosmetic jiggle.
func (c *Character) Update(dt float64) {
	if c.body == nil {
		return
	}
	offset := c.jiggle.Update(dt, c.cfg.JiggleFrequency, c.cfg.MaxJiggleOffset)
	if offset != (mgl64.Vec3{}) {
		c.body.SetPosition(c.body.Position().Add(offset))
	}
}

func (c *Character) updateGround() {
	c.motion.CenterHeight = c.body.Position().Y()
	c.ground = c.sensor.DetectGround(c)

	if !c.ground.Valid {
		if c.state != component.Disabled {
			c.setState(component.InAir)
		}
		return
	}

	c.motion.CenterHeight = c.ground.TargetCenterHeight
	if c.state != component.Disabled {
		c.setState(component.OnGround)
	}
}

func (c *Character) dispatch(ctx *component.MovementContext) {
	if !c.state.Valid() {
		c.logger.Error("locomotion: invalid movement state", zap.Stringer("state", c.state))
		return
	}
	movementStates[c.state].Update(ctx)
}

func (c *Character) setState(next component.MovementState) {
	if !next.Valid() {
		c.logger.Error("locomotion: invalid movement state", zap.Stringer("state", next))
		return
	}
	if c.entered && next == c.state {
		return
	}
	h := movementStates[next]

	prev := c.state
	ctx := c.context(0, mgl64.Vec3{}, false)
	if c.entered {
		if old, ok := movementStates[prev]; ok {
			old.Exit(ctx)
		}
	}
	first := !c.entered
	c.state = next
	c.entered = true
	h.Enter(ctx)

	if first && prev == next {
		c.logger.Debug("locomotion: state entered", zap.Stringer("state", next))
		return
	}
	c.logger.Debug("locomotion: state changed",
		zap.Stringer("from", prev), zap.Stringer("to", next))
}

func (c *Character) context(dt float64, move mgl64.Vec3, jump bool) *component.MovementContext {
	return &component.MovementContext{
		Dt:            dt,
		Move:          move,
		Jump:          jump,
		Movement:      &c.cfg,
		Ground:        &c.ground,
		Motion:        &c.motion,
		MoveAccel:     c.moveAccel,
		ApplyVelocity: c.ApplyVelocity,
		Position:      c.Position,
		SetPosition:   c.SetPosition,
		SetDebugAccel: func(a mgl64.Vec3) { c.debugAccel = a },
	}
}

// moveAccel turns a local move direction into world space using only the
// yaw and roll of the control rotation.
func (c *Character) moveAccel(local mgl64.Vec3) mgl64.Vec3 {
	rot := c.control
	rot[0] = 0
	return common.EulerToQuat(rot).Rotate(local)
}

// ApplyVelocity issues the velocity change that brings the body to v.
func (c *Character) ApplyVelocity(v mgl64.Vec3) {
	if c.body == nil {
		return
	}
	c.body.ApplyVelocityChange(v.Sub(c.body.Velocity()))
}

// UpdateStopping eases the working velocity toward the ground velocity.
func (c *Character) UpdateStopping(rate, dt float64) {
	easeToGround(&c.motion, &c.ground, rate, dt)
}

// Disable zeroes velocity and stops automatic state changes until Enable.
func (c *Character) Disable() {
	c.setState(component.Disabled)
}

// Enable leaves Disabled. The next tick's ground query picks the state.
func (c *Character) Enable() {
	if c.state == component.Disabled {
		c.setState(component.InAir)
	}
}

func (c *Character) State() component.MovementState { return c.state }

func (c *Character) Velocity() mgl64.Vec3 { return c.motion.Velocity }

func (c *Character) Motion() component.Motion { return c.motion }

func (c *Character) Ground() component.GroundInfo { return c.ground }

// DebugAccel is the last world acceleration direction, for drawing.
func (c *Character) DebugAccel() mgl64.Vec3 { return c.debugAccel }

func (c *Character) Body() physics.Body { return c.body }

func (c *Character) Position() mgl64.Vec3 {
	if c.body == nil {
		return mgl64.Vec3{}
	}
	return c.body.Position()
}

func (c *Character) SetPosition(p mgl64.Vec3) {
	if c.body != nil {
		c.body.SetPosition(p)
	}
}

func (c *Character) SetRotation(q mgl64.Quat) { c.rotation = q }

func (c *Character) Transform() component.Transform {
	return component.Transform{Position: c.Position(), Rotation: c.rotation}
}

// TransformPoint maps a point in the character's local space to world space.
func (c *Character) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return c.Transform().TransformPoint(local)
}
