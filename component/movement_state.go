package component

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// MovementState selects the locomotion branch run each fixed tick.
type MovementState int

const (
	OnGround MovementState = iota
	InAir
	Disabled
)

func (s MovementState) String() string {
	switch s {
	case OnGround:
		return "on_ground"
	case InAir:
		return "in_air"
	case Disabled:
		return "disabled"
	default:
		return "movement_state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the known states.
func (s MovementState) Valid() bool {
	return s >= OnGround && s <= Disabled
}

// MovementStateHandler is one branch of the locomotion state machine. Each
// state owns its enter hook and per-tick update.
type MovementStateHandler interface {
	Name() string
	Enter(ctx *MovementContext)
	Exit(ctx *MovementContext)
	Update(ctx *MovementContext)
}

// Motion is the locomotion state carried between fixed ticks.
type Motion struct {
	Velocity     mgl64.Vec3
	CenterHeight float64
	TimeInAir    float64

	JumpTimeLeft       float64
	MidAirJumpTimeLeft float64
	// AllowJump is cleared by a jump and restored once the button is
	// released.
	AllowJump bool
}

// MovementContext gives a state access to the character for one tick.
// Body access goes through callbacks so states stay independent of the
// physics backend.
type MovementContext struct {
	Dt       float64
	Move     mgl64.Vec3 // normalized local move direction, Y is always 0
	Jump     bool
	Movement *Movement
	Ground   *GroundInfo
	Motion   *Motion

	// MoveAccel rotates a local move direction by the control yaw.
	MoveAccel     func(local mgl64.Vec3) mgl64.Vec3
	ApplyVelocity func(v mgl64.Vec3)
	Position      func() mgl64.Vec3
	SetPosition   func(p mgl64.Vec3)
	SetDebugAccel func(a mgl64.Vec3)
}

// Ready reports whether every field a state update reads is set.
func (ctx *MovementContext) Ready() bool {
	return ctx != nil && ctx.Movement != nil && ctx.Ground != nil && ctx.Motion != nil &&
		ctx.MoveAccel != nil && ctx.ApplyVelocity != nil && ctx.Position != nil && ctx.SetPosition != nil
}
