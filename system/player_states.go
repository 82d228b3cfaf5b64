package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

// Movement state singletons.
var (
	movementStateOnGround component.MovementStateHandler = &onGroundState{}
	movementStateInAir    component.MovementStateHandler = &inAirState{}
	movementStateDisabled component.MovementStateHandler = &disabledState{}
)

var movementStates = map[component.MovementState]component.MovementStateHandler{
	component.OnGround: movementStateOnGround,
	component.InAir:    movementStateInAir,
	component.Disabled: movementStateDisabled,
}

type onGroundState struct{}

type inAirState struct{}

type disabledState struct{}

func (onGroundState) Name() string { return component.OnGround.String() }
func (onGroundState) Enter(ctx *component.MovementContext) {
	if ctx == nil || ctx.Motion == nil || ctx.Movement == nil {
		return
	}
	ctx.Motion.MidAirJumpTimeLeft = ctx.Movement.MaxMidAirJumpTime
}
func (onGroundState) Exit(ctx *component.MovementContext) {}
func (onGroundState) Update(ctx *component.MovementContext) {
	if !ctx.Ready() {
		return
	}
	m := ctx.Motion
	cfg := ctx.Movement
	ground := ctx.Ground

	if ctx.Move.LenSqr() > common.CompareEpsilon {
		// work relative to the surface, then add its motion back
		local := m.Velocity.Sub(ground.Velocity)

		accel := ctx.MoveAccel(ctx.Move)
		if ctx.SetDebugAccel != nil {
			ctx.SetDebugAccel(accel)
		}
		accel = common.Normalize(accel.Sub(common.Project(accel, ground.Normal)))

		along := common.Project(local, accel)
		if along.Dot(accel) > 0 {
			// keep only the part along the move direction
			local = common.LerpToVec(cfg.OnGroundStopEaseSpeed, local, along, ctx.Dt)
		} else {
			// brake before reversing
			local = common.LerpToVec(cfg.OnGroundStopEaseSpeed, local, mgl64.Vec3{}, ctx.Dt)
		}

		local = local.Add(accel.Mul(cfg.OnGroundMoveAccel * ctx.Dt))
		local = common.ClampMagnitude(local, cfg.OnGroundMaxSpeed)

		m.Velocity = local.Add(ground.Velocity)
	} else {
		easeToGround(m, ground, cfg.OnGroundStopEaseSpeed, ctx.Dt)
	}

	if ctx.Jump {
		activateJump(ctx)
	} else {
		m.AllowJump = true
	}

	ctx.ApplyVelocity(m.Velocity)

	pos := ctx.Position()
	if cfg.InstantStepUp {
		pos[1] = m.CenterHeight
	} else {
		pos[1] = common.LerpTo(cfg.StepUpEaseSpeed, pos.Y(), m.CenterHeight, ctx.Dt)
	}
	ctx.SetPosition(pos)

	m.TimeInAir = 0
}

func (inAirState) Name() string                          { return component.InAir.String() }
func (inAirState) Enter(ctx *component.MovementContext) {}
func (inAirState) Exit(ctx *component.MovementContext)  {}
func (inAirState) Update(ctx *component.MovementContext) {
	if !ctx.Ready() {
		return
	}
	m := ctx.Motion
	cfg := ctx.Movement

	if ctx.Move.LenSqr() > common.CompareEpsilon {
		accel := ctx.MoveAccel(ctx.Move)
		if ctx.SetDebugAccel != nil {
			ctx.SetDebugAccel(accel)
		}
		m.Velocity = m.Velocity.Add(accel.Mul(cfg.InAirMoveAccel * ctx.Dt))
		m.Velocity = common.HorizontalClamp(m.Velocity, cfg.InAirMaxHorizSpeed)
		m.Velocity[1] = common.Clamp(m.Velocity.Y(), -cfg.InAirMaxVertSpeed, cfg.InAirMaxVertSpeed)
	}

	// grace window for jumping shortly after walking off a ledge
	if m.JumpTimeLeft <= 0 {
		if m.MidAirJumpTimeLeft > 0 {
			m.MidAirJumpTimeLeft -= ctx.Dt
			if ctx.Jump {
				activateJump(ctx)
			} else {
				m.AllowJump = true
			}
		}
	} else {
		m.MidAirJumpTimeLeft = 0
	}

	// holding jump spends hold time instead of falling
	if m.JumpTimeLeft > 0 && ctx.Jump {
		m.JumpTimeLeft -= ctx.Dt
	} else {
		m.Velocity[1] += cfg.GravityAccel * ctx.Dt
		m.JumpTimeLeft = 0
	}

	ctx.ApplyVelocity(m.Velocity)

	m.TimeInAir += ctx.Dt
}

func (disabledState) Name() string { return component.Disabled.String() }
func (disabledState) Enter(ctx *component.MovementContext) {
	if ctx == nil || ctx.Motion == nil {
		return
	}
	ctx.Motion.Velocity = mgl64.Vec3{}
	if ctx.ApplyVelocity != nil {
		ctx.ApplyVelocity(ctx.Motion.Velocity)
	}
}
func (disabledState) Exit(ctx *component.MovementContext)   {}
func (disabledState) Update(ctx *component.MovementContext) {}

// activateJump launches off the current surface. The AllowJump latch keeps
// a held button from bouncing.
func activateJump(ctx *component.MovementContext) {
	m := ctx.Motion
	if !m.AllowJump {
		return
	}
	cfg := ctx.Movement

	m.Velocity[1] = cfg.JumpSpeed + ctx.Ground.Velocity.Y()
	ctx.SetPosition(ctx.Position().Add(mgl64.Vec3{0, cfg.JumpPushOutOfGroundAmount, 0}))
	m.JumpTimeLeft = cfg.MaxJumpHoldTime
	m.AllowJump = false
}

// easeToGround is the shared stopping operation: ease toward the velocity
// of the surface stood on.
func easeToGround(m *component.Motion, ground *component.GroundInfo, rate, dt float64) {
	target := mgl64.Vec3{}
	if ground != nil {
		target = ground.Velocity
	}
	m.Velocity = common.LerpToVec(rate, m.Velocity, target, dt)
}
