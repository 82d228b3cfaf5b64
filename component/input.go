package component

import "github.com/go-gl/mathgl/mgl64"

// InputSource is polled once per fixed tick by the character.
type InputSource interface {
	// GetMoveInput returns the local move vector: X is right, Y is forward.
	GetMoveInput() mgl64.Vec2
	IsJumping() bool
	// GetControlRotation returns pitch, yaw and roll in degrees.
	GetControlRotation() mgl64.Vec3
}

// RotationSource publishes a control rotation, usually the active camera.
type RotationSource interface {
	ControlRotation() mgl64.Vec3
}

// Frame is a single polled input sample.
type Frame struct {
	Move            mgl64.Vec2
	Jump            bool
	ControlRotation mgl64.Vec3
}

// Poll samples src into a Frame. A nil source yields an empty frame.
func Poll(src InputSource) Frame {
	if src == nil {
		return Frame{}
	}
	return Frame{
		Move:            src.GetMoveInput(),
		Jump:            src.IsJumping(),
		ControlRotation: src.GetControlRotation(),
	}
}
