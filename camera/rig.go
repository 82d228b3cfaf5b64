package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

// Target is what the rig follows, usually the player character.
type Target interface {
	Position() mgl64.Vec3
	TransformPoint(local mgl64.Vec3) mgl64.Vec3
}

// Rig is the third-person camera. It owns the camera transform and the
// behaviour registry, and publishes the control rotation the player moves
// against.
type Rig struct {
	Transform     component.Transform
	PivotRotation mgl64.Vec3
	LookPos       mgl64.Vec3

	target          Target
	follow          *Follow
	registry        *Registry
	controlRotation mgl64.Vec3
	logger          *zap.Logger
}

// NewRig builds a rig with the follow behaviour registered.
func NewRig(cfg component.FollowCamera, logger *zap.Logger) *Rig {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Rig{
		Transform: component.NewTransform(mgl64.Vec3{}),
		registry:  NewRegistry(),
		logger:    logger,
	}
	r.follow = NewFollow(r, cfg)
	r.registry.Register(FollowName, r.follow)
	return r
}

// SetTarget starts following t with the follow behaviour.
func (r *Rig) SetTarget(t Target) {
	r.target = t
	if t != nil {
		r.LookPos = t.Position()
	}
	if err := r.registry.Set(FollowName); err != nil {
		r.logger.Error("camera: set target", zap.Error(err))
	}
}

// SetBehaviour switches the active behaviour by name.
func (r *Rig) SetBehaviour(name string) error {
	if err := r.registry.Set(name); err != nil {
		return err
	}
	r.logger.Debug("camera: behaviour changed", zap.String("behaviour", name))
	return nil
}

func (r *Rig) Registry() *Registry { return r.registry }

func (r *Rig) Follow() *Follow { return r.follow }

// UpdateRotation forwards yaw and pitch deltas to the active behaviour.
func (r *Rig) UpdateRotation(yaw, pitch float64) {
	if b := r.registry.Current(); b != nil {
		b.UpdateRotation(yaw, pitch)
	}
}

func (r *Rig) SetFacingDirection(dir mgl64.Vec3) {
	if b := r.registry.Current(); b != nil {
		b.SetFacingDirection(dir)
	}
}

// Update runs the active behaviour after the target has moved this frame.
func (r *Rig) Update(dt float64) {
	if r.target == nil {
		return
	}
	b := r.registry.Current()
	if b == nil {
		return
	}
	b.UpdateCamera(dt)
	r.controlRotation = b.ControlRotation()
}

// ControlRotation is the pitch, yaw and roll in degrees published by the
// last Update.
func (r *Rig) ControlRotation() mgl64.Vec3 { return r.controlRotation }

// Forward is the camera's viewing direction.
func (r *Rig) Forward() mgl64.Vec3 {
	return r.Transform.Rotation.Rotate(common.Forward)
}
