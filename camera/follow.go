package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
)

// FollowName is the registry name of the follow behaviour.
const FollowName = "follow"

// Follow trails the target at a clamped distance. Yaw comes from input
// until the input has been idle for AutoRotateDelayTime, after which the
// camera swings to stay behind the target's motion.
type Follow struct {
	cfg component.FollowCamera
	rig *Rig

	goalPos    mgl64.Vec3
	yawInput   float64
	pitchInput float64

	timeTillAutoRotate float64
	allowAutoRotate    bool
}

func NewFollow(rig *Rig, cfg component.FollowCamera) *Follow {
	return &Follow{rig: rig, cfg: cfg}
}

func (f *Follow) SetConfig(cfg component.FollowCamera) { f.cfg = cfg }

func (f *Follow) Activate() {
	f.goalPos = f.rig.Transform.Position
	f.allowAutoRotate = false
	f.timeTillAutoRotate = f.cfg.AutoRotateDelayTime
}

func (f *Follow) Deactivate() {}

func (f *Follow) UpdateRotation(yaw, pitch float64) {
	f.yawInput = yaw
	f.pitchInput = pitch
}

func (f *Follow) SetFacingDirection(dir mgl64.Vec3) {}

func (f *Follow) ControlRotation() mgl64.Vec3 { return f.rig.PivotRotation }

func (f *Follow) UsesStandardControlRotation() bool { return false }

func (f *Follow) UpdateCamera(dt float64) {
	r := f.rig
	if r == nil || r.target == nil {
		return
	}
	cfg := f.cfg

	pivot := r.target.TransformPoint(cfg.PivotOffset)
	offset := f.goalPos.Sub(pivot)
	dist := offset.Len()

	yaw := f.yawInput * cfg.YawRotateSpeed
	pitch := f.pitchInput * cfg.PitchRotateSpeed

	f.timeTillAutoRotate -= dt
	if !common.AlmostEquals(yaw, 0) {
		f.allowAutoRotate = false
		f.timeTillAutoRotate = cfg.AutoRotateDelayTime
	} else if f.timeTillAutoRotate <= 0 {
		f.allowAutoRotate = true
	}

	rot := r.PivotRotation
	if f.allowAutoRotate {
		// face from the camera toward the pivot
		if common.Horizontal(offset).LenSqr() > common.CompareEpsilon {
			rot[1] = common.YawOf(offset.Mul(-1))
		}
	} else {
		rot[1] += yaw
	}
	rot[0] = common.Clamp(rot[0]-pitch, -cfg.MaxVerticalAngle, cfg.MaxVerticalAngle)
	r.PivotRotation = rot

	dist = common.Clamp(dist, cfg.MinHorizDistFromTarget, cfg.MaxDistFromTarget)
	f.goalPos = pivot.Add(common.EulerToQuat(mgl64.Vec3{rot.X(), rot.Y(), 0}).Rotate(common.Back).Mul(dist))

	pos := common.SlerpToHoriz(cfg.HorizPosEaseSpeed, r.Transform.Position, f.goalPos, pivot, dt)
	pos[1] = common.LerpTo(cfg.VertPosEaseSpeed, pos.Y(), f.goalPos.Y(), dt)
	r.Transform.Position = pos

	f.handleObstacles()

	r.LookPos = common.LerpToVec(cfg.LookPosEaseSpeed, r.LookPos, r.target.TransformPoint(mgl64.Vec3{}), dt)
	r.Transform.Rotation = common.LookRotation(r.LookPos.Sub(pos))
}

// handleObstacles would pull the camera in front of geometry between it and
// the target. The level is a single slice the camera never enters, so there
// is nothing to resolve.
func (f *Follow) handleObstacles() {}

// GoalPosition is where the camera is easing toward.
func (f *Follow) GoalPosition() mgl64.Vec3 { return f.goalPos }
