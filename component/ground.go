package component

import "github.com/go-gl/mathgl/mgl64"

// GroundInfo is recomputed every fixed tick by the ground sensor.
type GroundInfo struct {
	Valid           bool
	Normal          mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// StepUp is the vertical distance between the ground contact and the
	// capsule's resting bottom.
	StepUp float64
	// TargetCenterHeight is where the body center should settle so the
	// capsule sits GroundResolutionOverlap into the ground.
	TargetCenterHeight float64
	// Distance along the cast to the chosen surface.
	Distance float64
}

// NoGround is the cleared state: up normal, no surface motion.
func NoGround() GroundInfo {
	return GroundInfo{Normal: mgl64.Vec3{0, 1, 0}}
}
