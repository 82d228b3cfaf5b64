package physics

import "github.com/go-gl/mathgl/mgl64"

// LayerMask is a bitmask of collision layers.
type LayerMask uint32

const (
	LayerDefault       LayerMask = 1 << 0
	LayerIgnoreRaycast LayerMask = 1 << 2
	LayerPlayer        LayerMask = 1 << 8

	LayerAll LayerMask = ^LayerMask(0)
)

// GroundMask matches everything a character can stand on: all layers except
// its own and the ones excluded from queries.
const GroundMask = LayerAll &^ (LayerPlayer | LayerIgnoreRaycast)

// Surface is the body that owns a hit shape. Static geometry reports zero
// motion.
type Surface interface {
	Velocity() mgl64.Vec3
	AngularVelocity() mgl64.Vec3
}

// Hit is a single shape-cast result. It is only valid for the query that
// produced it.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Surface  Surface
}

// Query is the read path into a physics world.
type Query interface {
	// SphereCastAll sweeps a sphere from origin along dir for maxDistance and
	// returns every surface it touches on mask.
	SphereCastAll(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) []Hit
}

// Body is the write path: the rigid body owned by a character.
type Body interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Velocity() mgl64.Vec3
	// ApplyVelocityChange adds an instantaneous change in velocity,
	// independent of mass.
	ApplyVelocityChange(dv mgl64.Vec3)
}
