package component

import "github.com/go-gl/mathgl/mgl64"

type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// TransformPoint maps a local-space point into world space.
func (t Transform) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	rot := t.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return t.Position.Add(rot.Rotate(local))
}
