package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CompareEpsilon is the threshold below which squared magnitudes and
// differences are treated as zero.
const CompareEpsilon = 1e-4

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Down    = mgl64.Vec3{0, -1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Back    = mgl64.Vec3{0, 0, -1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func AlmostEquals(a, b float64) bool {
	return math.Abs(a-b) <= CompareEpsilon
}

// EaseFactor returns the fraction of the remaining distance covered after
// easing for dt seconds at rate.
func EaseFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// LerpTo eases value toward target independent of frame rate.
func LerpTo(rate, value, target, dt float64) float64 {
	return Lerp(value, target, EaseFactor(rate, dt))
}

// LerpToVec is LerpTo for vectors.
func LerpToVec(rate float64, value, target mgl64.Vec3, dt float64) mgl64.Vec3 {
	t := EaseFactor(rate, dt)
	return value.Add(target.Sub(value).Mul(t))
}

// SlerpToHoriz eases value toward target by rotating its horizontal offset
// around pivot. The vertical component of value is left untouched.
func SlerpToHoriz(rate float64, value, target, pivot mgl64.Vec3, dt float64) mgl64.Vec3 {
	t := EaseFactor(rate, dt)

	from := Horizontal(value.Sub(pivot))
	to := Horizontal(target.Sub(pivot))
	fromLen := from.Len()
	toLen := to.Len()

	var offset mgl64.Vec3
	if fromLen < CompareEpsilon || toLen < CompareEpsilon {
		offset = from.Add(to.Sub(from).Mul(t))
	} else {
		fromAngle := math.Atan2(from.X(), from.Z())
		delta := WrapAngle(math.Atan2(to.X(), to.Z()) - fromAngle)
		angle := fromAngle + delta*t
		radius := Lerp(fromLen, toLen, t)
		offset = mgl64.Vec3{math.Sin(angle) * radius, 0, math.Cos(angle) * radius}
	}

	return mgl64.Vec3{pivot.X() + offset.X(), value.Y(), pivot.Z() + offset.Z()}
}

// WrapAngle maps radians into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// HorizontalClamp limits the XZ magnitude of v to maxLen and keeps Y.
func HorizontalClamp(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	h := ClampMagnitude(Horizontal(v), maxLen)
	return mgl64.Vec3{h.X(), v.Y(), h.Z()}
}

func ClampMagnitude(v mgl64.Vec3, maxLen float64) mgl64.Vec3 {
	if maxLen <= 0 {
		return mgl64.Vec3{}
	}
	l2 := v.LenSqr()
	if l2 <= maxLen*maxLen {
		return v
	}
	return v.Mul(maxLen / math.Sqrt(l2))
}

// Normalize returns the unit vector of v, or zero for near-zero input.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-5 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Project returns the component of v along onto.
func Project(v, onto mgl64.Vec3) mgl64.Vec3 {
	d := onto.LenSqr()
	if d < 1e-12 {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / d)
}

// CalcVerticalAngle returns the elevation of dir above the horizontal plane
// in degrees: 90 for straight up, 0 for horizontal.
func CalcVerticalAngle(dir mgl64.Vec3) float64 {
	l := dir.Len()
	if l < 1e-9 {
		return 0
	}
	return mgl64.RadToDeg(math.Asin(Clamp(dir.Y()/l, -1, 1)))
}

// ProjectToBottomOfCapsule returns the point on the capsule's bottom
// hemisphere directly below point. Horizontal offsets larger than the
// radius are clamped to the rim.
func ProjectToBottomOfCapsule(point, center mgl64.Vec3, height, radius float64) mgl64.Vec3 {
	sphereY := center.Y() - height/2 + radius

	offset := Horizontal(point.Sub(center))
	horiz := offset.Len()
	if horiz > radius {
		offset = offset.Mul(radius / horiz)
		horiz = radius
	}
	drop := math.Sqrt(math.Max(radius*radius-horiz*horiz, 0))

	return mgl64.Vec3{center.X() + offset.X(), sphereY - drop, center.Z() + offset.Z()}
}

// EulerToQuat builds a rotation from pitch (x), yaw (y) and roll (z) in
// degrees, applied roll first, then pitch, then yaw.
func EulerToQuat(angles mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(angles.X()), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(angles.Y()), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(angles.Z()), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// YawOf returns the heading of dir in degrees, 0 along +Z, 90 along +X.
func YawOf(dir mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z()))
}

// LookRotation returns the orientation whose forward axis points along dir.
// Positive pitch looks down.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	l := dir.Len()
	if l < 1e-9 {
		return mgl64.QuatIdent()
	}
	pitch := -mgl64.RadToDeg(math.Asin(Clamp(dir.Y()/l, -1, 1)))
	return EulerToQuat(mgl64.Vec3{pitch, YawOf(dir), 0})
}
