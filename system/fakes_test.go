package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/physics"
)

type fakeBody struct {
	pos mgl64.Vec3
	vel mgl64.Vec3

	moves   int
	changes int
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec3) {
	b.pos = p
	b.moves++
}
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.vel }
func (b *fakeBody) ApplyVelocityChange(dv mgl64.Vec3) {
	b.vel = b.vel.Add(dv)
	b.changes++
}

type castCall struct {
	origin mgl64.Vec3
	radius float64
	dir    mgl64.Vec3
	dist   float64
	mask   physics.LayerMask
}

type fakeQuery struct {
	hits  []physics.Hit
	calls []castCall
}

func (q *fakeQuery) SphereCastAll(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask physics.LayerMask) []physics.Hit {
	q.calls = append(q.calls, castCall{origin, radius, dir, maxDistance, mask})
	return q.hits
}

type fakeSurface struct {
	vel mgl64.Vec3
	ang mgl64.Vec3
}

func (s fakeSurface) Velocity() mgl64.Vec3        { return s.vel }
func (s fakeSurface) AngularVelocity() mgl64.Vec3 { return s.ang }

type fakeInput struct {
	move mgl64.Vec2
	jump bool
	rot  mgl64.Vec3
}

func (i *fakeInput) GetMoveInput() mgl64.Vec2       { return i.move }
func (i *fakeInput) IsJumping() bool                { return i.jump }
func (i *fakeInput) GetControlRotation() mgl64.Vec3 { return i.rot }

// elevated returns a unit normal tilted deg degrees above the +X horizon.
func elevated(deg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(deg)
	return mgl64.Vec3{math.Cos(r), math.Sin(r), 0}
}

func flatHit() physics.Hit {
	return physics.Hit{Point: mgl64.Vec3{0, 0, 0}, Normal: mgl64.Vec3{0, 1, 0}, Distance: 0.5}
}

// newTestCharacter returns a character standing at y=1 over a fake query.
func newTestCharacter(cfg component.Movement, hits ...physics.Hit) (*Character, *fakeBody, *fakeQuery) {
	body := &fakeBody{pos: mgl64.Vec3{0, 1, 0}}
	query := &fakeQuery{hits: hits}
	return NewCharacter(cfg, body, query, nil, nil), body, query
}
