package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlatform
	collisionTypeCharacter
)

// Space is a Chipmunk2D world treated as a vertical XY slice of 3D space.
// Geometry extends infinitely along Z; characters carry their own Z
// position and velocity, integrated on Step.
type Space struct {
	space  *cp.Space
	logger *zap.Logger

	platforms  []*Platform
	characters []*CharacterBody
}

// NewSpace creates an empty space without gravity. Characters integrate
// their own gravity through velocity changes.
func NewSpace(logger *zap.Logger) *Space {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &Space{space: space, logger: logger}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// AddSegment adds a static segment between a and b, in the XY plane.
func (s *Space) AddSegment(a, b mgl64.Vec2, radius float64, layer LayerMask) {
	shape := cp.NewSegment(s.space.StaticBody, toCP(a), toCP(b), radius)
	s.addStatic(shape, layer)
}

// AddBox adds a static axis-aligned box.
func (s *Space) AddBox(min, max mgl64.Vec2, layer LayerMask) {
	bb := cp.BB{L: min.X(), B: min.Y(), R: max.X(), T: max.Y()}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	s.addStatic(shape, layer)
}

func (s *Space) addStatic(shape *cp.Shape, layer LayerMask) {
	shape.SetFriction(0.8)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filterFor(layer))
	s.space.AddShape(shape)
}

// AddPlatform adds a kinematic box that moves at velocity and reverses after
// travelling travel units from its start. travel <= 0 moves forever.
func (s *Space) AddPlatform(min, max, velocity mgl64.Vec2, travel float64, layer LayerMask) *Platform {
	w := max.X() - min.X()
	h := max.Y() - min.Y()
	center := cp.Vector{X: min.X() + w/2, Y: min.Y() + h/2}

	body := cp.NewKinematicBody()
	body.SetPosition(center)
	body.SetVelocityVector(toCP(velocity))
	s.space.AddBody(body)

	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlatform)
	shape.SetFilter(filterFor(layer))
	s.space.AddShape(shape)

	p := &Platform{
		body:   body,
		origin: center,
		dir:    toCP(velocity).Normalize(),
		speed:  toCP(velocity).Length(),
		travel: travel,
		halfW:  w / 2,
		halfH:  h / 2,
	}
	s.platforms = append(s.platforms, p)
	s.logger.Debug("physics: platform added",
		zap.Float64("x", center.X), zap.Float64("y", center.Y), zap.Float64("speed", p.speed))
	return p
}

// AddCharacter creates the dynamic capsule of a character. halfHeight is
// the distance from the center to the feet.
func (s *Space) AddCharacter(pos mgl64.Vec3, radius, halfHeight float64) *CharacterBody {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Y()})
	s.space.AddBody(body)

	var shape *cp.Shape
	if reach := halfHeight - radius; reach > 0 {
		shape = cp.NewSegment(body, cp.Vector{Y: -reach}, cp.Vector{Y: reach}, radius)
	} else {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	}
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(filterFor(LayerPlayer))
	s.space.AddShape(shape)

	cb := &CharacterBody{body: body, shape: shape, z: pos.Z()}
	s.characters = append(s.characters, cb)
	s.logger.Debug("physics: character added",
		zap.Float64("x", pos.X()), zap.Float64("y", pos.Y()), zap.Float64("z", pos.Z()))
	return cb
}

// Platforms returns the moving platforms in creation order.
func (s *Space) Platforms() []*Platform {
	if s == nil {
		return nil
	}
	return s.platforms
}

// Step advances the simulation.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil || dt <= 0 {
		return
	}
	for _, p := range s.platforms {
		p.update()
	}
	s.space.Step(dt)
	for _, c := range s.characters {
		c.z += c.vz * dt
	}
}

// FixedUpdate lets the space run as a fixed-tick system.
func (s *Space) FixedUpdate(dt float64) {
	s.Step(dt)
}

// SphereCastAll sweeps a circle through the XY slice. A direction with no
// XY component cannot be represented and yields no hits.
//
// Candidates come from the swept bounds rather than the space's segment
// query, whose index walk only follows the centre line and misses shapes
// touched by the circle's edge alone.
func (s *Space) SphereCastAll(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask LayerMask) []Hit {
	if s == nil || s.space == nil || maxDistance <= 0 {
		return nil
	}
	d := cp.Vector{X: dir.X(), Y: dir.Y()}
	if d.Length() < 1e-9 {
		return nil
	}
	d = d.Normalize()

	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := start.Add(d.Mult(maxDistance))
	filter := cp.NewShapeFilter(0, uint(LayerAll), uint(mask))
	bounds := cp.NewBBForCircle(start, radius).Merge(cp.NewBBForCircle(end, radius))

	var hits []Hit
	s.space.BBQuery(bounds, filter, func(shape *cp.Shape, _ interface{}) {
		var info cp.SegmentQueryInfo
		if !shape.SegmentQuery(start, end, radius, &info) {
			return
		}
		hits = append(hits, Hit{
			Point:    mgl64.Vec3{info.Point.X, info.Point.Y, origin.Z()},
			Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
			Distance: info.Alpha * maxDistance,
			Surface:  surface{body: shape.Body()},
		})
	}, nil)
	return hits
}

func filterFor(layer LayerMask) cp.ShapeFilter {
	if layer == 0 {
		layer = LayerDefault
	}
	return cp.NewShapeFilter(0, uint(layer), uint(LayerAll))
}

func toCP(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

// surface exposes the motion of the body a hit shape belongs to.
type surface struct {
	body *cp.Body
}

func (s surface) Velocity() mgl64.Vec3 {
	if s.body == nil {
		return mgl64.Vec3{}
	}
	v := s.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

func (s surface) AngularVelocity() mgl64.Vec3 {
	if s.body == nil {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{0, 0, s.body.AngularVelocity()}
}

// Platform is a kinematic box moving back and forth along a line.
type Platform struct {
	body   *cp.Body
	origin cp.Vector
	dir    cp.Vector
	speed  float64
	travel float64
	halfW  float64
	halfH  float64
}

func (p *Platform) update() {
	if p.travel <= 0 || p.speed == 0 {
		return
	}
	along := p.body.Position().Sub(p.origin).Dot(p.dir)
	moving := p.body.Velocity().Dot(p.dir)
	switch {
	case along >= p.travel && moving > 0:
		p.body.SetVelocityVector(p.dir.Mult(-p.speed))
	case along <= 0 && moving < 0:
		p.body.SetVelocityVector(p.dir.Mult(p.speed))
	}
}

// Bounds returns the platform's current XY extents.
func (p *Platform) Bounds() (min, max mgl64.Vec2) {
	c := p.body.Position()
	return mgl64.Vec2{c.X - p.halfW, c.Y - p.halfH}, mgl64.Vec2{c.X + p.halfW, c.Y + p.halfH}
}

func (p *Platform) Velocity() mgl64.Vec3 {
	return surface{body: p.body}.Velocity()
}

// CharacterBody is the capsule body of a character. It implements Body.
type CharacterBody struct {
	body  *cp.Body
	shape *cp.Shape
	z     float64
	vz    float64
}

func (c *CharacterBody) Position() mgl64.Vec3 {
	p := c.body.Position()
	return mgl64.Vec3{p.X, p.Y, c.z}
}

func (c *CharacterBody) SetPosition(p mgl64.Vec3) {
	c.body.SetPosition(cp.Vector{X: p.X(), Y: p.Y()})
	c.z = p.Z()
}

func (c *CharacterBody) Velocity() mgl64.Vec3 {
	v := c.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, c.vz}
}

func (c *CharacterBody) ApplyVelocityChange(dv mgl64.Vec3) {
	v := c.body.Velocity()
	c.body.SetVelocityVector(cp.Vector{X: v.X + dv.X(), Y: v.Y + dv.Y()})
	c.vz += dv.Z()
}
