package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/component"
	"github.com/milk9111/thirdperson/physics"
)

// GroundSensor finds the walkable surface under a character.
type GroundSensor struct {
	Query physics.Query
	Mask  physics.LayerMask
}

func NewGroundSensor(q physics.Query) *GroundSensor {
	return &GroundSensor{Query: q, Mask: physics.GroundMask}
}

// DetectGround casts below the character and reports the nearest walkable
// surface. It never mutates the character.
func (g *GroundSensor) DetectGround(c *Character) component.GroundInfo {
	if c == nil || c.body == nil {
		return component.NoGround()
	}
	return g.Detect(c.body.Position(), &c.cfg)
}

// Detect runs the ground query for a body centered at pos.
func (g *GroundSensor) Detect(pos mgl64.Vec3, cfg *component.Movement) component.GroundInfo {
	info := component.NoGround()
	if g == nil || g.Query == nil || cfg == nil {
		return info
	}

	half := cfg.FootOffset
	radius := cfg.CheckForGroundRadius
	origin := pos.Add(mgl64.Vec3{0, cfg.GroundCheckStartOffsetY, 0})
	dist := half + cfg.GroundCheckStartOffsetY - radius

	hits := g.Query.SphereCastAll(origin, radius, common.Down, dist, g.Mask)

	best := -1
	minDist := math.MaxFloat64
	for i, h := range hits {
		// zero-distance hits come from casts starting inside a wall
		if common.CalcVerticalAngle(h.Normal) < cfg.MinAllowedSurfaceAngle || h.Distance <= 0 {
			continue
		}
		if h.Distance < minDist {
			minDist = h.Distance
			best = i
		}
	}
	if best < 0 {
		return info
	}

	hit := hits[best]
	bottom := common.ProjectToBottomOfCapsule(hit.Point, pos, half*2, radius)

	info.Valid = true
	info.Distance = hit.Distance
	info.StepUp = hit.Point.Y() - bottom.Y()
	info.TargetCenterHeight = pos.Y() + info.StepUp - cfg.GroundResolutionOverlap
	info.Normal = hit.Normal
	if hit.Surface != nil {
		info.Velocity = hit.Surface.Velocity()
		info.AngularVelocity = hit.Surface.AngularVelocity()
	}
	return info
}
