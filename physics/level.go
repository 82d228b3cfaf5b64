package physics

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/thirdperson/levels"
)

// LayerByName maps level layer names to masks. Empty means default.
func LayerByName(name string) (LayerMask, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return LayerDefault, nil
	case "ignore_raycast", "ignore raycast":
		return LayerIgnoreRaycast, nil
	case "player":
		return LayerPlayer, nil
	default:
		return 0, fmt.Errorf("physics: unknown layer %q", name)
	}
}

// NewSpaceFromLevel builds a space holding the level's static geometry and
// moving platforms. Unknown layers fall back to default with a warning.
func NewSpaceFromLevel(lvl *levels.Level, logger *zap.Logger) *Space {
	s := NewSpace(logger)
	if lvl == nil {
		return s
	}

	layer := func(name string) LayerMask {
		l, err := LayerByName(name)
		if err != nil {
			s.logger.Warn("physics: level layer", zap.String("level", lvl.Name), zap.Error(err))
			return LayerDefault
		}
		return l
	}

	for _, seg := range lvl.Segments {
		s.AddSegment(mgl64.Vec2(seg.A), mgl64.Vec2(seg.B), seg.Radius, layer(seg.Layer))
	}
	for _, b := range lvl.Boxes {
		s.AddBox(mgl64.Vec2(b.Min), mgl64.Vec2(b.Max), layer(b.Layer))
	}
	for _, p := range lvl.Platforms {
		s.AddPlatform(mgl64.Vec2(p.Min), mgl64.Vec2(p.Max), mgl64.Vec2(p.Velocity), p.Travel, layer(p.Layer))
	}

	s.logger.Info("physics: level built",
		zap.String("level", lvl.Name),
		zap.Int("segments", len(lvl.Segments)),
		zap.Int("boxes", len(lvl.Boxes)),
		zap.Int("platforms", len(lvl.Platforms)))
	return s
}
