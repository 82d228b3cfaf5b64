package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/thirdperson/levels"
)

var down = mgl64.Vec3{0, -1, 0}

func TestSphereCastAllFlatGround(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0, LayerDefault)

	hits := s.SphereCastAll(mgl64.Vec3{0, 2, 3}, 0.5, down, 2, GroundMask)
	require.Len(t, hits, 1)

	h := hits[0]
	assert.InDelta(t, 1.5, h.Distance, 1e-6)
	assert.InDelta(t, 1, h.Normal.Y(), 1e-6)
	assert.InDelta(t, 0, h.Point.Y(), 1e-6)
	assert.Equal(t, 3.0, h.Point.Z(), "hits keep the query depth")
	require.NotNil(t, h.Surface)
	assert.Equal(t, mgl64.Vec3{}, h.Surface.Velocity())
}

func TestSphereCastAllOutOfReach(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0, LayerDefault)

	assert.Empty(t, s.SphereCastAll(mgl64.Vec3{0, 5, 0}, 0.5, down, 2, GroundMask))
	assert.Empty(t, s.SphereCastAll(mgl64.Vec3{0, 2, 0}, 0.5, down, 0, GroundMask))
	assert.Empty(t, s.SphereCastAll(mgl64.Vec3{0, 2, 0}, 0.5, mgl64.Vec3{0, 0, 1}, 2, GroundMask))
}

func TestSphereCastAllRespectsMask(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0, LayerIgnoreRaycast)

	assert.Empty(t, s.SphereCastAll(mgl64.Vec3{0, 2, 0}, 0.5, down, 2, GroundMask))
	assert.Len(t, s.SphereCastAll(mgl64.Vec3{0, 2, 0}, 0.5, down, 2, LayerAll), 1)
}

func TestSphereCastAllSkipsCharacters(t *testing.T) {
	s := NewSpace(nil)
	s.AddCharacter(mgl64.Vec3{0, 5, 0}, 0.5, 1)

	assert.Empty(t, s.SphereCastAll(mgl64.Vec3{0, 7, 0}, 0.5, down, 4, GroundMask))
}

func TestSphereCastAllCollectsEverySurface(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0, LayerDefault)
	s.AddBox(mgl64.Vec2{-1, -0.5}, mgl64.Vec2{1, 0.5}, LayerDefault)

	hits := s.SphereCastAll(mgl64.Vec3{0, 3, 0}, 0.5, down, 3, GroundMask)
	require.Len(t, hits, 2)
}

func TestPlatformSurfaceVelocity(t *testing.T) {
	s := NewSpace(nil)
	s.AddPlatform(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0.5}, mgl64.Vec2{2, 0}, 0, LayerDefault)

	hits := s.SphereCastAll(mgl64.Vec3{0, 2, 0}, 0.5, down, 3, GroundMask)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1, hits[0].Distance, 1e-6)
	assert.True(t, hits[0].Surface.Velocity().ApproxEqual(mgl64.Vec3{2, 0, 0}))
}

func TestPlatformTurnsAround(t *testing.T) {
	s := NewSpace(nil)
	p := s.AddPlatform(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0.5}, mgl64.Vec2{2, 0}, 1, LayerDefault)

	for i := 0; i < 8; i++ {
		s.Step(0.1)
	}

	assert.Less(t, p.Velocity().X(), 0.0)
	min, max := p.Bounds()
	assert.Less(t, (min.X()+max.X())/2, 1.5)
	assert.InDelta(t, 0.5, max.Y()-min.Y(), 1e-9)
}

func TestCharacterBodyVelocityChange(t *testing.T) {
	s := NewSpace(nil)
	b := s.AddCharacter(mgl64.Vec3{0, 5, 0}, 0.5, 1)

	b.ApplyVelocityChange(mgl64.Vec3{1, 2, 3})
	assert.True(t, b.Velocity().ApproxEqual(mgl64.Vec3{1, 2, 3}))

	s.Step(0.5)
	pos := b.Position()
	assert.InDelta(t, 0.5, pos.X(), 1e-6)
	assert.InDelta(t, 6, pos.Y(), 1e-6)
	assert.InDelta(t, 1.5, pos.Z(), 1e-9)

	b.SetPosition(mgl64.Vec3{4, 4, 4})
	assert.True(t, b.Position().ApproxEqual(mgl64.Vec3{4, 4, 4}))
}

func TestLayerByName(t *testing.T) {
	tests := []struct {
		name    string
		want    LayerMask
		wantErr bool
	}{
		{"", LayerDefault, false},
		{"default", LayerDefault, false},
		{"Ignore_Raycast", LayerIgnoreRaycast, false},
		{"player", LayerPlayer, false},
		{"water", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LayerByName(tc.name)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGroundMaskExcludesPlayerAndIgnoreRaycast(t *testing.T) {
	assert.Zero(t, GroundMask&LayerPlayer)
	assert.Zero(t, GroundMask&LayerIgnoreRaycast)
	assert.NotZero(t, GroundMask&LayerDefault)
}

func TestNewSpaceFromLevel(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("flat")
	require.NoError(t, err)

	s := NewSpaceFromLevel(lvl, nil)
	hits := s.SphereCastAll(mgl64.Vec3{0, 1.5, 0}, 0.5, down, 1.5, GroundMask)
	require.Len(t, hits, 1)

	arena, err := levels.LoadLevelFromFS("arena")
	require.NoError(t, err)
	assert.Len(t, NewSpaceFromLevel(arena, nil).Platforms(), 2)
}

func TestSphereCastAllFindsEdgeContact(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0, LayerDefault)
	s.AddBox(mgl64.Vec2{20, 0}, mgl64.Vec2{21, 1}, LayerDefault)
	s.AddSegment(mgl64.Vec2{-30, 0}, mgl64.Vec2{-30, 5}, 0, LayerDefault)

	// the centre line stops at y=0.3, only the circle reaches the floor
	hits := s.SphereCastAll(mgl64.Vec3{0, 1.5, 0}, 0.5, down, 1.2, GroundMask)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Distance, 1e-6)
	assert.InDelta(t, 1, hits[0].Normal.Y(), 1e-6)
	assert.InDelta(t, 0, hits[0].Point.Y(), 1e-6)
}

func TestSphereCastAllFindsPlatformEdgeContact(t *testing.T) {
	s := NewSpace(nil)
	s.AddSegment(mgl64.Vec2{-10, -5}, mgl64.Vec2{10, -5}, 0, LayerDefault)
	s.AddPlatform(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0.5}, mgl64.Vec2{2, 0}, 0, LayerDefault)
	s.AddCharacter(mgl64.Vec3{5, 3, 0}, 0.5, 1)

	hits := s.SphereCastAll(mgl64.Vec3{0, 1.5, 0}, 0.5, down, 0.7, GroundMask)
	require.Len(t, hits, 1)
	assert.InDelta(t, 0.5, hits[0].Distance, 1e-6)
	assert.True(t, hits[0].Surface.Velocity().ApproxEqual(mgl64.Vec3{2, 0, 0}))
}
