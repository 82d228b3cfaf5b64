package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/thirdperson/common"
)

// View maps the XY slice of the world onto the debug screen. World Y points
// up, screen Y points down.
type View struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	// pixels per world unit
	zoom float64
	// ease rate toward the follow target, 0 snaps
	ease float64
}

// NewView creates a view with the given logical screen size and zoom.
func NewView(screenW, screenH int, zoom float64) *View {
	if zoom <= 0 {
		zoom = 1
	}
	return &View{screenW: screenW, screenH: screenH, zoom: zoom, ease: 4}
}

func (v *View) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	v.zoom = z
}

func (v *View) SetEase(rate float64) {
	if rate < 0 {
		rate = 0
	}
	v.ease = rate
}

// Update moves the view center toward the target world point.
func (v *View) Update(target mgl64.Vec3, dt float64) {
	if v.ease <= 0 {
		v.SnapTo(target)
		return
	}
	v.PosX = common.LerpTo(v.ease, v.PosX, target.X(), dt)
	v.PosY = common.LerpTo(v.ease, v.PosY, target.Y(), dt)
}

// SnapTo centers the view immediately, e.g. after a level load.
func (v *View) SnapTo(target mgl64.Vec3) {
	v.PosX = target.X()
	v.PosY = target.Y()
}

// WorldToScreen projects a world point to screen pixels, rounded so lines
// stay on the pixel grid.
func (v *View) WorldToScreen(x, y float64) (float32, float32) {
	sx := (x-v.PosX)*v.zoom + float64(v.screenW)/2
	sy := (v.PosY-y)*v.zoom + float64(v.screenH)/2
	return float32(math.Round(sx)), float32(math.Round(sy))
}

// Scale converts a world length to pixels.
func (v *View) Scale(l float64) float32 {
	return float32(l * v.zoom)
}
