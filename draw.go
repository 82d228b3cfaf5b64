package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/thirdperson/camera"
	"github.com/milk9111/thirdperson/component"
)

var stateColors = map[component.MovementState]color.Color{
	component.OnGround: colornames.Limegreen,
	component.InAir:    colornames.Gold,
	component.Disabled: colornames.Gray,
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.drawLevel(screen)
	g.drawPlayer(screen)

	if g.debug {
		g.drawDebug(screen)
	}
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	v := g.view
	lvl := g.world.Level

	for _, s := range lvl.Segments {
		x0, y0 := v.WorldToScreen(s.A[0], s.A[1])
		x1, y1 := v.WorldToScreen(s.B[0], s.B[1])
		clr := color.Color(colornames.Lightgrey)
		if s.Layer != "" {
			clr = colornames.Slategray
		}
		w := v.Scale(2 * s.Radius)
		if w < 1 {
			w = 1
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, w, clr, true)
	}

	for _, b := range lvl.Boxes {
		drawRect(screen, v, b.Min, b.Max, colornames.Dimgray)
	}

	for _, p := range g.world.Space.Platforms() {
		min, max := p.Bounds()
		drawRect(screen, v, [2]float64(min), [2]float64(max), colornames.Steelblue)
	}
}

func drawRect(screen *ebiten.Image, v *camera.View, min, max [2]float64, clr color.Color) {
	// screen Y is flipped, so the top-left corner is (min.x, max.y)
	x, y := v.WorldToScreen(min[0], max[1])
	w := v.Scale(max[0] - min[0])
	h := v.Scale(max[1] - min[1])
	vector.FillRect(screen, x, y, w, h, clr, false)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	v := g.view
	cfg := g.player.Movement()
	pos := g.player.Position()
	clr, ok := stateColors[g.player.State()]
	if !ok {
		clr = colornames.Red
	}

	// capsule: two end caps joined by the body
	r := cfg.CheckForGroundRadius
	half := cfg.FootOffset
	top := pos.Add(mgl64.Vec3{0, half - r, 0})
	bottom := pos.Add(mgl64.Vec3{0, -(half - r), 0})
	tx, ty := v.WorldToScreen(top.X(), top.Y())
	bx, by := v.WorldToScreen(bottom.X(), bottom.Y())
	vector.StrokeCircle(screen, tx, ty, v.Scale(r), 2, clr, true)
	vector.StrokeCircle(screen, bx, by, v.Scale(r), 2, clr, true)
	vector.StrokeLine(screen, tx-v.Scale(r), ty, bx-v.Scale(r), by, 2, clr, true)
	vector.StrokeLine(screen, tx+v.Scale(r), ty, bx+v.Scale(r), by, 2, clr, true)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	v := g.view
	cfg := g.player.Movement()
	pos := g.player.Position()
	px, py := v.WorldToScreen(pos.X(), pos.Y())

	accel := g.player.DebugAccel().Mul(cfg.VectorVisualizeScale)
	ax, ay := v.WorldToScreen(pos.X()+accel.X(), pos.Y()+accel.Y())
	vector.StrokeLine(screen, px, py, ax, ay, 2, colornames.Crimson, true)

	vel := g.player.Velocity()
	vx, vy := v.WorldToScreen(pos.X()+vel.X()*0.25, pos.Y()+vel.Y()*0.25)
	vector.StrokeLine(screen, px, py, vx, vy, 1, colornames.Cyan, true)

	ground := g.player.Ground()
	if ground.Valid {
		n := pos.Sub(mgl64.Vec3{0, cfg.FootOffset, 0})
		nx, ny := v.WorldToScreen(n.X(), n.Y())
		ex, ey := v.WorldToScreen(n.X()+ground.Normal.X(), n.Y()+ground.Normal.Y())
		vector.StrokeLine(screen, nx, ny, ex, ey, 1, colornames.Lightgreen, true)
	}

	m := g.player.Motion()
	rot := g.rig.ControlRotation()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f  frames: %d\nstate: %s  pos: %.2f %.2f %.2f\nvel: %.2f %.2f %.2f  air: %.2fs\ncamera pitch %.1f yaw %.1f",
		ebiten.ActualFPS(), g.frames,
		g.player.State(), pos.X(), pos.Y(), pos.Z(),
		m.Velocity.X(), m.Velocity.Y(), m.Velocity.Z(), m.TimeInAir,
		rot.X(), rot.Y(),
	))
}
