package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/thirdperson/component"
)

const (
	stickDeadZone = 0.3
	// degrees per pixel of mouse drag
	mouseLookScale = 0.25
	// degrees per frame while a look key is held or the stick is fully over
	keyLookSpeed   = 2.0
	stickLookSpeed = 3.0
)

// Keyboard polls the keyboard, mouse and the first gamepad.
type Keyboard struct {
	// Yaw and Pitch are the look deltas read this frame.
	Yaw   float64
	Pitch float64
	// TogglePressed is true on the frame the disable toggle was pressed.
	TogglePressed bool
	// QuitPressed is true on the frame the quit key was pressed.
	QuitPressed bool

	move mgl64.Vec2
	jump bool

	rotation component.RotationSource

	dragging bool
	lastX    int
	lastY    int
}

func NewKeyboard(rot component.RotationSource) *Keyboard {
	return &Keyboard{rotation: rot}
}

func (k *Keyboard) SetRotationSource(rot component.RotationSource) { k.rotation = rot }

// Update polls the devices. Call once per ebiten Update.
func (k *Keyboard) Update() {
	k.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	k.TogglePressed = inpututil.IsKeyJustPressed(ebiten.KeyF)

	k.move = moveFromKeys(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	)
	k.jump = ebiten.IsKeyPressed(ebiten.KeySpace)

	var yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		yaw -= keyLookSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		yaw += keyLookSpeed
	}

	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if k.dragging {
			yaw += float64(mx-k.lastX) * mouseLookScale
			pitch += float64(k.lastY-my) * mouseLookScale
		}
		k.dragging = true
	} else {
		k.dragging = false
	}
	k.lastX, k.lastY = mx, my

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if stick := moveFromStick(lx, ly); stick.LenSqr() > 0 {
			k.move = stick
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) {
			k.jump = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop) {
			k.TogglePressed = true
		}

		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		look := moveFromStick(rx, ry)
		yaw += look.X() * stickLookSpeed
		pitch += look.Y() * stickLookSpeed
	}

	k.Yaw = yaw
	k.Pitch = pitch
}

func (k *Keyboard) GetMoveInput() mgl64.Vec2 { return k.move }

func (k *Keyboard) IsJumping() bool { return k.jump }

func (k *Keyboard) GetControlRotation() mgl64.Vec3 {
	if k.rotation == nil {
		return mgl64.Vec3{}
	}
	return k.rotation.ControlRotation()
}

// moveFromKeys turns four direction keys into a move vector: X is right,
// Y is forward. Opposite keys cancel.
func moveFromKeys(forward, back, left, right bool) mgl64.Vec2 {
	var v mgl64.Vec2
	if forward {
		v[1]++
	}
	if back {
		v[1]--
	}
	if left {
		v[0]--
	}
	if right {
		v[0]++
	}
	return v
}

// moveFromStick maps stick axes to a move vector. Screen-down stick Y is
// flipped to forward, and a deflection inside the dead zone reads as zero.
func moveFromStick(x, y float64) mgl64.Vec2 {
	v := mgl64.Vec2{x, -y}
	if v.Len() < stickDeadZone {
		return mgl64.Vec2{}
	}
	return v
}
