// Package flycam implements a free-flying editor camera driven by
// keyboard movement, mouse look and wheel dolly.
package flycam

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/leveled/input"
	"github.com/plus3/leveled/scene"
)

const (
	lookScale = 0.007
	lineScale = 1.0
	// A pixel-unit wheel delta this large counts as one line.
	pixelsPerLine = 16
	pitchLimit    = math.Pi/2 - 0.01
)

var xAxis = mgl32.Vec3{1, 0, 0}

// Bindings maps camera movements to keys and the look button.
type Bindings struct {
	Left   ebiten.Key
	Right  ebiten.Key
	Up     ebiten.Key
	Down   ebiten.Key
	Near   ebiten.Key
	Far    ebiten.Key
	Rotate ebiten.MouseButton
}

// DefaultBindings is WASD with Space and left Shift for vertical movement,
// looking around while the middle button is held.
func DefaultBindings() Bindings {
	return Bindings{
		Left:   ebiten.KeyA,
		Right:  ebiten.KeyD,
		Up:     ebiten.KeySpace,
		Down:   ebiten.KeyShiftLeft,
		Near:   ebiten.KeyS,
		Far:    ebiten.KeyW,
		Rotate: ebiten.MouseButtonMiddle,
	}
}

// Flycam is attached to the camera entity next to its Transform. Pitch and
// Yaw are in radians; the Transform rotation is derived from them every
// frame.
type Flycam struct {
	Speed             float32
	LookSensitivity   float32
	ScrollSensitivity float32
	Pitch             float32
	Yaw               float32
	Bindings          Bindings
}

// New returns a camera looking slightly downwards along -Z.
func New() Flycam {
	return Flycam{
		Speed:             7,
		LookSensitivity:   0.5,
		ScrollSensitivity: 0.5,
		Pitch:             -0.3,
		Bindings:          DefaultBindings(),
	}
}

// Direction is the unit view direction: -Z pitched about X, then yawed
// about Y.
func (f Flycam) Direction() mgl32.Vec3 {
	q := mgl32.QuatRotate(f.Yaw, scene.Up).Mul(mgl32.QuatRotate(f.Pitch, xAxis))
	return q.Rotate(scene.Forward)
}

// DirectionXZ is Direction with pitch ignored, i.e. the horizontal heading.
func (f Flycam) DirectionXZ() mgl32.Vec3 {
	return mgl32.QuatRotate(f.Yaw, scene.Up).Rotate(scene.Forward)
}

// Look turns the camera by a mouse delta in pixels. Pitch stays strictly
// within (-90°, +90°).
func (f *Flycam) Look(delta mgl32.Vec2) {
	f.Yaw += -lookScale * delta.X() * f.LookSensitivity
	f.Pitch += -lookScale * delta.Y() * f.LookSensitivity
	f.Pitch = mgl32.Clamp(f.Pitch, -pitchLimit, pitchLimit)
}

func scrollLines(in *input.State) float32 {
	if in.ScrollUnit == input.ScrollPixel {
		return in.Scroll.Y() / pixelsPerLine
	}
	return in.Scroll.Y()
}

// Control applies one frame of input to a camera. dt is in seconds.
func Control(t *scene.Transform, cam *Flycam, in *input.State, dt float32) {
	if in.ButtonPressed(cam.Bindings.Rotate) {
		cam.Look(in.MouseDelta)
	}

	direction := cam.Direction()
	if lines := scrollLines(in); lines != 0 {
		t.Translation = t.Translation.Add(direction.Mul(lines * lineScale * cam.ScrollSensitivity))
	}

	far := cam.DirectionXZ()
	left := scene.Up.Cross(far)
	step := cam.Speed * dt

	moves := []struct {
		key ebiten.Key
		dir mgl32.Vec3
	}{
		{cam.Bindings.Left, left},
		{cam.Bindings.Right, left.Mul(-1)},
		{cam.Bindings.Up, scene.Up},
		{cam.Bindings.Down, scene.Up.Mul(-1)},
		{cam.Bindings.Near, far.Mul(-1)},
		{cam.Bindings.Far, far},
	}
	for _, m := range moves {
		if in.Pressed(m.key) {
			t.Translation = t.Translation.Add(m.dir.Mul(step))
		}
	}

	t.LookAt(t.Translation.Add(direction), scene.Up)
}
