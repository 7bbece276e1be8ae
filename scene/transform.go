package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, -1}
)

// Transform places an entity in world space. The local -Z axis is forward.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved to translation.
func FromTranslation(translation mgl32.Vec3) Transform {
	t := NewTransform()
	t.Translation = translation
	return t
}

// FromXYZ is FromTranslation for loose coordinates.
func FromXYZ(x, y, z float32) Transform {
	return FromTranslation(mgl32.Vec3{x, y, z})
}

// WithRotation returns a copy of t with the given rotation.
func (t Transform) WithRotation(rotation mgl32.Quat) Transform {
	t.Rotation = rotation
	return t
}

// WithScale returns a copy of t with the given scale.
func (t Transform) WithScale(scale mgl32.Vec3) Transform {
	t.Scale = scale
	return t
}

// Forward returns the world-space direction of the local -Z axis.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(Forward)
}

// LookAt rotates t so that its forward axis points at target and its up
// axis lies in the plane of up and forward. The rotation is left unchanged
// when target coincides with the translation or forward is parallel to up.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	back := t.Translation.Sub(target)
	if back.Len() < 1e-6 {
		return
	}
	back = back.Normalize()

	right := up.Cross(back)
	if right.Len() < 1e-6 {
		return
	}
	right = right.Normalize()
	trueUp := back.Cross(right)

	t.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, trueUp, back).Mat4()).Normalize()
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}
