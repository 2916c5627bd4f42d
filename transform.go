package grasp

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world placement: translation, rotation and non-uniform scale.
// The zero value is degenerate (zero scale); build transforms with
// NewTransform or Identity.
//
// Composition order:
//
//	Scale -> Rotate -> Translate
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// NewTransform returns an unrotated, unscaled transform at position.
func NewTransform(position mgl64.Vec3) Transform {
	t := Identity()
	t.Position = position
	return t
}

// WithRotation returns a copy of t with the given rotation.
func (t Transform) WithRotation(q mgl64.Quat) Transform {
	t.Rotation = q
	return t
}

// WithScale returns a copy of t with the given scale.
func (t Transform) WithScale(s mgl64.Vec3) Transform {
	t.Scale = s
	return t
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	sc := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Rotation.Mat4()).Mul4(sc)
}

// InverseMatrix returns the world-to-local matrix. A non-invertible transform
// (any zero scale axis) is a caller error and yields a meaningless matrix.
func (t Transform) InverseMatrix() mgl64.Mat4 {
	inv := mgl64.Vec3{1 / t.Scale[0], 1 / t.Scale[1], 1 / t.Scale[2]}
	sc := mgl64.Scale3D(inv[0], inv[1], inv[2])
	rot := t.Rotation.Inverse().Mat4()
	tr := mgl64.Translate3D(-t.Position[0], -t.Position[1], -t.Position[2])
	return sc.Mul4(rot).Mul4(tr)
}

// WorldToLocal converts a world-space point to this transform's local space.
func (t Transform) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.InverseMatrix())
}

// LocalToWorld converts a local-space point to world space.
func (t Transform) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, t.Matrix())
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

// transformDirection applies the linear part of m to v and renormalizes.
// A direction that collapses to zero is returned unchanged.
func transformDirection(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	d := mgl64.TransformNormal(v, m)
	if d.Len() == 0 {
		return v
	}
	return d.Normalize()
}

// rotationOf extracts the rotational part of an affine matrix by normalizing
// its basis columns. Shear is not supported.
func rotationOf(m mgl64.Mat4) mgl64.Quat {
	c0 := m.Col(0).Vec3().Normalize()
	c1 := m.Col(1).Vec3().Normalize()
	c2 := m.Col(2).Vec3().Normalize()
	r := mgl64.Mat4FromCols(c0.Vec4(0), c1.Vec4(0), c2.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(r).Normalize()
}
