package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// normalEpsilon is the finite-difference offset used by Normal.
const normalEpsilon = 1e-4

// Field is an implicit surface in canonical local space: centered at the
// origin, axis-aligned, Y up. The set of variants is closed; every variant
// implements localDistance.
type Field interface {
	// localDistance returns the signed distance from p (local space) to the
	// surface. Negative inside.
	localDistance(p mgl64.Vec3) float64
}

// Sphere is a sphere of the given radius.
type Sphere struct {
	Radius float64
}

// Cuboid is an axis-aligned box with the given half extents.
type Cuboid struct {
	HalfExtents mgl64.Vec3
}

// Torus lies in the local XZ plane around the Y axis.
type Torus struct {
	MajorRadius float64
	MinorRadius float64
}

// Cylinder is capped, with its axis along local Y.
type Cylinder struct {
	Radius     float64
	HalfHeight float64
}

func (s Sphere) localDistance(p mgl64.Vec3) float64 {
	return p.Len() - s.Radius
}

func (c Cuboid) localDistance(p mgl64.Vec3) float64 {
	qx := math.Abs(p[0]) - c.HalfExtents[0]
	qy := math.Abs(p[1]) - c.HalfExtents[1]
	qz := math.Abs(p[2]) - c.HalfExtents[2]
	outside := mgl64.Vec3{math.Max(qx, 0), math.Max(qy, 0), math.Max(qz, 0)}.Len()
	inside := math.Min(math.Max(qx, math.Max(qy, qz)), 0)
	return outside + inside
}

func (t Torus) localDistance(p mgl64.Vec3) float64 {
	radial := math.Hypot(p[0], p[2]) - t.MajorRadius
	return math.Hypot(radial, p[1]) - t.MinorRadius
}

func (c Cylinder) localDistance(p mgl64.Vec3) float64 {
	dx := math.Hypot(p[0], p[2]) - c.Radius
	dy := math.Abs(p[1]) - c.HalfHeight
	inside := math.Min(math.Max(dx, dy), 0)
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	return inside + outside
}

// Distance returns the signed distance from the world-space point p to the
// field placed at xf. Negative inside.
func Distance(f Field, xf Transform, p mgl64.Vec3) float64 {
	return f.localDistance(transformPoint(xf.InverseMatrix(), p))
}

// Normal returns the unit surface normal of the field at the world-space point
// p, pointing away from the surface (outward outside, inward-facing gradient
// inside). The gradient is estimated with central differences along the
// field's local axes and mapped into world space by the inverse scale and the
// rotation. Where the gradient vanishes
// (the exact center of a sphere) the zero vector is returned.
func Normal(f Field, xf Transform, p mgl64.Vec3) mgl64.Vec3 {
	lp := transformPoint(xf.InverseMatrix(), p)
	var grad mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		var off mgl64.Vec3
		off[axis] = normalEpsilon
		grad[axis] = f.localDistance(lp.Add(off)) - f.localDistance(lp.Sub(off))
	}
	s := xf.Scale
	n := xf.Rotation.Rotate(mgl64.Vec3{grad[0] / s[0], grad[1] / s[1], grad[2] / s[2]})
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// ClosestPoint returns the point on the field's surface nearest to the
// world-space point p: p - Normal(p) * Distance(p).
func ClosestPoint(f Field, xf Transform, p mgl64.Vec3) mgl64.Vec3 {
	return p.Sub(Normal(f, xf, p).Mul(Distance(f, xf, p)))
}
