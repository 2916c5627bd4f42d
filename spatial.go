package grasp

import "github.com/go-gl/mathgl/mgl64"

// SpatialInput is the shape and pose an input method has this tick. The set of
// variants is closed: Hand, Tip and Ray.
type SpatialInput interface {
	// Distance returns the signed distance between the input and the field.
	// Only Ray uses cfg.
	Distance(f Field, xf Transform, cfg RaymarchConfig) float64
	// ClosestPoint returns the world-space point on the field surface nearest
	// to the input's probe point.
	ClosestPoint(f Field, xf Transform, cfg RaymarchConfig) mgl64.Vec3
	// Transform maps the input into another space, keeping its variant.
	Transform(m mgl64.Mat4) SpatialInput

	spatialInput()
}

// Tip is a single pose standing in for a fingertip or controller tip.
type Tip struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewTip returns an unrotated tip at position.
func NewTip(position mgl64.Vec3) Tip {
	return Tip{Position: position, Orientation: mgl64.QuatIdent()}
}

// Distance is the field distance at the tip position.
func (t Tip) Distance(f Field, xf Transform, _ RaymarchConfig) float64 {
	return Distance(f, xf, t.Position)
}

// ClosestPoint is the field surface point nearest to the tip.
func (t Tip) ClosestPoint(f Field, xf Transform, _ RaymarchConfig) mgl64.Vec3 {
	return ClosestPoint(f, xf, t.Position)
}

// Transform maps the tip pose through m.
func (t Tip) Transform(m mgl64.Mat4) SpatialInput {
	return Tip{
		Position:    transformPoint(m, t.Position),
		Orientation: rotationOf(m).Mul(t.Orientation),
	}
}

func (Tip) spatialInput() {}

// Distance is the closest approach of a sphere trace along the ray.
func (r Ray) Distance(f Field, xf Transform, cfg RaymarchConfig) float64 {
	return Raymarch(f, xf, r, cfg).ClosestDistance
}

// ClosestPoint is the field surface point nearest to the ray's closest
// approach.
func (r Ray) ClosestPoint(f Field, xf Transform, cfg RaymarchConfig) mgl64.Vec3 {
	res := Raymarch(f, xf, r, cfg)
	return ClosestPoint(f, xf, res.Point(r))
}

// Transform maps the origin through m and renormalizes the mapped direction.
func (r Ray) Transform(m mgl64.Mat4) SpatialInput {
	return Ray{
		Origin:    transformPoint(m, r.Origin),
		Direction: transformDirection(m, r.Direction),
	}
}

func (Ray) spatialInput() {}

// Pose returns a representative position and orientation for any spatial
// input: the palm for hands, the pose for tips, and the origin looking along
// the direction for rays.
func Pose(in SpatialInput) (mgl64.Vec3, mgl64.Quat) {
	switch v := in.(type) {
	case Hand:
		return v.Palm.Position, v.Palm.Orientation
	case Tip:
		return v.Position, v.Orientation
	case Ray:
		return v.Origin, mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, -1}, v.Direction)
	default:
		return mgl64.Vec3{}, mgl64.QuatIdent()
	}
}
