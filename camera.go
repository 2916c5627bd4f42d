package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned screen rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a perspective camera looking down its local -Z axis. It turns
// viewport pixels into world rays for pointer input methods.
type Camera struct {
	// Transform is the camera's world pose. Scale is ignored.
	Transform Transform
	// FovY is the vertical field of view in radians.
	FovY float64
	// Viewport is the screen rectangle the camera projects into.
	Viewport Rect

	move *moveAnim
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera(viewport Rect, fovYDegrees float64) *Camera {
	return &Camera{
		Transform: Identity(),
		FovY:      mgl64.DegToRad(fovYDegrees),
		Viewport:  viewport,
	}
}

// LookAt turns the camera so its -Z axis points at target. Roll is not
// controlled.
func (c *Camera) LookAt(target mgl64.Vec3) {
	dir := target.Sub(c.Transform.Position)
	if dir.Len() == 0 {
		return
	}
	c.Transform.Rotation = mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, -1}, dir.Normalize())
}

// MoveTo animates the camera position to target over duration seconds.
func (c *Camera) MoveTo(target mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	p := c.Transform.Position
	c.move = &moveAnim{}
	for i := range 3 {
		c.move.tweens[i] = gween.New(float32(p[i]), float32(target[i]), duration, easeFn)
	}
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool { return c.move != nil }

// Update advances the move animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.move == nil {
		return
	}
	finished := true
	for i := range 3 {
		if c.move.done[i] {
			continue
		}
		val, done := c.move.tweens[i].Update(dt)
		c.Transform.Position[i] = float64(val)
		c.move.done[i] = done
		finished = finished && done
	}
	if finished {
		c.move = nil
	}
}

// ViewportRay returns the world ray through screen point (sx, sy).
func (c *Camera) ViewportRay(sx, sy float64) Ray {
	vp := c.Viewport
	nx := (sx-vp.X)/vp.Width*2 - 1
	ny := 1 - (sy-vp.Y)/vp.Height*2
	tanHalf := math.Tan(c.FovY / 2)
	aspect := vp.Width / vp.Height
	local := mgl64.Vec3{nx * tanHalf * aspect, ny * tanHalf, -1}
	return NewRay(c.Transform.Position, c.Transform.Rotation.Rotate(local))
}

// WorldToScreen projects a world point into the viewport. ok is false for
// points behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	local := c.Transform.Rotation.Inverse().Rotate(p.Sub(c.Transform.Position))
	if local.Z() >= 0 {
		return 0, 0, false
	}
	tanHalf := math.Tan(c.FovY / 2)
	aspect := c.Viewport.Width / c.Viewport.Height
	nx := local.X() / -local.Z() / (tanHalf * aspect)
	ny := local.Y() / -local.Z() / tanHalf
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, true
}

// ProjectedRadius returns the approximate on-screen radius in pixels of a
// sphere of world radius r at point p.
func (c *Camera) ProjectedRadius(p mgl64.Vec3, r float64) float64 {
	depth := p.Sub(c.Transform.Position).Len()
	if depth <= r {
		return c.Viewport.Height
	}
	return r / (depth * math.Tan(c.FovY/2)) * c.Viewport.Height / 2
}
