package grasp

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line with a unit direction. It is also the spatial shape of
// pointing input methods.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at length l along the ray.
func (r Ray) At(l float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(l))
}

// RaymarchConfig bounds a sphere trace.
type RaymarchConfig struct {
	MaxSteps    int     `yaml:"max_steps"`
	MinStepSize float64 `yaml:"min_step_size"`
	MaxDistance float64 `yaml:"max_distance"`
	// HitDistance is the surface distance at or below which a field counts
	// as reached and stops being traced.
	HitDistance float64 `yaml:"hit_distance"`
}

// DefaultRaymarchConfig returns the default trace bounds.
func DefaultRaymarchConfig() RaymarchConfig {
	return RaymarchConfig{
		MaxSteps:    1000,
		MinStepSize: 0.001,
		MaxDistance: 10_000,
		HitDistance: 1e-5,
	}
}

// RaymarchResult is the closest approach of a ray to one field.
type RaymarchResult struct {
	// ClosestDistance is the smallest signed distance seen along the ray.
	ClosestDistance float64
	// DeepestPointRayLength is the ray length at which ClosestDistance was seen.
	DeepestPointRayLength float64
	// RayLength is how far the trace had advanced when it stopped.
	RayLength float64
	// Steps is the number of distance evaluations taken.
	Steps int
	// Hit reports whether the trace came within HitDistance of the surface.
	Hit bool
}

// Point returns the ray point at the closest approach.
func (r RaymarchResult) Point(ray Ray) mgl64.Vec3 {
	return ray.At(r.DeepestPointRayLength)
}

// Raymarch sphere-traces ray against a single field. The trace advances by
// max(distance, MinStepSize) per step and stops at MaxSteps, MaxDistance or
// when the surface is reached. It reports the closest approach found, which
// is not guaranteed to be an exact surface hit.
func Raymarch(f Field, xf Transform, ray Ray, cfg RaymarchConfig) RaymarchResult {
	inv := xf.InverseMatrix()
	res := RaymarchResult{ClosestDistance: math.MaxFloat64}
	for res.Steps < cfg.MaxSteps && res.RayLength < cfg.MaxDistance {
		d := f.localDistance(transformPoint(inv, ray.At(res.RayLength)))
		res.Steps++
		if d < res.ClosestDistance {
			res.ClosestDistance = d
			res.DeepestPointRayLength = res.RayLength
		}
		if d <= cfg.HitDistance {
			res.Hit = true
			break
		}
		res.RayLength += math.Max(d, cfg.MinStepSize)
	}
	return res
}

// PlacedField is a field together with its world transform and the entity that
// will be reported for it.
type PlacedField struct {
	Entity    Entity
	Field     Field
	Transform Transform
}

// MarchHit is one entry of a joint ray march.
type MarchHit struct {
	Entity Entity
	Result RaymarchResult
}

// RaymarchFields traces one ray against all fields at once. Each step advances
// by the smallest distance to any field not yet reached, so no surface is
// skipped. A field is resolved the first time the trace comes within
// HitDistance of it; unresolved fields report their closest approach when the
// trace ends.
//
// The returned slice is ordered by what the ray would touch first: reached
// fields before missed ones, then ascending ray length at closest approach,
// then ascending distance there, then ascending Entity.
func RaymarchFields(ray Ray, fields []PlacedField, cfg RaymarchConfig) []MarchHit {
	type tracked struct {
		inv  mgl64.Mat4
		res  RaymarchResult
		done bool
	}
	state := make([]tracked, len(fields))
	for i := range fields {
		state[i] = tracked{
			inv: fields[i].Transform.InverseMatrix(),
			res: RaymarchResult{ClosestDistance: math.MaxFloat64},
		}
	}

	var length float64
	steps := 0
	remaining := len(fields)
	for remaining > 0 && steps < cfg.MaxSteps && length < cfg.MaxDistance {
		point := ray.At(length)
		step := math.MaxFloat64
		steps++
		for i := range fields {
			st := &state[i]
			if st.done {
				continue
			}
			d := fields[i].Field.localDistance(transformPoint(st.inv, point))
			if d < st.res.ClosestDistance {
				st.res.ClosestDistance = d
				st.res.DeepestPointRayLength = length
			}
			if d <= cfg.HitDistance {
				st.res.Hit = true
				st.res.RayLength = length
				st.res.Steps = steps
				st.done = true
				remaining--
				continue
			}
			step = math.Min(step, d)
		}
		length += math.Max(step, cfg.MinStepSize)
	}

	out := make([]MarchHit, len(fields))
	for i := range fields {
		res := state[i].res
		if !state[i].done {
			res.RayLength = length
			res.Steps = steps
		}
		out[i] = MarchHit{Entity: fields[i].Entity, Result: res}
	}
	sort.SliceStable(out, func(a, b int) bool {
		ra, rb := out[a].Result, out[b].Result
		if ra.Hit != rb.Hit {
			return ra.Hit
		}
		if ra.DeepestPointRayLength != rb.DeepestPointRayLength {
			return ra.DeepestPointRayLength < rb.DeepestPointRayLength
		}
		if ra.ClosestDistance != rb.ClosestDistance {
			return ra.ClosestDistance < rb.ClosestDistance
		}
		return out[a].Entity < out[b].Entity
	})
	return out
}
