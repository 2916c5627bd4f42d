package grasp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Joint is one tracked hand joint.
type Joint struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	// Radius is the contact radius of the joint.
	Radius float64
}

// Finger holds the joints of a non-thumb finger, from the palm outward.
type Finger struct {
	Metacarpal   Joint
	Proximal     Joint
	Intermediate Joint
	Distal       Joint
	Tip          Joint
}

// Thumb holds the joints of a thumb, from the palm outward.
type Thumb struct {
	Metacarpal Joint
	Proximal   Joint
	Distal     Joint
	Tip        Joint
}

// Hand is a fixed skeleton of labelled joints.
type Hand struct {
	Thumb  Thumb
	Index  Finger
	Middle Finger
	Ring   Finger
	Little Finger
	Palm   Joint
	Wrist  Joint
}

// HandJoint labels one of the 26 joints of a Hand.
type HandJoint uint8

const (
	JointPalm HandJoint = iota
	JointWrist
	JointThumbMetacarpal
	JointThumbProximal
	JointThumbDistal
	JointThumbTip
	JointIndexMetacarpal
	JointIndexProximal
	JointIndexIntermediate
	JointIndexDistal
	JointIndexTip
	JointMiddleMetacarpal
	JointMiddleProximal
	JointMiddleIntermediate
	JointMiddleDistal
	JointMiddleTip
	JointRingMetacarpal
	JointRingProximal
	JointRingIntermediate
	JointRingDistal
	JointRingTip
	JointLittleMetacarpal
	JointLittleProximal
	JointLittleIntermediate
	JointLittleDistal
	JointLittleTip

	HandJointCount = int(JointLittleTip) + 1
)

// PinchConfig shapes the pinch and grab remap.
type PinchConfig struct {
	// Max is the joint separation at which the value reaches 0.
	Max float64 `yaml:"pinch_max"`
	// Activation is the separation at or below which the value is 1.
	Activation float64 `yaml:"pinch_activation"`
}

// DefaultPinchConfig returns the default pinch remap.
func DefaultPinchConfig() PinchConfig {
	return PinchConfig{Max: 0.11, Activation: 0.01}
}

// joint returns a pointer to the labelled joint. Unknown labels return nil.
func (h *Hand) joint(j HandJoint) *Joint {
	switch j {
	case JointPalm:
		return &h.Palm
	case JointWrist:
		return &h.Wrist
	case JointThumbMetacarpal:
		return &h.Thumb.Metacarpal
	case JointThumbProximal:
		return &h.Thumb.Proximal
	case JointThumbDistal:
		return &h.Thumb.Distal
	case JointThumbTip:
		return &h.Thumb.Tip
	}
	var f *Finger
	var offset HandJoint
	switch {
	case j >= JointIndexMetacarpal && j <= JointIndexTip:
		f, offset = &h.Index, JointIndexMetacarpal
	case j >= JointMiddleMetacarpal && j <= JointMiddleTip:
		f, offset = &h.Middle, JointMiddleMetacarpal
	case j >= JointRingMetacarpal && j <= JointRingTip:
		f, offset = &h.Ring, JointRingMetacarpal
	case j >= JointLittleMetacarpal && j <= JointLittleTip:
		f, offset = &h.Little, JointLittleMetacarpal
	default:
		return nil
	}
	switch j - offset {
	case 0:
		return &f.Metacarpal
	case 1:
		return &f.Proximal
	case 2:
		return &f.Intermediate
	case 3:
		return &f.Distal
	default:
		return &f.Tip
	}
}

// Joint returns the labelled joint. Unknown labels return the zero Joint.
func (h Hand) Joint(j HandJoint) Joint {
	if p := h.joint(j); p != nil {
		return *p
	}
	return Joint{}
}

// SetJoint replaces the labelled joint. Unknown labels are ignored.
func (h *Hand) SetJoint(j HandJoint, v Joint) {
	if p := h.joint(j); p != nil {
		*p = v
	}
}

// Tips returns the five fingertip joints, thumb first.
func (h Hand) Tips() [5]Joint {
	return [5]Joint{h.Thumb.Tip, h.Index.Tip, h.Middle.Tip, h.Ring.Tip, h.Little.Tip}
}

// PinchBetween measures how closed the gap between two joints is, in [0, 1].
// The gap is the distance between the joints minus their combined radii,
// remapped as 1 - (gap - Activation) / (Max - Activation) and clamped. Gaps at
// or below Activation read as 1, gaps at or above Max read as 0.
func (h Hand) PinchBetween(a, b HandJoint, cfg PinchConfig) float64 {
	ja, jb := h.Joint(a), h.Joint(b)
	gap := ja.Position.Sub(jb.Position).Len() - (ja.Radius + jb.Radius)
	return clamp01(1 - (gap-cfg.Activation)/(cfg.Max-cfg.Activation))
}

// Pinch is the thumb-tip to index-tip pinch strength.
func (h Hand) Pinch(cfg PinchConfig) float64 {
	return h.PinchBetween(JointThumbTip, JointIndexTip, cfg)
}

// Grab is the ring-tip to ring-metacarpal curl strength.
func (h Hand) Grab(cfg PinchConfig) float64 {
	return h.PinchBetween(JointRingTip, JointRingMetacarpal, cfg)
}

// UpdateHandChannels derives a hand method's Select from its pinch and Grab
// from its curl, using the registry's pinch remap. Methods that are not hands
// are left unchanged.
func (r *Registry) UpdateHandChannels(m *InputMethod) {
	h, ok := m.Spatial.(Hand)
	if !ok {
		return
	}
	m.NonSpatial.Select = h.Pinch(r.pinch)
	m.NonSpatial.Grab = h.Grab(r.pinch)
}

// Distance treats the hand as five fingertip probes and returns the smallest
// signed distance from any of them to the field.
func (h Hand) Distance(f Field, xf Transform, _ RaymarchConfig) float64 {
	_, d := h.nearestTip(f, xf)
	return d
}

// ClosestPoint returns the field surface point nearest to the closest fingertip.
func (h Hand) ClosestPoint(f Field, xf Transform, _ RaymarchConfig) mgl64.Vec3 {
	tip, _ := h.nearestTip(f, xf)
	return ClosestPoint(f, xf, tip)
}

func (h Hand) nearestTip(f Field, xf Transform) (mgl64.Vec3, float64) {
	inv := xf.InverseMatrix()
	best := math.MaxFloat64
	var at mgl64.Vec3
	for _, tip := range h.Tips() {
		d := f.localDistance(transformPoint(inv, tip.Position))
		if d < best {
			best, at = d, tip.Position
		}
	}
	return at, best
}

// Transform maps every joint through m. Positions take the full matrix,
// orientations take its rotational part, radii are unchanged.
func (h Hand) Transform(m mgl64.Mat4) SpatialInput {
	rot := rotationOf(m)
	for j := HandJoint(0); int(j) < HandJointCount; j++ {
		p := h.joint(j)
		p.Position = transformPoint(m, p.Position)
		p.Orientation = rot.Mul(p.Orientation)
	}
	return h
}

func (Hand) spatialInput() {}
