package grasp

import "github.com/go-gl/mathgl/mgl64"

// NonSpatialInput holds the independent scalar and vector channels an input
// method reports. Press-like channels are in [0, 1]. Channels are orthogonal;
// none implies another.
type NonSpatialInput struct {
	Select    float64
	Secondary float64
	Context   float64
	Grab      float64

	// Scroll is the scroll accumulated this tick. Valid only if HasScroll.
	Scroll    mgl64.Vec2
	HasScroll bool
	// Pos is an absolute 2D pointer or stick position. Valid only if HasPos.
	Pos    mgl64.Vec2
	HasPos bool
}

// InputMethod is one input source: a hand, a controller tip, a pointer ray.
// Platform code owns Spatial, NonSpatial and Active; the Registry owns
// everything else.
type InputMethod struct {
	id Entity

	// Spatial is this tick's shape. Nil methods are skipped by arbitration.
	Spatial SpatialInput
	// NonSpatial is this tick's channel data.
	NonSpatial NonSpatialInput
	// Active is false while the device has lost tracking. Inactive methods
	// are skipped entirely by arbitration.
	Active bool

	capturedBy     Entity
	lastCapturedBy Entity
	handlerOrder   []Entity
	// requests holds handlers that asked to capture this method and have not
	// released it since.
	requests map[Entity]struct{}
}

// ID returns the method's entity.
func (m *InputMethod) ID() Entity { return m.id }

// CapturedBy returns the handler that owns the method this tick, or None.
func (m *InputMethod) CapturedBy() Entity { return m.capturedBy }

// LastCapturedBy returns the owner as of the previous tick, or None.
func (m *InputMethod) LastCapturedBy() Entity { return m.lastCapturedBy }

// HandlerOrder returns this tick's candidate order. The returned slice MUST
// NOT be mutated.
func (m *InputMethod) HandlerOrder() []Entity { return m.handlerOrder }

// Requested reports whether handler currently has a pending capture request
// on this method.
func (m *InputMethod) Requested(handler Entity) bool {
	_, ok := m.requests[handler]
	return ok
}
