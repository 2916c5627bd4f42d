package grasp

import "github.com/go-gl/mathgl/mgl64"

// Entity identifies a field object, input handler, or input method inside a
// Registry. Zero is never allocated and means "none". Entities are allocated in
// increasing order, so comparing two Entities compares creation order.
type Entity uint32

// None is the zero Entity.
const None Entity = 0

// MessageKind is the kind of an outbound handler message.
type MessageKind uint8

const (
	MessageRequestCapture MessageKind = iota // ask for exclusive ownership of a method
	MessageRelease                           // give up ownership (or a pending request)
)

// String returns a short name for logs.
func (k MessageKind) String() string {
	switch k {
	case MessageRequestCapture:
		return "request_capture"
	case MessageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// CaptureEventType identifies an ownership transition reported to an EventSink.
type CaptureEventType uint8

const (
	CaptureGranted  CaptureEventType = iota // method became owned by a handler this tick
	CaptureLost                             // previous owner did not win the method this tick
	CaptureReleased                         // owner released the method explicitly
)

// String returns a short name for logs.
func (t CaptureEventType) String() string {
	switch t {
	case CaptureGranted:
		return "granted"
	case CaptureLost:
		return "lost"
	case CaptureReleased:
		return "released"
	default:
		return "unknown"
	}
}

// CaptureEvent describes a single ownership transition.
type CaptureEvent struct {
	Type    CaptureEventType
	Tick    uint64
	Method  Entity
	Handler Entity
}

// Vec3 builds an mgl64.Vec3. It keeps call sites in tests and examples short.
func Vec3(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
