package grasp

import "github.com/go-gl/mathgl/mgl64"

// FieldRef selects the field a handler reacts to. The zero value means the
// handler's own field; a non-zero Entity points at another field object or
// handler.
type FieldRef struct {
	Entity Entity
}

// Message is an outbound handler request drained by the Registry once per tick.
type Message struct {
	Method Entity
	Kind   MessageKind
}

// InputEvent is what a handler sees of one input method for one tick. Spatial
// data and ClosestPoint are in the handler's local space.
type InputEvent struct {
	Method     Entity
	Spatial    SpatialInput
	NonSpatial NonSpatialInput
	// HandlerTransform is the handler's world transform this tick.
	HandlerTransform Transform
	// Distance is the signed distance between the method and the handler's
	// field.
	Distance float64
	// ClosestPoint is the field surface point nearest to the method.
	ClosestPoint mgl64.Vec3
	// Captured is true only if this handler owns the method this tick.
	Captured bool
}

// InputHandler is an interaction target. Application code reads Events and
// queues RequestCapture/Release; only the Registry changes ownership.
type InputHandler struct {
	id Entity

	// Transform is the handler's world transform, already resolved by the
	// host's scene graph.
	Transform Transform
	// Field is the handler's own field. It may be nil when FieldRef points
	// elsewhere.
	Field Field
	// FieldRef selects which field events are measured against.
	FieldRef FieldRef

	// OnInput runs once per tick after events are delivered and before
	// messages are drained. Optional.
	OnInput func(h *InputHandler)

	events   []InputEvent
	messages []Message
}

// ID returns the handler's entity.
func (h *InputHandler) ID() Entity { return h.id }

// Events returns this tick's input events, ordered by method entity. The
// returned slice MUST NOT be mutated and is replaced every tick.
func (h *InputHandler) Events() []InputEvent { return h.events }

// Event returns this tick's event for method, if any.
func (h *InputHandler) Event(method Entity) (InputEvent, bool) {
	for _, e := range h.events {
		if e.Method == method {
			return e, true
		}
	}
	return InputEvent{}, false
}

// RequestCapture asks for ownership of method from the next tick on. The
// request stays pending until Release.
func (h *InputHandler) RequestCapture(method Entity) {
	h.messages = append(h.messages, Message{Method: method, Kind: MessageRequestCapture})
}

// Release gives up ownership of method, or withdraws a pending request.
// Releasing a method owned by another handler only withdraws the request.
func (h *InputHandler) Release(method Entity) {
	h.messages = append(h.messages, Message{Method: method, Kind: MessageRelease})
}

// PendingMessages returns messages queued since the last drain. The returned
// slice MUST NOT be mutated.
func (h *InputHandler) PendingMessages() []Message { return h.messages }

// takeMessages drains the outbound queue.
func (h *InputHandler) takeMessages() []Message {
	msgs := h.messages
	h.messages = nil
	return msgs
}
