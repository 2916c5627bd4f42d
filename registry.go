package grasp

import (
	"log/slog"
	"slices"
)

// EventSink is the interface for optional ECS integration. When set on a
// Registry, capture transitions and delivered input events are forwarded to it.
type EventSink interface {
	EmitCapture(event CaptureEvent)
	EmitInput(handler Entity, event InputEvent)
}

// FieldObject is a field-bearing object that is not itself a handler. Handlers
// point at it through FieldRef.
type FieldObject struct {
	id        Entity
	Field     Field
	Transform Transform
}

// ID returns the object's entity.
func (o *FieldObject) ID() Entity { return o.id }

// Registry is the arena holding every field object, handler and input method
// that takes part in capture arbitration. It is not safe for concurrent use;
// a tick runs to completion on one goroutine.
type Registry struct {
	raymarch   RaymarchConfig
	hysteresis bool
	pinch      PinchConfig

	log   *slog.Logger
	sink  EventSink
	debug bool
	stats tickStats

	tick   uint64
	nextID Entity

	fields   map[Entity]*FieldObject
	handlers map[Entity]*InputHandler
	methods  map[Entity]*InputMethod

	// Entity lists in creation order, used for deterministic iteration.
	handlerIDs []Entity
	methodIDs  []Entity
}

// NewRegistry creates an empty registry using the raymarch, capture and hand
// sections of cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		raymarch:   cfg.Raymarch,
		hysteresis: cfg.Capture.Hysteresis,
		pinch:      cfg.Hand,
		log:        slog.Default(),
		fields:     make(map[Entity]*FieldObject),
		handlers:   make(map[Entity]*InputHandler),
		methods:    make(map[Entity]*InputMethod),
	}
}

// SetLogger replaces the registry's logger. A nil logger restores slog.Default.
func (r *Registry) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	r.log = l
}

// SetEventSink sets the optional ECS bridge.
func (r *Registry) SetEventSink(sink EventSink) {
	r.sink = sink
}

// SetDebugMode enables or disables per-tick statistics, logged at debug level.
func (r *Registry) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// SetHysteresis toggles re-biasing each method toward last tick's owner.
func (r *Registry) SetHysteresis(enabled bool) {
	r.hysteresis = enabled
}

// SetRaymarchConfig replaces the bounds used to trace ray-shaped methods.
func (r *Registry) SetRaymarchConfig(cfg RaymarchConfig) {
	r.raymarch = cfg
}

// RaymarchConfig returns the bounds used to trace ray-shaped methods.
func (r *Registry) RaymarchConfig() RaymarchConfig {
	return r.raymarch
}

// SetPinchConfig replaces the remap used by UpdateHandChannels.
func (r *Registry) SetPinchConfig(cfg PinchConfig) {
	r.pinch = cfg
}

// PinchConfig returns the remap used by UpdateHandChannels.
func (r *Registry) PinchConfig() PinchConfig {
	return r.pinch
}

// TickCount returns the number of ticks arbitrated so far.
func (r *Registry) TickCount() uint64 {
	return r.tick
}

func (r *Registry) allocate() Entity {
	r.nextID++
	return r.nextID
}

// SpawnField adds a standalone field object.
func (r *Registry) SpawnField(f Field, xf Transform) *FieldObject {
	o := &FieldObject{id: r.allocate(), Field: f, Transform: xf}
	r.fields[o.id] = o
	return o
}

// SpawnHandler adds a handler that uses its own field.
func (r *Registry) SpawnHandler(f Field, xf Transform) *InputHandler {
	h := &InputHandler{id: r.allocate(), Field: f, Transform: xf}
	r.handlers[h.id] = h
	r.handlerIDs = append(r.handlerIDs, h.id)
	return h
}

// SpawnHandlerRef adds a handler that measures against another entity's field.
func (r *Registry) SpawnHandlerRef(ref Entity, xf Transform) *InputHandler {
	h := r.SpawnHandler(nil, xf)
	h.FieldRef = FieldRef{Entity: ref}
	return h
}

// SpawnMethod adds an active input method with the given spatial shape.
func (r *Registry) SpawnMethod(spatial SpatialInput) *InputMethod {
	m := &InputMethod{id: r.allocate(), Spatial: spatial, Active: true}
	r.methods[m.id] = m
	r.methodIDs = append(r.methodIDs, m.id)
	return m
}

// Despawn removes the entity. Pending requests and ownership held by a
// despawned handler are dropped. It reports whether the entity existed.
func (r *Registry) Despawn(id Entity) bool {
	if _, ok := r.fields[id]; ok {
		delete(r.fields, id)
		return true
	}
	if _, ok := r.handlers[id]; ok {
		delete(r.handlers, id)
		r.handlerIDs = removeEntity(r.handlerIDs, id)
		for _, mid := range r.methodIDs {
			m := r.methods[mid]
			delete(m.requests, id)
			if m.capturedBy == id {
				m.capturedBy = None
				if r.sink != nil {
					r.sink.EmitCapture(CaptureEvent{Type: CaptureLost, Tick: r.tick, Method: m.id, Handler: id})
				}
			}
		}
		return true
	}
	if _, ok := r.methods[id]; ok {
		delete(r.methods, id)
		r.methodIDs = removeEntity(r.methodIDs, id)
		return true
	}
	return false
}

func removeEntity(s []Entity, id Entity) []Entity {
	if i := slices.Index(s, id); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// Method returns the input method with the given entity.
func (r *Registry) Method(id Entity) (*InputMethod, bool) {
	m, ok := r.methods[id]
	return m, ok
}

// Handler returns the input handler with the given entity.
func (r *Registry) Handler(id Entity) (*InputHandler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

// FieldObject returns the field object with the given entity.
func (r *Registry) FieldObject(id Entity) (*FieldObject, bool) {
	o, ok := r.fields[id]
	return o, ok
}

// Methods returns all input methods in creation order.
func (r *Registry) Methods() []*InputMethod {
	out := make([]*InputMethod, 0, len(r.methodIDs))
	for _, id := range r.methodIDs {
		out = append(out, r.methods[id])
	}
	return out
}

// Handlers returns all input handlers in creation order.
func (r *Registry) Handlers() []*InputHandler {
	out := make([]*InputHandler, 0, len(r.handlerIDs))
	for _, id := range r.handlerIDs {
		out = append(out, r.handlers[id])
	}
	return out
}

// resolveField returns the field and transform a handler is measured against.
func (r *Registry) resolveField(h *InputHandler) (Field, Transform, bool) {
	ref := h.FieldRef.Entity
	if ref == None || ref == h.id {
		if h.Field == nil {
			return nil, Transform{}, false
		}
		return h.Field, h.Transform, true
	}
	if o, ok := r.fields[ref]; ok && o.Field != nil {
		return o.Field, o.Transform, true
	}
	if other, ok := r.handlers[ref]; ok && other.Field != nil {
		return other.Field, other.Transform, true
	}
	return nil, Transform{}, false
}

// HandlerField returns the field and world transform a handler is measured
// against, following its FieldRef.
func (r *Registry) HandlerField(h *InputHandler) (Field, Transform, bool) {
	return r.resolveField(h)
}
