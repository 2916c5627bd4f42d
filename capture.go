package grasp

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Tick runs one full arbitration step: Arbitrate, then every handler's
// OnInput callback in creation order, then Intake.
func (r *Registry) Tick() {
	r.Arbitrate()
	for _, id := range slices.Clone(r.handlerIDs) {
		h, ok := r.handlers[id]
		if !ok || h.OnInput == nil {
			continue
		}
		h.OnInput(h)
	}
	r.Intake()
}

// Arbitrate clears last tick's ownership, orders candidate handlers for every
// active method, grants ownership to the first candidate with a pending
// request, and rebuilds every handler's event list.
func (r *Registry) Arbitrate() {
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
		r.stats = tickStats{}
	}
	r.tick++

	for _, id := range r.methodIDs {
		m := r.methods[id]
		m.lastCapturedBy = m.capturedBy
		m.capturedBy = None
	}

	candidates := r.candidateFields()
	for _, id := range r.methodIDs {
		m := r.methods[id]
		if !m.Active || m.Spatial == nil {
			m.handlerOrder = nil
			r.emitTransition(m)
			continue
		}
		m.handlerOrder = r.orderCandidates(m, candidates)
		if r.hysteresis && m.lastCapturedBy != None {
			m.handlerOrder = r.preferLastOwner(m)
		}
		if r.debug {
			r.debugCheckOrder(m)
		}
		r.grant(m)
		r.emitTransition(m)
	}

	r.fanOut()

	if r.debug {
		r.stats.arbitrateTime = time.Since(t0)
	}
}

// candidateFields collects every handler whose field resolves, in creation
// order.
func (r *Registry) candidateFields() []PlacedField {
	out := make([]PlacedField, 0, len(r.handlerIDs))
	for _, id := range r.handlerIDs {
		h := r.handlers[id]
		f, xf, ok := r.resolveField(h)
		if !ok {
			r.log.Warn("grasp: handler field does not resolve, skipping candidacy",
				"handler", id, "field", h.FieldRef.Entity)
			continue
		}
		out = append(out, PlacedField{Entity: id, Field: f, Transform: xf})
	}
	return out
}

// orderCandidates returns handlers ordered by how close the method is to their
// fields. Rays are traced jointly; other shapes sort by signed distance. Ties
// break by creation order.
func (r *Registry) orderCandidates(m *InputMethod, candidates []PlacedField) []Entity {
	order := make([]Entity, 0, len(candidates))
	if ray, ok := m.Spatial.(Ray); ok {
		for _, hit := range RaymarchFields(ray, candidates, r.raymarch) {
			order = append(order, hit.Entity)
		}
		return order
	}

	type scored struct {
		id Entity
		d  float64
	}
	scores := make([]scored, len(candidates))
	for i, c := range candidates {
		scores[i] = scored{id: c.Entity, d: m.Spatial.Distance(c.Field, c.Transform, r.raymarch)}
	}
	sort.SliceStable(scores, func(a, b int) bool {
		da, db := scores[a].d, scores[b].d
		switch {
		case math.IsNaN(da):
			return false
		case math.IsNaN(db):
			return true
		case da != db:
			return da < db
		}
		return scores[a].id < scores[b].id
	})
	for _, s := range scores {
		order = append(order, s.id)
	}
	return order
}

// preferLastOwner moves last tick's owner to the front of the order,
// inserting it if it fell out. An owner whose field no longer resolves is not
// a candidate and keeps no preference.
func (r *Registry) preferLastOwner(m *InputMethod) []Entity {
	last := m.lastCapturedBy
	h, ok := r.handlers[last]
	if !ok {
		r.log.Warn("grasp: last owner no longer exists", "method", m.id, "handler", last)
		return m.handlerOrder
	}
	if _, _, ok := r.resolveField(h); !ok {
		return m.handlerOrder
	}
	out := make([]Entity, 0, len(m.handlerOrder)+1)
	out = append(out, last)
	for _, id := range m.handlerOrder {
		if id != last {
			out = append(out, id)
		}
	}
	return out
}

// grant gives the method to the first candidate with a pending request.
func (r *Registry) grant(m *InputMethod) {
	for _, id := range m.handlerOrder {
		if _, ok := r.handlers[id]; !ok {
			r.log.Warn("grasp: stale handler in candidate order", "method", m.id, "handler", id)
			continue
		}
		if _, ok := m.requests[id]; ok {
			m.capturedBy = id
			if r.debug {
				r.stats.captured++
			}
			return
		}
	}
}

func (r *Registry) emitTransition(m *InputMethod) {
	if r.sink == nil || m.capturedBy == m.lastCapturedBy {
		return
	}
	if m.lastCapturedBy != None {
		r.sink.EmitCapture(CaptureEvent{Type: CaptureLost, Tick: r.tick, Method: m.id, Handler: m.lastCapturedBy})
	}
	if m.capturedBy != None {
		r.sink.EmitCapture(CaptureEvent{Type: CaptureGranted, Tick: r.tick, Method: m.id, Handler: m.capturedBy})
	}
}

// fanOut rebuilds every handler's event list. A captured method reaches only
// its owner; an uncaptured method reaches every handler so hover logic can run
// before any capture exists.
func (r *Registry) fanOut() {
	next := make(map[Entity][]InputEvent, len(r.handlerIDs))
	for _, mid := range r.methodIDs {
		m := r.methods[mid]
		if !m.Active || m.Spatial == nil {
			continue
		}
		if r.debug {
			r.stats.activeMethods++
		}
		if m.capturedBy != None {
			h, ok := r.handlers[m.capturedBy]
			if !ok {
				r.log.Warn("grasp: method captured by missing handler", "method", mid, "handler", m.capturedBy)
				continue
			}
			if ev, ok := r.buildEvent(m, h, true); ok {
				next[h.id] = append(next[h.id], ev)
			}
			continue
		}
		for _, hid := range r.handlerIDs {
			h := r.handlers[hid]
			if ev, ok := r.buildEvent(m, h, false); ok {
				next[hid] = append(next[hid], ev)
			}
		}
	}

	for _, hid := range r.handlerIDs {
		h := r.handlers[hid]
		h.events = next[hid]
		if r.sink != nil {
			for _, ev := range h.events {
				r.sink.EmitInput(hid, ev)
			}
		}
		if r.debug {
			r.stats.handlers++
			r.stats.events += len(h.events)
		}
	}
}

// buildEvent expresses m in h's local space and measures it against h's field.
func (r *Registry) buildEvent(m *InputMethod, h *InputHandler, captured bool) (InputEvent, bool) {
	f, fxf, ok := r.resolveField(h)
	if !ok {
		r.log.Warn("grasp: invalid field reference, skipping event",
			"method", m.id, "handler", h.id, "field", h.FieldRef.Entity)
		return InputEvent{}, false
	}
	inv := h.Transform.InverseMatrix()
	dist, closest := r.measure(m.Spatial, f, fxf)
	return InputEvent{
		Method:           m.id,
		Spatial:          m.Spatial.Transform(inv),
		NonSpatial:       m.NonSpatial,
		HandlerTransform: h.Transform,
		Distance:         dist,
		ClosestPoint:     transformPoint(inv, closest),
		Captured:         captured,
	}, true
}

// measure returns the signed distance and world-space closest surface point,
// tracing rays only once.
func (r *Registry) measure(in SpatialInput, f Field, xf Transform) (float64, mgl64.Vec3) {
	if ray, ok := in.(Ray); ok {
		res := Raymarch(f, xf, ray, r.raymarch)
		return res.ClosestDistance, ClosestPoint(f, xf, res.Point(ray))
	}
	return in.Distance(f, xf, r.raymarch), in.ClosestPoint(f, xf, r.raymarch)
}

// Intake drains every handler's outbound queue. RequestCapture adds the
// handler to the method's pending requests for the next grant. Release
// withdraws the request and clears ownership only if the releasing handler is
// the current owner.
func (r *Registry) Intake() {
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	for _, hid := range r.handlerIDs {
		h := r.handlers[hid]
		for _, msg := range h.takeMessages() {
			if r.debug {
				r.stats.messages++
			}
			m, ok := r.methods[msg.Method]
			if !ok {
				r.log.Warn("grasp: message for missing method",
					"handler", hid, "method", msg.Method, "kind", msg.Kind.String())
				continue
			}
			switch msg.Kind {
			case MessageRequestCapture:
				if m.requests == nil {
					m.requests = make(map[Entity]struct{})
				}
				m.requests[hid] = struct{}{}
			case MessageRelease:
				delete(m.requests, hid)
				if m.capturedBy != hid {
					r.log.Debug("grasp: release from non-owner ignored",
						"handler", hid, "method", m.id, "owner", m.capturedBy)
					continue
				}
				m.capturedBy = None
				if r.sink != nil {
					r.sink.EmitCapture(CaptureEvent{Type: CaptureReleased, Tick: r.tick, Method: m.id, Handler: hid})
				}
			}
		}
	}

	if r.debug {
		r.stats.intakeTime = time.Since(t0)
		r.debugLog()
	}
}
