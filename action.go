package grasp

// Predicate decides whether an input event qualifies for hover, interaction
// or capture.
type Predicate func(ev InputEvent) bool

// filterEvents returns the handler's events whose method satisfies keep.
func filterEvents(h *InputHandler, keep func(Entity) bool) []InputEvent {
	var out []InputEvent
	for _, ev := range h.Events() {
		if keep(ev.Method) {
			out = append(out, ev)
		}
	}
	return out
}

// methodsWhere yields the method of every event satisfying p.
func methodsWhere(events []InputEvent, p Predicate) func(yield func(Entity) bool) {
	return func(yield func(Entity) bool) {
		for _, ev := range events {
			if p(ev) && !yield(ev.Method) {
				return
			}
		}
	}
}

// --- SimpleAction ---

// SimpleAction turns a per-event capture predicate into capture requests and
// started/current/stopped acting edges. Call Update once per tick from the
// handler's OnInput.
type SimpleAction struct {
	wanted DeltaSet
	actors DeltaSet
}

// Update requests capture of methods that newly satisfy capture, releases
// methods that stopped satisfying it, and recomputes the actor set from the
// methods this handler owns and still wants.
func (a *SimpleAction) Update(h *InputHandler, capture Predicate) {
	events := h.Events()
	a.wanted.Update(methodsWhere(events, capture))
	for _, m := range a.wanted.Added() {
		h.RequestCapture(m)
	}
	for _, m := range a.wanted.Removed() {
		h.Release(m)
	}
	a.actors.Update(methodsWhere(events, func(ev InputEvent) bool {
		return ev.Captured && a.wanted.Contains(ev.Method)
	}))
}

// ActorSet returns the acting methods delta.
func (a *SimpleAction) ActorSet() *DeltaSet { return &a.actors }

// WantedSet returns the delta of methods the capture predicate selected.
func (a *SimpleAction) WantedSet() *DeltaSet { return &a.wanted }

// StartedActing returns this tick's events for methods that started acting.
func (a *SimpleAction) StartedActing(h *InputHandler) []InputEvent {
	return filterEvents(h, a.actors.WasAdded)
}

// CurrentlyActing returns this tick's events for methods that are acting.
func (a *SimpleAction) CurrentlyActing(h *InputHandler) []InputEvent {
	return filterEvents(h, a.actors.Contains)
}

// StoppedActing returns this tick's events for methods that stopped acting.
// A method that is no longer delivered to the handler has no event; use
// ActorSet().Removed() for the identities.
func (a *SimpleAction) StoppedActing(h *InputHandler) []InputEvent {
	return filterEvents(h, a.actors.WasRemoved)
}

// --- MultiAction ---

// MultiAction adds hover tracking on top of SimpleAction. A method can only
// start interacting while it is hovering.
type MultiAction struct {
	simple SimpleAction
	hover  DeltaSet
}

// Update recomputes hover from hover, then captures methods that are hovering
// and satisfy interact.
func (a *MultiAction) Update(h *InputHandler, hover, interact Predicate) {
	a.hover.Update(methodsWhere(h.Events(), hover))
	a.simple.Update(h, func(ev InputEvent) bool {
		return a.hover.Contains(ev.Method) && interact(ev)
	})
}

// HoverSet returns the hovering methods delta.
func (a *MultiAction) HoverSet() *DeltaSet { return &a.hover }

// ActorSet returns the acting methods delta.
func (a *MultiAction) ActorSet() *DeltaSet { return a.simple.ActorSet() }

// StartedActing returns this tick's events for methods that started acting.
func (a *MultiAction) StartedActing(h *InputHandler) []InputEvent {
	return a.simple.StartedActing(h)
}

// CurrentlyActing returns this tick's events for methods that are acting.
func (a *MultiAction) CurrentlyActing(h *InputHandler) []InputEvent {
	return a.simple.CurrentlyActing(h)
}

// StoppedActing returns this tick's events for methods that stopped acting.
func (a *MultiAction) StoppedActing(h *InputHandler) []InputEvent {
	return a.simple.StoppedActing(h)
}

// StartedHovering returns this tick's events for methods that started
// hovering.
func (a *MultiAction) StartedHovering(h *InputHandler) []InputEvent {
	return filterEvents(h, a.hover.WasAdded)
}

// CurrentlyHovering returns this tick's events for hovering methods.
func (a *MultiAction) CurrentlyHovering(h *InputHandler) []InputEvent {
	return filterEvents(h, a.hover.Contains)
}

// StoppedHovering returns this tick's events for methods that stopped
// hovering and are still delivered to the handler.
func (a *MultiAction) StoppedHovering(h *InputHandler) []InputEvent {
	return filterEvents(h, a.hover.WasRemoved)
}

// --- SingleAction ---

// SingleAction narrows MultiAction to at most one actor. Its flags are edges:
// they are reset on every Update and describe only that tick.
type SingleAction struct {
	multi   MultiAction
	actor   Entity
	started bool
	changed bool
	stopped bool
}

// Update runs the hover/interact layer and then settles the single actor.
// The actor stops when it leaves the acting set. With no actor, the lowest
// acting method is adopted. With allowChange, a newly added acting method
// replaces the current actor; without it, contenders wait until the actor
// stops.
func (a *SingleAction) Update(h *InputHandler, allowChange bool, hover, interact Predicate) {
	a.multi.Update(h, hover, interact)
	a.started, a.changed, a.stopped = false, false, false

	actors := a.multi.ActorSet()
	if a.actor != None && !actors.Contains(a.actor) {
		a.stopped = true
		a.actor = None
	}

	switch {
	case a.actor == None:
		if cur := actors.Current(); len(cur) > 0 {
			a.actor = cur[0]
			a.started = true
		}
	case allowChange:
		for _, id := range actors.Added() {
			if id != a.actor {
				a.actor = id
				a.changed = true
				break
			}
		}
	}
}

// StartedActing reports whether an actor was adopted this tick.
func (a *SingleAction) StartedActing() bool { return a.started }

// StoppedActing reports whether the actor stopped this tick.
func (a *SingleAction) StoppedActing() bool { return a.stopped }

// ActorChanged reports whether the actor was replaced this tick.
func (a *SingleAction) ActorChanged() bool { return a.changed }

// Actor returns this tick's event for the current actor.
func (a *SingleAction) Actor(h *InputHandler) (InputEvent, bool) {
	if a.actor == None {
		return InputEvent{}, false
	}
	return h.Event(a.actor)
}

// ActorEntity returns the current actor, or None.
func (a *SingleAction) ActorEntity() Entity { return a.actor }

// HoverSet returns the hovering methods delta.
func (a *SingleAction) HoverSet() *DeltaSet { return a.multi.HoverSet() }

// ActorSet returns the acting methods delta, including contenders held back
// from becoming the actor.
func (a *SingleAction) ActorSet() *DeltaSet { return a.multi.ActorSet() }

// StartedHovering returns this tick's events for methods that started
// hovering.
func (a *SingleAction) StartedHovering(h *InputHandler) []InputEvent {
	return a.multi.StartedHovering(h)
}

// CurrentlyHovering returns this tick's events for hovering methods.
func (a *SingleAction) CurrentlyHovering(h *InputHandler) []InputEvent {
	return a.multi.CurrentlyHovering(h)
}

// StoppedHovering returns this tick's events for methods that stopped
// hovering and are still delivered to the handler.
func (a *SingleAction) StoppedHovering(h *InputHandler) []InputEvent {
	return a.multi.StoppedHovering(h)
}
