package grasp

import (
	"testing"
)

// feed replaces the handler's events, as arbitration would.
func feed(h *InputHandler, events ...InputEvent) {
	h.events = events
	h.messages = nil
}

func ev(method Entity, distance float64, grab float64, captured bool) InputEvent {
	return InputEvent{
		Method:     method,
		Distance:   distance,
		NonSpatial: NonSpatialInput{Grab: grab},
		Captured:   captured,
	}
}

func near(e InputEvent) bool     { return e.Distance <= 0.01 }
func grabbing(e InputEvent) bool { return e.NonSpatial.Grab > 0.8 }

func messageKinds(h *InputHandler) map[Entity]MessageKind {
	out := make(map[Entity]MessageKind)
	for _, m := range h.PendingMessages() {
		out[m.Method] = m.Kind
	}
	return out
}

// --- SimpleAction ---

func TestSimpleActionRequestsAndReleases(t *testing.T) {
	h := &InputHandler{id: 10}
	var a SimpleAction

	// Tick 1: method 1 qualifies, not yet captured.
	feed(h, ev(1, 0, 1, false), ev(2, 5, 1, false))
	a.Update(h, near)
	if got := messageKinds(h); len(got) != 1 || got[1] != MessageRequestCapture {
		t.Fatalf("tick 1 messages = %v, want request for 1", got)
	}
	if len(a.ActorSet().Current()) != 0 {
		t.Error("tick 1: no actor expected before capture")
	}

	// Tick 2: capture granted. No repeated request.
	feed(h, ev(1, 0, 1, true))
	a.Update(h, near)
	if len(h.PendingMessages()) != 0 {
		t.Errorf("tick 2 messages = %v, want none", h.PendingMessages())
	}
	if started := a.StartedActing(h); len(started) != 1 || started[0].Method != 1 {
		t.Errorf("tick 2 StartedActing = %v, want method 1", started)
	}

	// Tick 3: still captured and wanted.
	feed(h, ev(1, 0, 1, true))
	a.Update(h, near)
	if len(a.StartedActing(h)) != 0 || len(a.CurrentlyActing(h)) != 1 {
		t.Error("tick 3: expected a continuing actor without a start edge")
	}

	// Tick 4: method moved away, predicate fails: release and stop.
	feed(h, ev(1, 3, 1, true))
	a.Update(h, near)
	if got := messageKinds(h); got[1] != MessageRelease {
		t.Errorf("tick 4 messages = %v, want release for 1", got)
	}
	if stopped := a.StoppedActing(h); len(stopped) != 1 || stopped[0].Method != 1 {
		t.Errorf("tick 4 StoppedActing = %v, want method 1", stopped)
	}
}

func TestSimpleActionIgnoresUnwantedCapture(t *testing.T) {
	h := &InputHandler{id: 10}
	var a SimpleAction
	// Captured but never wanted: not an actor.
	feed(h, ev(1, 3, 0, true))
	a.Update(h, near)
	if len(a.ActorSet().Current()) != 0 {
		t.Errorf("actors = %v, want none", a.ActorSet().Current())
	}
}

// --- MultiAction ---

func TestMultiActionInteractRequiresHover(t *testing.T) {
	h := &InputHandler{id: 10}
	var a MultiAction

	// Grabbing far away: no hover, no request.
	feed(h, ev(1, 1, 1, false))
	a.Update(h, near, grabbing)
	if len(h.PendingMessages()) != 0 {
		t.Errorf("messages = %v, want none while not hovering", h.PendingMessages())
	}

	// Hovering without grab: hover edge, no request.
	feed(h, ev(1, 0, 0, false))
	a.Update(h, near, grabbing)
	if got := a.StartedHovering(h); len(got) != 1 {
		t.Errorf("StartedHovering = %v, want method 1", got)
	}
	if len(h.PendingMessages()) != 0 {
		t.Errorf("messages = %v, want none without grab", h.PendingMessages())
	}

	// Hovering and grabbing: request.
	feed(h, ev(1, 0, 1, false))
	a.Update(h, near, grabbing)
	if got := messageKinds(h); got[1] != MessageRequestCapture {
		t.Errorf("messages = %v, want request", got)
	}
	if len(a.CurrentlyHovering(h)) != 1 || len(a.StartedHovering(h)) != 0 {
		t.Error("expected continuing hover")
	}

	// Leaving: stopped hovering.
	feed(h, ev(1, 2, 1, false))
	a.Update(h, near, grabbing)
	if got := a.StoppedHovering(h); len(got) != 1 {
		t.Errorf("StoppedHovering = %v, want method 1", got)
	}
}

// --- SingleAction ---

func TestSingleActionExclusivity(t *testing.T) {
	h := &InputHandler{id: 10}
	var a SingleAction

	// Tick 1: two methods qualify in the same tick.
	feed(h, ev(2, 0, 1, false), ev(1, 0, 1, false))
	a.Update(h, false, near, grabbing)
	if a.StartedActing() {
		t.Fatal("no actor before capture")
	}

	// Tick 2: both captured by this handler.
	feed(h, ev(1, 0, 1, true), ev(2, 0, 1, true))
	a.Update(h, false, near, grabbing)
	if !a.StartedActing() || a.ActorEntity() != 1 {
		t.Fatalf("StartedActing=%v actor=%d, want start with lowest method 1", a.StartedActing(), a.ActorEntity())
	}
	if actor, ok := a.Actor(h); !ok || actor.Method != 1 {
		t.Errorf("Actor = %v, %v", actor, ok)
	}

	// Tick 3: contender still held back.
	feed(h, ev(1, 0, 1, true), ev(2, 0, 1, true))
	a.Update(h, false, near, grabbing)
	if a.StartedActing() || a.ActorChanged() || a.ActorEntity() != 1 {
		t.Errorf("tick 3: started=%v changed=%v actor=%d, want steady actor 1",
			a.StartedActing(), a.ActorChanged(), a.ActorEntity())
	}

	// Tick 4: actor lets go; the contender takes over.
	feed(h, ev(1, 0, 0, true), ev(2, 0, 1, true))
	a.Update(h, false, near, grabbing)
	if !a.StoppedActing() {
		t.Error("tick 4: expected stop of actor 1")
	}
	if !a.StartedActing() || a.ActorEntity() != 2 {
		t.Errorf("tick 4: started=%v actor=%d, want start of 2", a.StartedActing(), a.ActorEntity())
	}
}

func TestSingleActionAllowChange(t *testing.T) {
	h := &InputHandler{id: 10}
	var a SingleAction

	// Already captured and hovering: adopted on the first update.
	feed(h, ev(1, 0, 1, true))
	a.Update(h, true, near, grabbing)
	if !a.StartedActing() || a.ActorEntity() != 1 {
		t.Fatalf("started=%v actor=%d, want start of 1", a.StartedActing(), a.ActorEntity())
	}

	// A second method starts acting: the actor changes.
	feed(h, ev(1, 0, 1, true), ev(2, 0, 1, true))
	a.Update(h, true, near, grabbing)
	if !a.ActorChanged() || a.ActorEntity() != 2 {
		t.Errorf("changed=%v actor=%d, want change to 2", a.ActorChanged(), a.ActorEntity())
	}
	if a.StartedActing() || a.StoppedActing() {
		t.Error("a change is neither a start nor a stop")
	}

	// Without new contenders the change flag resets.
	feed(h, ev(1, 0, 1, true), ev(2, 0, 1, true))
	a.Update(h, true, near, grabbing)
	if a.ActorChanged() {
		t.Error("ActorChanged must reset on the next update")
	}
}

func TestSingleActionFlagsAreEdges(t *testing.T) {
	h := &InputHandler{id: 10}
	var a SingleAction
	feed(h, ev(1, 0, 1, false))
	a.Update(h, false, near, grabbing) // hover + request
	feed(h, ev(1, 0, 1, true))
	a.Update(h, false, near, grabbing) // acting
	if !a.StartedActing() {
		t.Fatal("expected start")
	}
	feed(h, ev(1, 0, 1, true))
	a.Update(h, false, near, grabbing)
	if a.StartedActing() {
		t.Error("StartedActing must reset on the next update")
	}
	feed(h)
	a.Update(h, false, near, grabbing)
	if !a.StoppedActing() || a.ActorEntity() != None {
		t.Errorf("stopped=%v actor=%d, want stop when the method disappears", a.StoppedActing(), a.ActorEntity())
	}
	if _, ok := a.Actor(h); ok {
		t.Error("Actor should report no event without an actor")
	}
}
