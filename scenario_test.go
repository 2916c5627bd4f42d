package grasp

import "testing"

// A tip approaches a small sphere with grab held, touches it, then retreats.
// The handler hovers within 0.01 of the surface and interacts while grab is
// above 0.8.
func TestScenarioTipGrabsSphere(t *testing.T) {
	r, _ := newTestRegistry(t)
	h := r.SpawnHandler(Sphere{Radius: 0.2}, Identity())
	m := r.SpawnMethod(NewTip(Vec3(0, 0, -1)))
	m.NonSpatial.Grab = 1

	var (
		action       SingleAction
		startedTicks []int
		stoppedTicks []int
		tick         int
	)
	hover := func(e InputEvent) bool { return e.Distance <= 0.01 }
	interact := func(e InputEvent) bool { return e.NonSpatial.Grab > 0.8 }
	h.OnInput = func(h *InputHandler) {
		action.Update(h, false, hover, interact)
		if action.StartedActing() {
			startedTicks = append(startedTicks, tick)
		}
		if action.StoppedActing() {
			stoppedTicks = append(stoppedTicks, tick)
		}
	}

	path := []float64{-1, -0.8, -0.6, -0.4, -0.3, -0.25, -0.22, -0.19, -0.19, -0.19, -0.5, -0.8}
	const touchTick = 7  // first tick at -0.19
	const retreatTick = 10

	owners := make([]Entity, len(path))
	for i, z := range path {
		tick = i
		m.Spatial = NewTip(Vec3(0, 0, z))
		r.Tick()
		owners[i] = m.CapturedBy()
	}

	for i := 0; i <= touchTick; i++ {
		if owners[i] != None {
			t.Errorf("tick %d: captured by %d before the request was drained", i, owners[i])
		}
	}
	// Granted on the tick after the tip first hovers, held until released.
	for i := touchTick + 1; i < retreatTick; i++ {
		if owners[i] != h.ID() {
			t.Errorf("tick %d: CapturedBy = %d, want %d", i, owners[i], h.ID())
		}
	}
	// The owner releases during the retreat tick; nobody owns it after.
	for i := retreatTick; i < len(path); i++ {
		if owners[i] != None {
			t.Errorf("tick %d: CapturedBy = %d, want none after release", i, owners[i])
		}
	}

	if len(startedTicks) != 1 || startedTicks[0] != touchTick+1 {
		t.Errorf("started ticks = %v, want exactly [%d]", startedTicks, touchTick+1)
	}
	if len(stoppedTicks) != 1 || stoppedTicks[0] != retreatTick {
		t.Errorf("stopped ticks = %v, want exactly [%d]", stoppedTicks, retreatTick)
	}
}

// Dropping grab while touching also stops the actor.
func TestScenarioGrabDropped(t *testing.T) {
	r, _ := newTestRegistry(t)
	h := r.SpawnHandler(Sphere{Radius: 0.2}, Identity())
	m := r.SpawnMethod(NewTip(Vec3(0, 0, -0.19)))
	m.NonSpatial.Grab = 1

	var action SingleAction
	var started, stopped int
	h.OnInput = func(h *InputHandler) {
		action.Update(h, false,
			func(e InputEvent) bool { return e.Distance <= 0.01 },
			func(e InputEvent) bool { return e.NonSpatial.Grab > 0.8 })
		if action.StartedActing() {
			started++
		}
		if action.StoppedActing() {
			stopped++
		}
	}

	r.Tick()
	r.Tick()
	if started != 1 || m.CapturedBy() != h.ID() {
		t.Fatalf("started=%d owner=%d, want grab after two ticks", started, m.CapturedBy())
	}
	m.NonSpatial.Grab = 0
	r.Tick()
	if stopped != 1 {
		t.Errorf("stopped = %d, want 1", stopped)
	}
	if m.CapturedBy() != None {
		t.Errorf("CapturedBy = %d, want none after release", m.CapturedBy())
	}
}
