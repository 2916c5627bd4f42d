package ecs

import (
	"math"
	"testing"

	"github.com/phanxgames/grasp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitCapture(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []grasp.CaptureEvent
	CaptureEventType.Subscribe(world, func(w donburi.World, e grasp.CaptureEvent) {
		received = append(received, e)
	})

	sink.EmitCapture(grasp.CaptureEvent{Type: grasp.CaptureGranted, Tick: 3, Method: 1, Handler: 2})
	sink.EmitCapture(grasp.CaptureEvent{Type: grasp.CaptureReleased, Tick: 4, Method: 1, Handler: 2})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	CaptureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != grasp.CaptureGranted || e0.Tick != 3 {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != grasp.CaptureReleased || e1.Handler != 2 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiCaptureSink_SkipsInput(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiCaptureSink(world)

	count := 0
	InputEventType.Subscribe(world, func(w donburi.World, e HandlerInput) {
		count++
	})
	sink.EmitInput(7, grasp.InputEvent{Method: 1})
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("capture-only sink published %d input events", count)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink grasp.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

// A full tick through a Registry publishes the grant and an input event to
// the owner.
func TestDonburiSink_RegistryTick(t *testing.T) {
	world := donburi.NewWorld()
	reg := grasp.NewRegistry(grasp.DefaultConfig())
	reg.SetEventSink(NewDonburiSink(world))

	h := reg.SpawnHandler(grasp.Sphere{Radius: 0.5}, grasp.Identity())
	m := reg.SpawnMethod(grasp.NewTip(grasp.Vec3(0, 0, 1)))
	h.RequestCapture(m.ID())

	var captures []grasp.CaptureEvent
	var inputs []HandlerInput
	CaptureEventType.Subscribe(world, func(w donburi.World, e grasp.CaptureEvent) {
		captures = append(captures, e)
	})
	InputEventType.Subscribe(world, func(w donburi.World, e HandlerInput) {
		inputs = append(inputs, e)
	})

	reg.Intake()
	reg.Tick()
	events.ProcessAllEvents(world)

	if len(captures) != 1 {
		t.Fatalf("expected 1 capture event, got %d", len(captures))
	}
	c := captures[0]
	if c.Type != grasp.CaptureGranted || c.Handler != h.ID() || c.Method != m.ID() {
		t.Errorf("capture event: %+v", c)
	}

	if len(inputs) != 1 {
		t.Fatalf("expected 1 input event, got %d", len(inputs))
	}
	in := inputs[0]
	if in.Handler != h.ID() || !in.Event.Captured {
		t.Errorf("input event: %+v", in)
	}
	if math.Abs(in.Event.Distance-0.5) > 1e-9 {
		t.Errorf("input distance = %v, want 0.5", in.Event.Distance)
	}
}

func TestDonburiSink_DespawnedOwnerPublishesLost(t *testing.T) {
	world := donburi.NewWorld()
	reg := grasp.NewRegistry(grasp.DefaultConfig())
	reg.SetEventSink(NewDonburiCaptureSink(world))

	h := reg.SpawnHandler(grasp.Sphere{Radius: 0.5}, grasp.Identity())
	m := reg.SpawnMethod(grasp.NewTip(grasp.Vec3(0, 0, 1)))
	h.RequestCapture(m.ID())

	var types []grasp.CaptureEventType
	CaptureEventType.Subscribe(world, func(w donburi.World, e grasp.CaptureEvent) {
		types = append(types, e.Type)
	})

	reg.Intake()
	reg.Tick()
	reg.Despawn(h.ID())
	events.ProcessAllEvents(world)

	if len(types) != 2 || types[0] != grasp.CaptureGranted || types[1] != grasp.CaptureLost {
		t.Errorf("capture types = %v, want [granted lost]", types)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	CaptureEventType.Subscribe(world, func(w donburi.World, e grasp.CaptureEvent) {
		count1++
	})
	CaptureEventType.Subscribe(world, func(w donburi.World, e grasp.CaptureEvent) {
		count2++
	})

	sink.EmitCapture(grasp.CaptureEvent{Type: grasp.CaptureLost})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
