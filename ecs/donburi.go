package ecs

import (
	"github.com/phanxgames/grasp"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HandlerInput is one input event delivered to a handler during arbitration.
type HandlerInput struct {
	Handler grasp.Entity
	Event   grasp.InputEvent
}

// CaptureEventType is the Donburi event type for capture transitions.
var CaptureEventType = events.NewEventType[grasp.CaptureEvent]()

// InputEventType is the Donburi event type for delivered input events.
// Events arrive in arbitration order: by handler, then by method.
var InputEventType = events.NewEventType[HandlerInput]()

type donburiSink struct {
	world       donburi.World
	inputEvents bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Capture
// transitions are published to CaptureEventType and delivered input events
// to InputEventType; consume them with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) grasp.EventSink {
	return &donburiSink{world: world, inputEvents: true}
}

// NewDonburiCaptureSink is like NewDonburiSink but publishes only capture
// transitions. Use it when per-tick input volume is not needed in the world.
func NewDonburiCaptureSink(world donburi.World) grasp.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitCapture(event grasp.CaptureEvent) {
	CaptureEventType.Publish(s.world, event)
}

func (s *donburiSink) EmitInput(handler grasp.Entity, event grasp.InputEvent) {
	if !s.inputEvents {
		return
	}
	InputEventType.Publish(s.world, HandlerInput{Handler: handler, Event: event})
}
