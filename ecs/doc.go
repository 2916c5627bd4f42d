// Package ecs provides ECS adapters for grasp's capture system.
//
// The primary adapter is [NewDonburiSink], which forwards capture transitions
// (granted, lost, released) and delivered input events into a [Donburi] world
// as typed events. Subscribe to [CaptureEventType] or [InputEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	registry.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
