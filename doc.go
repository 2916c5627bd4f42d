// Package grasp arbitrates spatial input between interaction targets.
//
// Input methods (hand skeletons, controller tips, pointer rays) compete once
// per tick for exclusive ownership ("capture") of input handlers. Each handler
// is bound to an implicit surface, a [Field], and receives per-tick
// [InputEvent] values measured against it. Handler-side actions turn those
// events into hover, grab and release edges.
//
// # Quick start
//
//	reg := grasp.NewRegistry(grasp.DefaultConfig())
//
//	ball := reg.SpawnHandler(grasp.Sphere{Radius: 0.2}, grasp.Identity())
//	tip := reg.SpawnMethod(grasp.NewTip(grasp.Vec3(0, 0, -1)))
//
//	var action grasp.SingleAction
//	ball.OnInput = func(h *grasp.InputHandler) {
//		action.Update(h, false,
//			func(e grasp.InputEvent) bool { return e.Distance <= 0.01 },
//			func(e grasp.InputEvent) bool { return e.NonSpatial.Grab > 0.8 })
//		if action.StartedActing() {
//			// picked up
//		}
//	}
//
//	// every frame:
//	tip.Spatial = grasp.NewTip(trackedPosition)
//	tip.NonSpatial.Grab = trackedGrab
//	reg.Tick()
//
// # Fields
//
// [Sphere], [Cuboid], [Torus] and [Cylinder] are signed distance functions in
// canonical local space. [Distance], [Normal] and [ClosestPoint] evaluate them
// under a world [Transform]; [Raymarch] sphere-traces a [Ray] against one
// field and [RaymarchFields] against many at once.
//
// # Spatial input
//
// A method's shape is a [SpatialInput]: a [Hand] (treated as five fingertip
// probes), a [Tip], or a [Ray]. Non-spatial channels live in
// [NonSpatialInput]. [Registry.UpdateHandChannels] fills a hand method's
// Select and Grab from its pinch and curl using the config's hand section.
//
// # Tick
//
// [Registry.Tick] runs three phases in order:
//
//  1. [Registry.Arbitrate] clears ownership, orders handlers by distance (rays
//     by what they reach first), optionally moves last tick's owner to the
//     front, grants each method to the first handler with a pending request,
//     and rebuilds every handler's event list. A captured method is delivered
//     only to its owner; an uncaptured method is delivered to every handler.
//  2. Each handler's OnInput callback runs.
//  3. [Registry.Intake] drains handler messages. [InputHandler.RequestCapture]
//     takes effect at the next Arbitrate and persists until
//     [InputHandler.Release]; a release by the current owner clears ownership
//     immediately.
//
// Nothing in a tick returns an error. Stale references and broken field
// references are logged through the registry's [log/slog] logger and skipped.
//
// # Actions
//
// [SimpleAction], [MultiAction] and [SingleAction] build on [DeltaSet] to
// give started/current/stopped views of acting and hovering methods.
//
// # Platform input
//
// [WindowPointer] turns the Ebitengine mouse cursor into a ray method through
// a [Camera]. [Script] replays YAML-authored tip and channel input for tests
// and demos.
//
// # ECS integration
//
// Set an [EventSink] with [Registry.SetEventSink] to forward capture
// transitions and delivered events. The ecs sub-package provides a Donburi
// adapter.
package grasp
