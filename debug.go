package grasp

import (
	"time"
)

// tickStats holds per-tick timing and arbitration counts.
// Only populated when Registry.debug is true.
type tickStats struct {
	arbitrateTime time.Duration
	intakeTime    time.Duration
	activeMethods int
	handlers      int
	captured      int
	events        int
	messages      int
}

// debugLog writes the last tick's stats at debug level.
func (r *Registry) debugLog() {
	if !r.debug {
		return
	}
	s := r.stats
	r.log.Debug("grasp: tick",
		"tick", r.tick,
		"arbitrate", s.arbitrateTime,
		"intake", s.intakeTime,
		"total", s.arbitrateTime+s.intakeTime)
	r.log.Debug("grasp: tick counts",
		"tick", r.tick,
		"methods", s.activeMethods,
		"handlers", s.handlers,
		"captured", s.captured,
		"events", s.events,
		"messages", s.messages)
}

// debugMaxHandlerOrder is the candidate count above which a warning is
// logged once per tick in debug mode.
const debugMaxHandlerOrder = 1000

// debugCheckOrder warns when a method has an unusually long candidate order.
func (r *Registry) debugCheckOrder(m *InputMethod) {
	if n := len(m.handlerOrder); n > debugMaxHandlerOrder {
		r.log.Warn("grasp: large handler order", "method", m.id, "candidates", n, "limit", debugMaxHandlerOrder)
	}
}
