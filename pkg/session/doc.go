// Package session implements the workout session state machine.
//
// # Lifecycle
//
// A Controller moves through Idle, Active, Paused, and Ended. Start is
// legal from Idle, Pause from Active, Resume from Paused, End from Active
// or Paused, and Cancel from anywhere. Illegal calls are soft: they leave
// the session untouched, are counted and logged, and return
// ErrInvalidTransition so callers can observe them.
//
// # Recompute tick
//
// Derived state (splits, live metrics) is recomputed by Tick, driven at a
// fixed cadence by the caller while the session is Active. Tick shares
// the controller mutex with lifecycle transitions and ingestion, so a
// transition never interleaves with an in-flight tick.
//
// # Finalization
//
// End assembles the immutable WorkoutRecord from the final clock and
// aggregator snapshot: totals, heart-rate statistics, splits including
// the trailing partial one, the route, and the anomaly counters.
package session
