// Package clock implements elapsed active-time accounting for a session.
//
// The model is three fields: the session start time, an optional open pause
// start, and the accumulated duration of all completed pauses. Elapsed
// active time is always derived from those fields and the caller-supplied
// current time; nothing ticks internally.
//
// # Invariants
//
//   - Elapsed active time never decreases while the clock runs.
//   - While paused, elapsed active time is constant.
//   - Resume never resets the session start; elapsed continues from the
//     frozen value.
//   - Pause and Resume are idempotent no-ops when already in the target
//     state.
//
// An observed time earlier than the session start is clamped to zero
// elapsed and recorded in a diagnostic counter rather than propagated.
package clock
