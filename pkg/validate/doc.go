// Package validate implements plausibility checks for raw telemetry.
//
// Every check is a pure function from a candidate value, the relevant
// interval, and an activity profile to a Result. Checks never return errors
// and never panic: raw sensor noise is expected input, and the worst
// possible outcome is a rejected sample.
//
// The three verdicts are:
//
//   - ACCEPT: use the candidate unchanged.
//   - CLAMP: the candidate exceeded a physical ceiling; use the bounded
//     Value instead. Example: a GPS fix implying 50 m/s during a run is
//     clamped to the 10 m/s ceiling-derived maximum distance for the
//     sample interval.
//   - REJECT: the candidate is unusable (non-finite, negative, or measured
//     over a zero interval) and contributes nothing.
//
// Clamp and reject both set Warning so callers can maintain diagnostic
// counters without switching on the verdict.
package validate
