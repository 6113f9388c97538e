// Package aggregate turns raw telemetry samples into cumulative session
// metrics.
//
// # Model
//
// An Aggregator is the single consumer for both the position and the
// biometric stream. Every sample enters through Ingest, which validates
// the reading against the activity profile, folds accepted values into
// the cumulative Metrics, and counts clamped or rejected readings in
// Diagnostics. Implausible readings never abort a session.
//
// # Distance sources
//
// The position stream is the primary distance source: each accepted fix
// contributes the haversine distance from the previous fix. When the
// position stream goes silent beyond the profile's staleness window,
// step-derived distance (step delta times the profile step length) fills
// in. The two sources are never summed for the same span: the first fix
// after a gap only re-establishes the reference point.
package aggregate
