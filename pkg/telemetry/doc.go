// Package telemetry defines the sample types flowing into the tracking
// engine.
//
// A Sample is a tagged union of the two reading kinds (position fix,
// biometric reading) with a single timestamp. Modeling the union explicitly
// keeps every consumer signature uniform: one typed value per reading, no
// optional sensor fields threaded through call chains.
package telemetry
