// Package activity defines activity types and their plausibility profiles.
//
// A Profile bundles everything about an activity that the tracking engine
// needs to bound raw sensor input: the instantaneous speed ceiling, calorie
// rate cap, stride-length bounds, the nominal step length for fallback
// distance estimation, the split distance, and the position staleness
// window.
//
// Every parameter has a built-in default per activity type; deployments can
// override any of them from a YAML profile file via LoadProfiles.
//
// The package also carries pace math. Pace is expressed in minutes per
// kilometer throughout, with NaN as the explicit "no pace" sentinel for
// zero-distance or zero-time inputs.
package activity
