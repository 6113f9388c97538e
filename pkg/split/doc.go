// Package split derives distance-based splits from cumulative session
// metrics.
//
// A split is a fixed-distance segment (default one kilometer) with its own
// attributed elapsed time and pace. The tracker consumes (cumulative
// distance, elapsed active time) pairs at tick cadence: whenever the
// distance crosses one or more split boundaries, the corresponding splits
// are closed and reported through an optional callback.
//
// # Multi-split ticks
//
// A large distance jump can cross several boundaries between two ticks. The
// elapsed time since the last closed boundary is then distributed evenly
// across all newly closed splits. The alternative — attributing the whole
// interval to the last split and zero to the rest — produces degenerate
// zero-time splits with infinite pace.
//
// # Pace sentinel
//
// A split whose attributed elapsed time is zero or non-finite reports NaN
// pace. Consumers must render NaN as "no pace", not as a number.
package split
