package validate

import (
	"math"
	"time"

	"github.com/openstride/stride-go/pkg/activity"
)

// Verdict classifies the outcome of a plausibility check.
type Verdict uint8

const (
	// VerdictAccept means the candidate value is plausible as-is.
	VerdictAccept Verdict = 0

	// VerdictClamp means the candidate exceeded a ceiling and was bounded
	// to the maximum plausible value for the interval.
	VerdictClamp Verdict = 1

	// VerdictReject means the candidate is unusable (non-finite, negative
	// delta, zero interval) and must be dropped entirely.
	VerdictReject Verdict = 2
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictAccept:
		return "ACCEPT"
	case VerdictClamp:
		return "CLAMP"
	case VerdictReject:
		return "REJECT"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a plausibility check. Value carries the value to
// use: the candidate when accepted, the bounded value when clamped, zero
// when rejected. Warning is set for clamp and reject so callers can count
// anomalies without inspecting the verdict.
type Result struct {
	Verdict Verdict
	Value   float64
	Warning bool
	Reason  string
}

func accept(value float64) Result {
	return Result{Verdict: VerdictAccept, Value: value}
}

func clamp(value float64, reason string) Result {
	return Result{Verdict: VerdictClamp, Value: value, Warning: true, Reason: reason}
}

func reject(reason string) Result {
	return Result{Verdict: VerdictReject, Warning: true, Reason: reason}
}

// Distance checks an incremental distance in meters covered over the given
// sample interval against the profile's instantaneous speed ceiling. A
// candidate implying a higher speed is clamped to the ceiling-derived
// maximum distance for the interval, never silently discarded.
func Distance(candidate float64, interval time.Duration, profile activity.Profile) Result {
	if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
		return reject("non-finite distance")
	}
	if candidate < 0 {
		return reject("negative distance")
	}
	if interval <= 0 {
		return reject("non-positive sample interval")
	}

	maxDistance := profile.MaxSpeed * interval.Seconds()
	if candidate > maxDistance {
		return clamp(maxDistance, "speed above activity ceiling")
	}
	return accept(candidate)
}

// Calories checks an incremental calorie delta in kcal accumulated over the
// given elapsed active time against the profile's per-minute rate cap.
func Calories(delta float64, elapsed time.Duration, profile activity.Profile) Result {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return reject("non-finite calorie delta")
	}
	if delta < 0 {
		return reject("negative calorie delta")
	}
	if delta == 0 {
		return accept(0)
	}
	if elapsed <= 0 {
		return reject("non-positive elapsed time")
	}

	maxDelta := profile.MaxCaloriesPerMin * elapsed.Minutes()
	if delta > maxDelta {
		return clamp(maxDelta, "calorie rate above ceiling")
	}
	return accept(delta)
}

// Steps checks an incremental step delta against the stride-length bounds
// relative to the distance covered over the same span. With zero distance
// the stride bound cannot be computed and the delta is accepted as-is.
func Steps(delta float64, distance float64, profile activity.Profile) Result {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return reject("non-finite step delta")
	}
	if delta < 0 {
		return reject("negative step delta")
	}
	if delta == 0 || distance <= 0 {
		return accept(delta)
	}

	// Plausible step count range for the covered distance.
	minSteps := distance / profile.MaxStride
	maxSteps := distance / profile.MinStride

	if delta > maxSteps {
		return clamp(math.Floor(maxSteps), "steps imply stride below minimum")
	}
	if delta < minSteps {
		// Fewer steps than the longest plausible stride allows. The step
		// counter lags position often enough that this is only a warning;
		// the count itself stays usable.
		return Result{Verdict: VerdictAccept, Value: delta, Warning: true, Reason: "steps imply stride above maximum"}
	}
	return accept(delta)
}

// HeartRate checks a heart-rate reading in bpm for physiological
// plausibility. The bounds are activity-independent.
func HeartRate(candidate float64) Result {
	if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
		return reject("non-finite heart rate")
	}
	if candidate < 20 || candidate > 250 {
		return reject("heart rate outside physiological range")
	}
	return accept(candidate)
}
