package session

import (
	"math"
	"time"

	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/aggregate"
	"github.com/openstride/stride-go/pkg/split"
)

// WorkoutRecord is the immutable summary of a finished session. It is
// assembled once by End from the final snapshot and value-copied from
// then on; nothing in the engine mutates a returned record.
type WorkoutRecord struct {
	// ID is the record UUID, distinct from the session ID.
	ID string `json:"id"`

	// SessionID is the ID of the session this record was built from.
	SessionID string `json:"session_id"`

	// Activity is the activity type name as produced by activity.Type.String.
	Activity string `json:"activity"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	// Duration is the elapsed active time, excluding pauses.
	Duration time.Duration `json:"duration"`

	// PausedDuration is the total time spent paused.
	PausedDuration time.Duration `json:"paused_duration,omitempty"`

	// Distance is the total distance in meters.
	Distance float64 `json:"distance"`

	// AveragePace is minutes per kilometer over the whole session, 0 when
	// no distance was covered (JSON cannot carry NaN).
	AveragePace float64 `json:"average_pace,omitempty"`

	Calories float64 `json:"calories,omitempty"`
	Steps    uint64  `json:"steps,omitempty"`

	HeartRate HeartRateSummary `json:"heart_rate"`

	ElevationGain float64 `json:"elevation_gain,omitempty"`
	ElevationLoss float64 `json:"elevation_loss,omitempty"`

	// Splits holds the closed splits in order, plus the final partial
	// split when it covers any distance.
	Splits []RecordSplit `json:"splits,omitempty"`

	// Route is the ordered list of accepted position fixes.
	Route []RecordPoint `json:"route,omitempty"`

	Diagnostics RecordDiagnostics `json:"diagnostics"`
}

// HeartRateSummary is the heart-rate statistics block of a record.
type HeartRateSummary struct {
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Avg     float64 `json:"avg,omitempty"`
	Samples uint64  `json:"samples,omitempty"`
}

// RecordSplit is one split as stored in a record.
type RecordSplit struct {
	Index     int           `json:"index"`
	Distance  float64       `json:"distance"`
	Elapsed   time.Duration `json:"elapsed"`
	Pace      float64       `json:"pace,omitempty"`
	Completed bool          `json:"completed"`
}

// RecordPoint is one route point as stored in a record.
type RecordPoint struct {
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
	Altitude float64   `json:"altitude,omitempty"`
	Time     time.Time `json:"time"`
}

// RecordDiagnostics carries the anomaly counters of a record.
type RecordDiagnostics struct {
	RejectedFixes          uint64 `json:"rejected_fixes,omitempty"`
	ClampedFixes           uint64 `json:"clamped_fixes,omitempty"`
	RejectedBiometrics     uint64 `json:"rejected_biometrics,omitempty"`
	ClampedCalories        uint64 `json:"clamped_calories,omitempty"`
	ClampedSteps           uint64 `json:"clamped_steps,omitempty"`
	FallbackDistanceEvents uint64 `json:"fallback_distance_events,omitempty"`
	ClockInconsistencies   uint64 `json:"clock_inconsistencies,omitempty"`
	InvalidTransitions     uint64 `json:"invalid_transitions,omitempty"`
}

// ActivityType parses the record's activity name back into a Type.
func (r *WorkoutRecord) ActivityType() (activity.Type, bool) {
	return activity.ParseType(r.Activity)
}

// finitePace maps the NaN pace sentinel to 0 for record storage.
func finitePace(pace float64) float64 {
	if math.IsNaN(pace) || math.IsInf(pace, 0) {
		return 0
	}
	return pace
}

func recordSplits(completed []split.Split, current split.Split) []RecordSplit {
	out := make([]RecordSplit, 0, len(completed)+1)
	for _, s := range completed {
		out = append(out, RecordSplit{
			Index:     s.Index,
			Distance:  s.Distance,
			Elapsed:   s.Elapsed,
			Pace:      finitePace(s.Pace),
			Completed: true,
		})
	}
	if current.Distance > 0 {
		out = append(out, RecordSplit{
			Index:    current.Index,
			Distance: current.Distance,
			Elapsed:  current.Elapsed,
			Pace:     finitePace(current.Pace),
		})
	}
	return out
}

func recordRoute(route []aggregate.RoutePoint) []RecordPoint {
	if len(route) == 0 {
		return nil
	}
	out := make([]RecordPoint, 0, len(route))
	for _, p := range route {
		out = append(out, RecordPoint{
			Lat:      p.Point.Lat,
			Lon:      p.Point.Lon,
			Altitude: p.Altitude,
			Time:     p.Time,
		})
	}
	return out
}
