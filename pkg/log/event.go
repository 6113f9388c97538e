package log

import "time"

// Event represents a session log event captured by the tracking engine.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Activity is the activity type name ("RUNNING", "CYCLING", ...).
	Activity string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	State   *StateChangeEvent `cbor:"10,keyasint,omitempty"` // Lifecycle transitions
	Anomaly *AnomalyEvent     `cbor:"11,keyasint,omitempty"` // Validator clamps/rejects
	Split   *SplitEvent       `cbor:"12,keyasint,omitempty"` // Completed splits
	Metrics *MetricsEvent     `cbor:"13,keyasint,omitempty"` // Live metric republish
	Record  *RecordEvent      `cbor:"14,keyasint,omitempty"` // Finalized records
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState is a session lifecycle transition, including rejected
	// (soft) transitions.
	CategoryState Category = 0
	// CategoryAnomaly is a telemetry plausibility clamp or reject.
	CategoryAnomaly Category = 1
	// CategorySplit is a completed split.
	CategorySplit Category = 2
	// CategoryMetrics is a live-metrics republish at tick cadence.
	CategoryMetrics Category = 3
	// CategoryRecord is a finalized workout record.
	CategoryRecord Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryAnomaly:
		return "ANOMALY"
	case CategorySplit:
		return "SPLIT"
	case CategoryMetrics:
		return "METRICS"
	case CategoryRecord:
		return "RECORD"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a session state transition.
type StateChangeEvent struct {
	// From and To are session state names ("IDLE", "ACTIVE", ...).
	From string `cbor:"1,keyasint"`
	To   string `cbor:"2,keyasint"`

	// Accepted is false for soft-rejected transitions (e.g. pause from
	// IDLE), in which case To equals From.
	Accepted bool `cbor:"3,keyasint"`

	// Reason is set for rejected transitions.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// AnomalyEvent captures a telemetry value that failed a plausibility check.
type AnomalyEvent struct {
	// Metric names the affected quantity ("distance", "calories",
	// "steps", "heartRate").
	Metric string `cbor:"1,keyasint"`

	// Verdict is the validator verdict name ("CLAMP" or "REJECT").
	Verdict string `cbor:"2,keyasint"`

	// Candidate is the raw value, Applied the value actually used.
	Candidate float64 `cbor:"3,keyasint"`
	Applied   float64 `cbor:"4,keyasint"`

	// Reason is the validator's explanation.
	Reason string `cbor:"5,keyasint,omitempty"`
}

// SplitEvent captures a completed split.
type SplitEvent struct {
	// Index is the 1-based split number.
	Index int `cbor:"1,keyasint"`

	// Distance is the split distance in meters.
	Distance float64 `cbor:"2,keyasint"`

	// Elapsed is the attributed active time.
	Elapsed time.Duration `cbor:"3,keyasint"`

	// Pace is minutes per kilometer. Zero when the pace is the NaN
	// sentinel, since NaN does not round-trip through every consumer.
	Pace float64 `cbor:"4,keyasint,omitempty"`
}

// MetricsEvent captures a live-metrics snapshot at tick cadence.
type MetricsEvent struct {
	// Elapsed is the elapsed active duration.
	Elapsed time.Duration `cbor:"1,keyasint"`

	// Distance is cumulative distance in meters.
	Distance float64 `cbor:"2,keyasint"`

	// HeartRate is the latest reading in bpm (0 when none seen).
	HeartRate float64 `cbor:"3,keyasint,omitempty"`
}

// RecordEvent captures session finalization.
type RecordEvent struct {
	// RecordID is the workout record UUID.
	RecordID string `cbor:"1,keyasint"`

	// Duration is the final elapsed active duration.
	Duration time.Duration `cbor:"2,keyasint"`

	// Distance is the final distance in meters.
	Distance float64 `cbor:"3,keyasint"`

	// Splits is the number of completed splits.
	Splits int `cbor:"4,keyasint"`
}
