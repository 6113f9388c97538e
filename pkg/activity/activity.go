package activity

import "time"

// Type identifies the kind of activity being tracked.
type Type uint8

const (
	TypeWalking Type = 0
	TypeHiking  Type = 1
	TypeRunning Type = 2
	TypeCycling Type = 3
)

// String returns the activity type name.
func (t Type) String() string {
	switch t {
	case TypeWalking:
		return "WALKING"
	case TypeHiking:
		return "HIKING"
	case TypeRunning:
		return "RUNNING"
	case TypeCycling:
		return "CYCLING"
	default:
		return "UNKNOWN"
	}
}

// ParseType returns the Type for a name as produced by String.
// The match is case-insensitive; unknown names return false.
func ParseType(s string) (Type, bool) {
	switch normalize(s) {
	case "WALKING", "WALK":
		return TypeWalking, true
	case "HIKING", "HIKE":
		return TypeHiking, true
	case "RUNNING", "RUN":
		return TypeRunning, true
	case "CYCLING", "CYCLE", "BIKE":
		return TypeCycling, true
	default:
		return 0, false
	}
}

func normalize(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

// Default profile constants.
const (
	// DefaultSplitDistance is the split length when a profile does not
	// override it (one metric kilometer).
	DefaultSplitDistance = 1000.0

	// DefaultStalenessWindow is how long the position stream may be silent
	// before step-derived distance estimation takes over.
	DefaultStalenessWindow = 30 * time.Second

	// ElevationNoiseThreshold is the minimum altitude delta in meters
	// counted toward elevation gain/loss. Smaller deltas are barometric or
	// GPS jitter.
	ElevationNoiseThreshold = 1.0
)

// Profile holds the per-activity plausibility bounds and unit parameters
// used for telemetry validation and split accounting.
type Profile struct {
	// MaxSpeed is the plausibility ceiling for instantaneous speed in m/s.
	// Position fixes implying a higher speed are clamped, not discarded.
	MaxSpeed float64 `yaml:"maxSpeed"`

	// MaxCaloriesPerMin caps the active-calorie accumulation rate.
	MaxCaloriesPerMin float64 `yaml:"maxCaloriesPerMin"`

	// MinStride and MaxStride bound plausible stride length in meters,
	// relative to accumulated distance.
	MinStride float64 `yaml:"minStride"`
	MaxStride float64 `yaml:"maxStride"`

	// StepLength is the nominal stride in meters used for step-derived
	// distance estimation while the position stream is stale.
	StepLength float64 `yaml:"stepLength"`

	// SplitDistance is the split length in meters.
	SplitDistance float64 `yaml:"splitDistance"`

	// StalenessWindow is how long the position stream may be silent before
	// the step-derived fallback distance source activates.
	StalenessWindow time.Duration `yaml:"stalenessWindow"`
}

// DefaultProfile returns the built-in profile for an activity type.
func DefaultProfile(t Type) Profile {
	p := Profile{
		MinStride:       0.3,
		MaxStride:       2.5,
		StepLength:      0.75,
		SplitDistance:   DefaultSplitDistance,
		StalenessWindow: DefaultStalenessWindow,
	}

	switch t {
	case TypeWalking:
		p.MaxSpeed = 3.0
		p.MaxCaloriesPerMin = 10
	case TypeHiking:
		p.MaxSpeed = 3.0
		p.MaxCaloriesPerMin = 14
		p.StepLength = 0.65
	case TypeRunning:
		p.MaxSpeed = 10.0
		p.MaxCaloriesPerMin = 20
		p.StepLength = 1.1
	case TypeCycling:
		p.MaxSpeed = 20.0
		p.MaxCaloriesPerMin = 18
		// Cadence sensors report crank revolutions, not strides; the
		// step fallback is disabled for cycling.
		p.StepLength = 0
	default:
		p.MaxSpeed = 3.0
		p.MaxCaloriesPerMin = 10
	}

	return p
}
