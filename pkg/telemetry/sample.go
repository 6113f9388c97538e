package telemetry

import "time"

// Kind discriminates the reading carried by a Sample.
type Kind uint8

const (
	// KindPosition is a GPS position fix.
	KindPosition Kind = 0
	// KindBiometric is a heart-rate / step / calorie reading.
	KindBiometric Kind = 1
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPosition:
		return "POSITION"
	case KindBiometric:
		return "BIOMETRIC"
	default:
		return "UNKNOWN"
	}
}

// PositionReading is a single GPS fix.
type PositionReading struct {
	// Lat and Lon are WGS84 degrees.
	Lat float64
	Lon float64

	// Altitude is meters above sea level.
	Altitude float64

	// HorizontalAccuracy is the reported 68%-confidence radius in meters.
	// Negative means the fix carries no accuracy estimate.
	HorizontalAccuracy float64
}

// BiometricReading is a single biometric sensor reading. All fields are
// optional; nil means the sensor did not report that quantity.
type BiometricReading struct {
	// HeartRate in beats per minute.
	HeartRate *float64

	// Steps is the cumulative step count since session start.
	Steps *uint64

	// Calories is the cumulative active energy in kcal since session start.
	Calories *float64
}

// Sample is one timestamped telemetry reading: exactly one of Position or
// Biometric is set, selected by Kind.
type Sample struct {
	Timestamp time.Time
	Kind      Kind

	Position  *PositionReading
	Biometric *BiometricReading
}

// NewPositionSample builds a position sample.
func NewPositionSample(ts time.Time, reading PositionReading) Sample {
	return Sample{
		Timestamp: ts,
		Kind:      KindPosition,
		Position:  &reading,
	}
}

// NewBiometricSample builds a biometric sample.
func NewBiometricSample(ts time.Time, reading BiometricReading) Sample {
	return Sample{
		Timestamp: ts,
		Kind:      KindBiometric,
		Biometric: &reading,
	}
}
