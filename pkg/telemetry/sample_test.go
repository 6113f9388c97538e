package telemetry

import (
	"testing"
	"time"
)

func TestKindString(t *testing.T) {
	if got := KindPosition.String(); got != "POSITION" {
		t.Errorf("KindPosition.String() = %q, want POSITION", got)
	}
	if got := KindBiometric.String(); got != "BIOMETRIC" {
		t.Errorf("KindBiometric.String() = %q, want BIOMETRIC", got)
	}
	if got := Kind(7).String(); got != "UNKNOWN" {
		t.Errorf("Kind(7).String() = %q, want UNKNOWN", got)
	}
}

func TestNewPositionSample(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := NewPositionSample(ts, PositionReading{Lat: 48.1, Lon: 11.5, Altitude: 520, HorizontalAccuracy: 5})

	if s.Kind != KindPosition {
		t.Errorf("Kind = %v, want KindPosition", s.Kind)
	}
	if !s.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", s.Timestamp, ts)
	}
	if s.Position == nil || s.Position.Lat != 48.1 {
		t.Errorf("Position = %+v, want Lat 48.1", s.Position)
	}
	if s.Biometric != nil {
		t.Error("Biometric should be nil on a position sample")
	}
}

func TestNewBiometricSample(t *testing.T) {
	hr := 150.0
	steps := uint64(4200)
	s := NewBiometricSample(time.Now(), BiometricReading{HeartRate: &hr, Steps: &steps})

	if s.Kind != KindBiometric {
		t.Errorf("Kind = %v, want KindBiometric", s.Kind)
	}
	if s.Biometric == nil {
		t.Fatal("Biometric is nil")
	}
	if s.Biometric.HeartRate == nil || *s.Biometric.HeartRate != 150.0 {
		t.Errorf("HeartRate = %v, want 150", s.Biometric.HeartRate)
	}
	if s.Biometric.Calories != nil {
		t.Error("Calories should be nil when not reported")
	}
	if s.Position != nil {
		t.Error("Position should be nil on a biometric sample")
	}
}
