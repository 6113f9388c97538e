package activity

import (
	"math"
	"testing"
	"time"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeWalking, "WALKING"},
		{TypeHiking, "HIKING"},
		{TypeRunning, "RUNNING"},
		{TypeCycling, "CYCLING"},
		{Type(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
		ok   bool
	}{
		{"running", TypeRunning, true},
		{"RUN", TypeRunning, true},
		{"Cycling", TypeCycling, true},
		{"bike", TypeCycling, true},
		{"walk", TypeWalking, true},
		{"hike", TypeHiking, true},
		{"swimming", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseType(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseType(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefaultProfileCeilings(t *testing.T) {
	if got := DefaultProfile(TypeWalking).MaxSpeed; got != 3.0 {
		t.Errorf("walking MaxSpeed = %v, want 3.0", got)
	}
	if got := DefaultProfile(TypeRunning).MaxSpeed; got != 10.0 {
		t.Errorf("running MaxSpeed = %v, want 10.0", got)
	}
	if got := DefaultProfile(TypeCycling).MaxSpeed; got != 20.0 {
		t.Errorf("cycling MaxSpeed = %v, want 20.0", got)
	}
}

func TestDefaultProfileSplits(t *testing.T) {
	for _, typ := range []Type{TypeWalking, TypeHiking, TypeRunning, TypeCycling} {
		p := DefaultProfile(typ)
		if p.SplitDistance != DefaultSplitDistance {
			t.Errorf("%v SplitDistance = %v, want %v", typ, p.SplitDistance, DefaultSplitDistance)
		}
		if p.StalenessWindow != DefaultStalenessWindow {
			t.Errorf("%v StalenessWindow = %v, want %v", typ, p.StalenessWindow, DefaultStalenessWindow)
		}
	}
}

func TestCyclingHasNoStepFallback(t *testing.T) {
	if got := DefaultProfile(TypeCycling).StepLength; got != 0 {
		t.Errorf("cycling StepLength = %v, want 0", got)
	}
}

func TestPace(t *testing.T) {
	// 5 minutes for 1 km = 5 min/km.
	if got := Pace(5*time.Minute, 1000); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("Pace(5m, 1000) = %v, want 5.0", got)
	}

	// 900 s for 2500 m = 6 min/km.
	if got := Pace(900*time.Second, 2500); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("Pace(900s, 2500) = %v, want 6.0", got)
	}
}

func TestPaceSentinel(t *testing.T) {
	if got := Pace(time.Minute, 0); !math.IsNaN(got) {
		t.Errorf("Pace with zero distance = %v, want NaN", got)
	}
	if got := Pace(0, 1000); !math.IsNaN(got) {
		t.Errorf("Pace with zero elapsed = %v, want NaN", got)
	}
	if got := Pace(time.Minute, math.Inf(1)); !math.IsNaN(got) {
		t.Errorf("Pace with infinite distance = %v, want NaN", got)
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		pace float64
		want string
	}{
		{5.0, "5:00 /km"},
		{5.5, "5:30 /km"},
		{math.NaN(), "--:-- /km"},
		{math.Inf(1), "--:-- /km"},
	}

	for _, tt := range tests {
		if got := FormatPace(tt.pace); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.pace, got, tt.want)
		}
	}
}
