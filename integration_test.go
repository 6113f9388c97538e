package stride_test

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/openstride/stride-go/internal/testharness/sim"
	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/geo"
	"github.com/openstride/stride-go/pkg/log"
	"github.com/openstride/stride-go/pkg/persistence"
	"github.com/openstride/stride-go/pkg/session"
	"github.com/openstride/stride-go/pkg/telemetry"
)

var (
	integrationStart  = time.Date(2026, 5, 14, 8, 0, 0, 0, time.UTC)
	integrationOrigin = geo.Point{Lat: 52.520008, Lon: 13.404954}
)

// TestFullSession drives a complete scripted run: start, telemetry from
// both streams, ticks at a fixed cadence, a pause in the middle, end,
// and persistence of the resulting record plus the CBOR event log.
func TestFullSession(t *testing.T) {
	dir := t.TempDir()
	eventLogPath := filepath.Join(dir, "events.cbor")

	fileLogger, err := log.NewFileLogger(eventLogPath)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctrl := session.NewController(session.Config{
		Activity: activity.TypeRunning,
		Logger:   fileLogger,
	})
	store := persistence.NewRecordStore(filepath.Join(dir, "records"))

	if err := ctrl.Start(integrationStart); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Phase 1: 10 minutes at 3 m/s with biometrics, ticking every 10 s.
	route := sim.Route(sim.RouteConfig{
		Origin:     integrationOrigin,
		BearingDeg: 90,
		Speed:      3,
		Interval:   time.Second,
		Altitude:   34,
		Accuracy:   5,
	}, integrationStart, 601)
	bio := sim.Biometrics(sim.BiometricConfig{
		HeartRateBase: 130,
		HeartRateRamp: 0.1,
		StepRate:      2.8,
		CalorieRate:   12,
		Interval:      10 * time.Second,
	}, integrationStart, 61)

	feed(ctrl, route, bio, integrationStart, 10*time.Second)

	phase1End := integrationStart.Add(600 * time.Second)
	if got := ctrl.ElapsedActive(phase1End); got != 600*time.Second {
		t.Errorf("ElapsedActive = %v, want 10m0s", got)
	}

	// Pause for 2 minutes. Elapsed freezes; samples are dropped.
	if err := ctrl.Pause(phase1End); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	frozen := ctrl.ElapsedActive(phase1End.Add(90 * time.Second))
	if frozen != 600*time.Second {
		t.Errorf("ElapsedActive while paused = %v, want 10m0s", frozen)
	}
	distBefore := ctrl.Snapshot().Metrics.Distance
	hr := 140.0
	ctrl.Ingest(telemetry.NewBiometricSample(phase1End.Add(time.Minute), telemetry.BiometricReading{HeartRate: &hr}))
	if got := ctrl.Snapshot().Metrics.Distance; got != distBefore {
		t.Errorf("Distance changed while paused: %v -> %v", distBefore, got)
	}

	resumeAt := phase1End.Add(2 * time.Minute)
	if err := ctrl.Resume(resumeAt); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}

	// Phase 2: 5 more minutes from where the runner actually is.
	phase2Origin := geo.Destination(integrationOrigin, 90, 1800)
	route2 := sim.Route(sim.RouteConfig{
		Origin:     phase2Origin,
		BearingDeg: 90,
		Speed:      3,
		Interval:   time.Second,
		Altitude:   34,
		Accuracy:   5,
	}, resumeAt, 301)
	feed(ctrl, route2, nil, resumeAt, 10*time.Second)

	endAt := resumeAt.Add(300 * time.Second)
	record, err := ctrl.End(endAt)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}

	// 15 minutes active, 2 minutes paused, ~2.7 km.
	if record.Duration != 900*time.Second {
		t.Errorf("Duration = %v, want 15m0s", record.Duration)
	}
	if record.PausedDuration != 2*time.Minute {
		t.Errorf("PausedDuration = %v, want 2m0s", record.PausedDuration)
	}
	if math.Abs(record.Distance-2700) > 10 {
		t.Errorf("Distance = %v, want ~2700", record.Distance)
	}
	if len(record.Splits) != 3 {
		t.Fatalf("len(Splits) = %v, want 3 (2 full + partial)", len(record.Splits))
	}
	if !record.Splits[0].Completed || !record.Splits[1].Completed || record.Splits[2].Completed {
		t.Errorf("split completion flags wrong: %+v", record.Splits)
	}
	if record.HeartRate.Samples == 0 {
		t.Error("no heart-rate samples recorded")
	}
	if record.Steps == 0 {
		t.Error("no steps recorded")
	}
	if record.Calories == 0 {
		t.Error("no calories recorded")
	}

	// Persist and reload.
	if err := store.Save(record); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load(record.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil || loaded.Duration != record.Duration || loaded.Distance != record.Distance {
		t.Errorf("reloaded record differs: %+v", loaded)
	}

	// The event log holds the full session history.
	if err := fileLogger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	events, err := log.ReadFile(eventLogPath, log.Filter{})
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	counts := map[log.Category]int{}
	for _, ev := range events {
		counts[ev.Category]++
		if ev.SessionID != ctrl.SessionID() {
			t.Errorf("event SessionID = %v, want %v", ev.SessionID, ctrl.SessionID())
		}
	}
	// start, pause, resume, end.
	if counts[log.CategoryState] != 4 {
		t.Errorf("state events = %v, want 4", counts[log.CategoryState])
	}
	if counts[log.CategorySplit] != 2 {
		t.Errorf("split events = %v, want 2", counts[log.CategorySplit])
	}
	if counts[log.CategoryRecord] != 1 {
		t.Errorf("record events = %v, want 1", counts[log.CategoryRecord])
	}
	if counts[log.CategoryMetrics] == 0 {
		t.Error("no metrics events logged")
	}
}

// TestImplausibleTelemetry verifies a GPS jump is clamped, not dropped,
// and shows up in the record's diagnostics.
func TestImplausibleTelemetry(t *testing.T) {
	ctrl := session.NewController(session.Config{Activity: activity.TypeRunning})

	if err := ctrl.Start(integrationStart); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctrl.Ingest(telemetry.NewPositionSample(integrationStart, telemetry.PositionReading{
		Lat: integrationOrigin.Lat, Lon: integrationOrigin.Lon, HorizontalAccuracy: 5,
	}))

	// 500 m in 10 s is 50 m/s; the running ceiling is 10 m/s.
	jump := geo.Destination(integrationOrigin, 90, 500)
	ctrl.Ingest(telemetry.NewPositionSample(integrationStart.Add(10*time.Second), telemetry.PositionReading{
		Lat: jump.Lat, Lon: jump.Lon, HorizontalAccuracy: 5,
	}))

	record, err := ctrl.End(integrationStart.Add(10 * time.Second))
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if math.Abs(record.Distance-100) > 0.5 {
		t.Errorf("Distance = %v, want ~100 (clamped to ceiling)", record.Distance)
	}
	if record.Diagnostics.ClampedFixes != 1 {
		t.Errorf("ClampedFixes = %v, want 1", record.Diagnostics.ClampedFixes)
	}
}

// feed ingests two pre-generated sample streams in timestamp order and
// calls Tick at the given cadence, simulating the external ticker.
func feed(ctrl *session.Controller, route, bio []telemetry.Sample, start time.Time, tick time.Duration) {
	nextTick := start.Add(tick)
	i, j := 0, 0
	for i < len(route) || j < len(bio) {
		var next telemetry.Sample
		switch {
		case j >= len(bio) || (i < len(route) && !route[i].Timestamp.After(bio[j].Timestamp)):
			next = route[i]
			i++
		default:
			next = bio[j]
			j++
		}
		for !nextTick.After(next.Timestamp) {
			ctrl.Tick(nextTick)
			nextTick = nextTick.Add(tick)
		}
		ctrl.Ingest(next)
	}
	ctrl.Tick(nextTick)
}
