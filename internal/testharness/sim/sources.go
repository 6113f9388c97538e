// Package sim provides deterministic scripted telemetry sources for
// integration tests and the interactive simulator.
package sim

import (
	"sync"
	"time"

	"github.com/openstride/stride-go/pkg/geo"
	"github.com/openstride/stride-go/pkg/telemetry"
)

// RouteConfig describes a constant-speed leg along a fixed bearing.
type RouteConfig struct {
	// Origin is the first fix position.
	Origin geo.Point

	// BearingDeg is the travel bearing in degrees.
	BearingDeg float64

	// Speed is the ground speed in m/s.
	Speed float64

	// Interval is the fix cadence.
	Interval time.Duration

	// Altitude is the starting altitude; ClimbRate is the vertical speed
	// in m/s (negative for descent).
	Altitude  float64
	ClimbRate float64

	// Accuracy is the reported horizontal accuracy per fix.
	Accuracy float64
}

// Route generates count position samples starting at start, advancing
// position and altitude per the config. Deterministic; no clocks.
func Route(cfg RouteConfig, start time.Time, count int) []telemetry.Sample {
	point := cfg.Origin
	altitude := cfg.Altitude
	stepDist := cfg.Speed * cfg.Interval.Seconds()
	stepClimb := cfg.ClimbRate * cfg.Interval.Seconds()

	out := make([]telemetry.Sample, 0, count)
	ts := start
	for i := 0; i < count; i++ {
		out = append(out, telemetry.NewPositionSample(ts, telemetry.PositionReading{
			Lat:                point.Lat,
			Lon:                point.Lon,
			Altitude:           altitude,
			HorizontalAccuracy: cfg.Accuracy,
		}))
		point = geo.Destination(point, cfg.BearingDeg, stepDist)
		altitude += stepClimb
		ts = ts.Add(cfg.Interval)
	}
	return out
}

// BiometricConfig describes a scripted biometric stream with cumulative
// step and calorie counters.
type BiometricConfig struct {
	// HeartRateBase is the first reading; HeartRateRamp is added per
	// sample (0 for a flat series).
	HeartRateBase float64
	HeartRateRamp float64

	// StepRate is steps per second; CalorieRate is kcal per minute. The
	// generated counters are cumulative, as a real pedometer reports.
	StepRate    float64
	CalorieRate float64

	// Interval is the reading cadence.
	Interval time.Duration
}

// Biometrics generates count biometric samples starting at start.
func Biometrics(cfg BiometricConfig, start time.Time, count int) []telemetry.Sample {
	out := make([]telemetry.Sample, 0, count)
	ts := start
	for i := 0; i < count; i++ {
		elapsed := time.Duration(i) * cfg.Interval

		hr := cfg.HeartRateBase + float64(i)*cfg.HeartRateRamp
		steps := uint64(cfg.StepRate * elapsed.Seconds())
		calories := cfg.CalorieRate * elapsed.Minutes()

		out = append(out, telemetry.NewBiometricSample(ts, telemetry.BiometricReading{
			HeartRate: &hr,
			Steps:     &steps,
			Calories:  &calories,
		}))
		ts = ts.Add(cfg.Interval)
	}
	return out
}

// StreamSource replays a generator function on a real-time ticker. It
// implements telemetry.Source for the interactive simulator.
type StreamSource struct {
	ch       chan telemetry.Sample
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStreamSource starts a source emitting next(i, now) every interval
// until Stop. next returning false ends the stream early.
func NewStreamSource(interval time.Duration, next func(i int, now time.Time) (telemetry.Sample, bool)) *StreamSource {
	s := &StreamSource{
		ch:   make(chan telemetry.Sample, 16),
		stop: make(chan struct{}),
	}

	go func() {
		defer close(s.ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				sample, ok := next(i, now)
				if !ok {
					return
				}
				select {
				case s.ch <- sample:
				case <-s.stop:
					return
				default:
					// Consumer is behind; drop rather than stall the ticker.
				}
			}
		}
	}()

	return s
}

// Samples returns the sample channel; closed after Stop.
func (s *StreamSource) Samples() <-chan telemetry.Sample {
	return s.ch
}

// Stop ends the stream. Safe to call more than once.
func (s *StreamSource) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// NewRouteStream is a real-time RouteConfig player.
func NewRouteStream(cfg RouteConfig) *StreamSource {
	point := cfg.Origin
	altitude := cfg.Altitude
	stepDist := cfg.Speed * cfg.Interval.Seconds()
	stepClimb := cfg.ClimbRate * cfg.Interval.Seconds()

	return NewStreamSource(cfg.Interval, func(i int, now time.Time) (telemetry.Sample, bool) {
		sample := telemetry.NewPositionSample(now, telemetry.PositionReading{
			Lat:                point.Lat,
			Lon:                point.Lon,
			Altitude:           altitude,
			HorizontalAccuracy: cfg.Accuracy,
		})
		point = geo.Destination(point, cfg.BearingDeg, stepDist)
		altitude += stepClimb
		return sample, true
	})
}

// NewBiometricStream is a real-time BiometricConfig player.
func NewBiometricStream(cfg BiometricConfig) *StreamSource {
	return NewStreamSource(cfg.Interval, func(i int, now time.Time) (telemetry.Sample, bool) {
		elapsed := time.Duration(i) * cfg.Interval

		hr := cfg.HeartRateBase + float64(i)*cfg.HeartRateRamp
		steps := uint64(cfg.StepRate * elapsed.Seconds())
		calories := cfg.CalorieRate * elapsed.Minutes()

		return telemetry.NewBiometricSample(now, telemetry.BiometricReading{
			HeartRate: &hr,
			Steps:     &steps,
			Calories:  &calories,
		}), true
	})
}
