package aggregate

import (
	"math"
	"sync"
	"time"

	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/geo"
	"github.com/openstride/stride-go/pkg/log"
	"github.com/openstride/stride-go/pkg/telemetry"
	"github.com/openstride/stride-go/pkg/validate"
)

// MaxHorizontalAccuracy is the worst fix accuracy in meters still usable
// for distance accounting. Fixes above it are rejected outright.
const MaxHorizontalAccuracy = 50.0

// RoutePoint is one accepted position fix on the session route.
type RoutePoint struct {
	Point    geo.Point
	Altitude float64
	Time     time.Time
}

// HeartRateStats summarizes accepted heart-rate readings.
type HeartRateStats struct {
	// Latest is the most recent accepted reading in bpm, 0 before any.
	Latest float64
	Min    float64
	Max    float64
	Avg    float64

	// Samples is the number of accepted readings.
	Samples uint64
}

// Metrics is the cumulative metric set. All fields except heart rate are
// monotonically non-decreasing for the lifetime of a session.
type Metrics struct {
	// Distance is cumulative distance in meters.
	Distance float64

	// ElevationGain and ElevationLoss are cumulative meters climbed and
	// descended (both non-negative).
	ElevationGain float64
	ElevationLoss float64

	// Steps is the cumulative accepted step count.
	Steps uint64

	// Calories is cumulative active energy in kcal.
	Calories float64

	// HeartRate summarizes accepted heart-rate readings.
	HeartRate HeartRateStats
}

// Diagnostics counts telemetry anomalies resolved locally by clamping or
// rejection. None of these abort a session; they exist for diagnosis only.
type Diagnostics struct {
	RejectedFixes      uint64
	ClampedFixes       uint64
	RejectedBiometrics uint64
	ClampedCalories    uint64
	ClampedSteps       uint64

	// FallbackDistanceEvents counts step-derived distance contributions
	// made while the position stream was stale.
	FallbackDistanceEvents uint64
}

// Snapshot is a point-in-time copy of the aggregator state. The route is
// deliberately excluded to keep Snapshot O(1); use Route for the full
// track at finalization.
type Snapshot struct {
	Metrics     Metrics
	Diagnostics Diagnostics

	// LastFixAt is the timestamp of the last accepted position fix.
	LastFixAt time.Time

	// RouteLen is the number of recorded route points.
	RouteLen int
}

// Aggregator consumes validated telemetry samples into cumulative metrics.
// All mutation funnels through Ingest, guarded by one mutex, so samples
// from independently scheduled position and biometric streams never
// interleave inconsistently.
type Aggregator struct {
	mu sync.Mutex

	profile   activity.Profile
	actType   activity.Type
	sessionID string
	logger    log.Logger

	paused bool

	metrics Metrics
	diag    Diagnostics

	// hrSum backs the running average.
	hrSum float64

	// Position reference for incremental distance.
	hasFix    bool
	lastPoint geo.Point
	lastFixAt time.Time

	// Elevation reference. Updated only when a delta crosses the noise
	// threshold, which filters altitude jitter accumulating into fake
	// gain.
	hasAlt  bool
	lastAlt float64

	route []RoutePoint

	// Raw cumulative counters as reported by the biometric stream.
	hasRawSteps    bool
	lastRawSteps   uint64
	stepsDistance  float64 // metrics.Distance at the last step sample
	hasRawCalories bool
	lastRawCal     float64
	lastCalAt      time.Time
}

// Config configures an Aggregator.
type Config struct {
	// Profile supplies the plausibility bounds. Required.
	Profile activity.Profile

	// Activity is used for log event annotation.
	Activity activity.Type

	// SessionID annotates log events. Optional.
	SessionID string

	// Logger receives anomaly events. Nil disables logging.
	Logger log.Logger
}

// New creates an aggregator.
func New(cfg Config) *Aggregator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Aggregator{
		profile:   cfg.Profile,
		actType:   cfg.Activity,
		sessionID: cfg.SessionID,
		logger:    logger,
	}
}

// Reset discards all accumulated state, keeping the configuration.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.paused = false
	a.metrics = Metrics{}
	a.diag = Diagnostics{}
	a.hrSum = 0
	a.hasFix = false
	a.lastPoint = geo.Point{}
	a.lastFixAt = time.Time{}
	a.hasAlt = false
	a.lastAlt = 0
	a.route = nil
	a.hasRawSteps = false
	a.lastRawSteps = 0
	a.stepsDistance = 0
	a.hasRawCalories = false
	a.lastRawCal = 0
	a.lastCalAt = time.Time{}
}

// SetPaused controls whether samples are consumed. While paused every
// sample is dropped; metrics stay frozen.
func (a *Aggregator) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = paused

	if !paused {
		// Force a fresh position reference after resume so the distance
		// covered while paused is not credited in one jump.
		a.hasFix = false
	}
}

// Ingest consumes one telemetry sample. This is the single entry point for
// both streams. Anomalies are clamped or dropped locally and counted;
// Ingest never fails.
func (a *Aggregator) Ingest(sample telemetry.Sample) {
	a.mu.Lock()

	if a.paused {
		a.mu.Unlock()
		return
	}

	var anomalies []log.AnomalyEvent
	switch sample.Kind {
	case telemetry.KindPosition:
		if sample.Position != nil {
			anomalies = a.ingestPosition(sample.Timestamp, *sample.Position)
		}
	case telemetry.KindBiometric:
		if sample.Biometric != nil {
			anomalies = a.ingestBiometric(sample.Timestamp, *sample.Biometric)
		}
	}

	logger := a.logger
	sessionID := a.sessionID
	actName := a.actType.String()
	a.mu.Unlock()

	// Log outside the lock; a slow logger must not stall the streams.
	for _, anomaly := range anomalies {
		ev := anomaly
		logger.Log(log.Event{
			Timestamp: sample.Timestamp,
			SessionID: sessionID,
			Category:  log.CategoryAnomaly,
			Activity:  actName,
			Anomaly:   &ev,
		})
	}
}

// ingestPosition handles one fix. Caller holds the lock.
func (a *Aggregator) ingestPosition(ts time.Time, fix telemetry.PositionReading) []log.AnomalyEvent {
	var anomalies []log.AnomalyEvent

	if fix.HorizontalAccuracy > MaxHorizontalAccuracy {
		a.diag.RejectedFixes++
		return append(anomalies, log.AnomalyEvent{
			Metric:    "position",
			Verdict:   validate.VerdictReject.String(),
			Candidate: fix.HorizontalAccuracy,
			Reason:    "horizontal accuracy above limit",
		})
	}

	point := geo.Point{Lat: fix.Lat, Lon: fix.Lon}

	switch {
	case !a.hasFix:
		// First fix establishes the reference only.
		a.hasFix = true
	case !ts.After(a.lastFixAt):
		// Out-of-order or duplicate timestamp.
		a.diag.RejectedFixes++
		return append(anomalies, log.AnomalyEvent{
			Metric:  "position",
			Verdict: validate.VerdictReject.String(),
			Reason:  "non-monotonic fix timestamp",
		})
	case ts.Sub(a.lastFixAt) > a.profile.StalenessWindow:
		// The primary source was silent past the staleness window; the
		// step fallback may have covered this span. Re-anchor without
		// crediting the gap, so the two sources are never summed.
		a.diag.RejectedFixes++
		anomalies = append(anomalies, log.AnomalyEvent{
			Metric:    "distance",
			Verdict:   validate.VerdictReject.String(),
			Candidate: geo.Distance(a.lastPoint, point),
			Reason:    "gap beyond staleness window, reference reset",
		})
	default:
		interval := ts.Sub(a.lastFixAt)
		dist := geo.Distance(a.lastPoint, point)
		res := validate.Distance(dist, interval, a.profile)
		switch res.Verdict {
		case validate.VerdictAccept:
			a.metrics.Distance += res.Value
		case validate.VerdictClamp:
			a.metrics.Distance += res.Value
			a.diag.ClampedFixes++
			anomalies = append(anomalies, log.AnomalyEvent{
				Metric:    "distance",
				Verdict:   res.Verdict.String(),
				Candidate: dist,
				Applied:   res.Value,
				Reason:    res.Reason,
			})
		case validate.VerdictReject:
			a.diag.RejectedFixes++
			anomalies = append(anomalies, log.AnomalyEvent{
				Metric:    "distance",
				Verdict:   res.Verdict.String(),
				Candidate: dist,
				Reason:    res.Reason,
			})
		}
	}

	a.lastPoint = point
	a.lastFixAt = ts
	a.route = append(a.route, RoutePoint{Point: point, Altitude: fix.Altitude, Time: ts})

	// Elevation accounting with a noise threshold.
	if !a.hasAlt {
		a.hasAlt = true
		a.lastAlt = fix.Altitude
	} else {
		delta := fix.Altitude - a.lastAlt
		if math.Abs(delta) >= activity.ElevationNoiseThreshold {
			if delta > 0 {
				a.metrics.ElevationGain += delta
			} else {
				a.metrics.ElevationLoss += -delta
			}
			a.lastAlt = fix.Altitude
		}
	}

	return anomalies
}

// ingestBiometric handles one biometric reading. Caller holds the lock.
func (a *Aggregator) ingestBiometric(ts time.Time, bio telemetry.BiometricReading) []log.AnomalyEvent {
	var anomalies []log.AnomalyEvent

	if bio.HeartRate != nil {
		res := validate.HeartRate(*bio.HeartRate)
		if res.Verdict == validate.VerdictAccept {
			hr := &a.metrics.HeartRate
			hr.Latest = res.Value
			if hr.Samples == 0 || res.Value < hr.Min {
				hr.Min = res.Value
			}
			if res.Value > hr.Max {
				hr.Max = res.Value
			}
			hr.Samples++
			a.hrSum += res.Value
			hr.Avg = a.hrSum / float64(hr.Samples)
		} else {
			a.diag.RejectedBiometrics++
			anomalies = append(anomalies, log.AnomalyEvent{
				Metric:    "heartRate",
				Verdict:   res.Verdict.String(),
				Candidate: *bio.HeartRate,
				Reason:    res.Reason,
			})
		}
	}

	if bio.Steps != nil {
		anomalies = append(anomalies, a.ingestSteps(ts, *bio.Steps)...)
	}

	if bio.Calories != nil {
		anomalies = append(anomalies, a.ingestCalories(ts, *bio.Calories)...)
	}

	return anomalies
}

func (a *Aggregator) ingestSteps(ts time.Time, raw uint64) []log.AnomalyEvent {
	var anomalies []log.AnomalyEvent

	if !a.hasRawSteps {
		a.hasRawSteps = true
		a.lastRawSteps = raw
		a.stepsDistance = a.metrics.Distance
		return nil
	}

	if raw < a.lastRawSteps {
		// Cumulative counter went backwards; re-anchor.
		a.diag.RejectedBiometrics++
		a.lastRawSteps = raw
		a.stepsDistance = a.metrics.Distance
		return append(anomalies, log.AnomalyEvent{
			Metric:    "steps",
			Verdict:   validate.VerdictReject.String(),
			Candidate: float64(raw),
			Reason:    "cumulative step count decreased",
		})
	}

	delta := float64(raw - a.lastRawSteps)
	coveredSincePrev := a.metrics.Distance - a.stepsDistance

	res := validate.Steps(delta, coveredSincePrev, a.profile)
	switch res.Verdict {
	case validate.VerdictAccept, validate.VerdictClamp:
		accepted := uint64(res.Value)
		a.metrics.Steps += accepted
		if res.Verdict == validate.VerdictClamp {
			a.diag.ClampedSteps++
			anomalies = append(anomalies, log.AnomalyEvent{
				Metric:    "steps",
				Verdict:   res.Verdict.String(),
				Candidate: delta,
				Applied:   res.Value,
				Reason:    res.Reason,
			})
		}

		// Fallback distance source: step-derived estimate, used only
		// while the primary position stream is stale. Never added on
		// top of position-derived distance.
		stale := !a.hasFix || ts.Sub(a.lastFixAt) > a.profile.StalenessWindow
		if stale && a.profile.StepLength > 0 && accepted > 0 {
			a.metrics.Distance += float64(accepted) * a.profile.StepLength
			a.diag.FallbackDistanceEvents++
		}
	case validate.VerdictReject:
		a.diag.RejectedBiometrics++
		anomalies = append(anomalies, log.AnomalyEvent{
			Metric:    "steps",
			Verdict:   res.Verdict.String(),
			Candidate: delta,
			Reason:    res.Reason,
		})
	}

	a.lastRawSteps = raw
	a.stepsDistance = a.metrics.Distance
	return anomalies
}

func (a *Aggregator) ingestCalories(ts time.Time, raw float64) []log.AnomalyEvent {
	var anomalies []log.AnomalyEvent

	if !a.hasRawCalories {
		if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 {
			a.diag.RejectedBiometrics++
			return append(anomalies, log.AnomalyEvent{
				Metric:    "calories",
				Verdict:   validate.VerdictReject.String(),
				Candidate: raw,
				Reason:    "unusable initial calorie value",
			})
		}
		a.hasRawCalories = true
		a.lastRawCal = raw
		a.lastCalAt = ts
		return nil
	}

	delta := raw - a.lastRawCal
	res := validate.Calories(delta, ts.Sub(a.lastCalAt), a.profile)
	switch res.Verdict {
	case validate.VerdictAccept:
		a.metrics.Calories += res.Value
	case validate.VerdictClamp:
		a.metrics.Calories += res.Value
		a.diag.ClampedCalories++
		anomalies = append(anomalies, log.AnomalyEvent{
			Metric:    "calories",
			Verdict:   res.Verdict.String(),
			Candidate: delta,
			Applied:   res.Value,
			Reason:    res.Reason,
		})
	case validate.VerdictReject:
		a.diag.RejectedBiometrics++
		anomalies = append(anomalies, log.AnomalyEvent{
			Metric:    "calories",
			Verdict:   res.Verdict.String(),
			Candidate: delta,
			Reason:    res.Reason,
		})
	}

	a.lastRawCal = raw
	a.lastCalAt = ts
	return anomalies
}

// Snapshot returns a copy of the current cumulative state. O(1): the route
// is excluded (see Route).
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Snapshot{
		Metrics:     a.metrics,
		Diagnostics: a.diag,
		LastFixAt:   a.lastFixAt,
		RouteLen:    len(a.route),
	}
}

// Route returns a copy of the accepted position fixes in order. Intended
// for finalization, not for per-tick use.
func (a *Aggregator) Route() []RoutePoint {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]RoutePoint, len(a.route))
	copy(out, a.route)
	return out
}
