package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/aggregate"
	"github.com/openstride/stride-go/pkg/clock"
	"github.com/openstride/stride-go/pkg/log"
	"github.com/openstride/stride-go/pkg/split"
	"github.com/openstride/stride-go/pkg/telemetry"
)

// AuthorizationGate answers whether sensor access has been granted.
// Checked once per Start; a denial leaves the controller Idle.
type AuthorizationGate interface {
	Authorized() bool
}

// Config configures a Controller.
type Config struct {
	// Activity selects the activity profile. Required.
	Activity activity.Type

	// Profile overrides the default profile for the activity. Nil uses
	// activity.DefaultProfile.
	Profile *activity.Profile

	// Gate is consulted on Start. Nil means always authorized.
	Gate AuthorizationGate

	// Logger receives session events. Nil disables logging.
	Logger log.Logger
}

// Controller is the session state machine. One mutex serializes lifecycle
// transitions, telemetry ingestion, and the recompute tick, so a
// transition is never interleaved with an in-flight tick.
//
// Lifecycle errors are informational. A failed Pause does not corrupt the
// session; the caller may ignore the error entirely.
type Controller struct {
	mu sync.Mutex

	actType activity.Type
	profile activity.Profile
	gate    AuthorizationGate
	logger  log.Logger

	state     State
	sessionID string

	clk     *clock.Clock
	agg     *aggregate.Aggregator
	tracker *split.Tracker

	invalidTransitions uint64

	observers *observerRegistry
}

// NewController creates a controller in the Idle state.
func NewController(cfg Config) *Controller {
	profile := activity.DefaultProfile(cfg.Activity)
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	return &Controller{
		actType:   cfg.Activity,
		profile:   profile,
		gate:      cfg.Gate,
		logger:    logger,
		state:     StateIdle,
		observers: newObserverRegistry(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the ID of the current or most recent session, empty
// before the first Start.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Activity returns the configured activity type.
func (c *Controller) Activity() activity.Type {
	return c.actType
}

// InvalidTransitionCount returns how many illegal lifecycle calls were
// soft-rejected.
func (c *Controller) InvalidTransitionCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidTransitions
}

// Subscribe registers an observer and returns its registration ID.
func (c *Controller) Subscribe(o Observer) uint64 {
	return c.observers.add(o)
}

// Unsubscribe removes an observer registration.
func (c *Controller) Unsubscribe(id uint64) {
	c.observers.remove(id)
}

// Start begins a new session: fresh clock, aggregator, and split tracker,
// a new session ID, and the Idle to Active transition. The authorization
// gate is consulted first; a denial returns ErrNotAuthorized and leaves
// the controller Idle.
func (c *Controller) Start(now time.Time) error {
	c.mu.Lock()

	if c.state != StateIdle {
		ev := c.rejectTransitionLocked(now, "start")
		c.mu.Unlock()
		c.logger.Log(ev)
		return ErrInvalidTransition
	}

	if c.gate != nil && !c.gate.Authorized() {
		c.mu.Unlock()
		return ErrNotAuthorized
	}

	c.sessionID = uuid.NewString()
	c.clk = clock.New()
	c.agg = aggregate.New(aggregate.Config{
		Profile:   c.profile,
		Activity:  c.actType,
		SessionID: c.sessionID,
		Logger:    c.logger,
	})
	c.tracker = split.NewTracker(c.profile.SplitDistance)

	c.clk.Start(now)
	from := c.state
	c.state = StateActive

	ev := c.transitionEventLocked(now, from, c.state)
	c.mu.Unlock()

	c.logger.Log(ev)
	c.notifyStateChange(from, StateActive)
	return nil
}

// Pause freezes the session. Elapsed active time and metrics stay
// constant until Resume. Only legal while Active.
func (c *Controller) Pause(now time.Time) error {
	c.mu.Lock()

	if c.state != StateActive {
		ev := c.rejectTransitionLocked(now, "pause")
		c.mu.Unlock()
		c.logger.Log(ev)
		return ErrInvalidTransition
	}

	c.clk.Pause(now)
	c.agg.SetPaused(true)
	from := c.state
	c.state = StatePaused

	ev := c.transitionEventLocked(now, from, c.state)
	c.mu.Unlock()

	c.logger.Log(ev)
	c.notifyStateChange(from, StatePaused)
	return nil
}

// Resume continues a paused session. Only legal while Paused.
func (c *Controller) Resume(now time.Time) error {
	c.mu.Lock()

	if c.state != StatePaused {
		ev := c.rejectTransitionLocked(now, "resume")
		c.mu.Unlock()
		c.logger.Log(ev)
		return ErrInvalidTransition
	}

	c.clk.Resume(now)
	c.agg.SetPaused(false)
	from := c.state
	c.state = StateActive

	ev := c.transitionEventLocked(now, from, c.state)
	c.mu.Unlock()

	c.logger.Log(ev)
	c.notifyStateChange(from, StateActive)
	return nil
}

// End finalizes the session from Active or Paused and returns the
// immutable WorkoutRecord. From Idle or Ended it returns ErrNoSession.
func (c *Controller) End(now time.Time) (*WorkoutRecord, error) {
	c.mu.Lock()

	if c.state != StateActive && c.state != StatePaused {
		c.mu.Unlock()
		return nil, ErrNoSession
	}

	elapsed := c.clk.ElapsedActive(now)
	snap := c.agg.Snapshot()

	// Close any split boundary the final distance crossed, then capture
	// the trailing partial split.
	c.tracker.Update(snap.Metrics.Distance, elapsed)
	completed := c.tracker.Completed()
	current := c.tracker.Current()

	record := &WorkoutRecord{
		ID:             uuid.NewString(),
		SessionID:      c.sessionID,
		Activity:       c.actType.String(),
		StartedAt:      c.clk.SessionStart(),
		EndedAt:        now,
		Duration:       elapsed,
		PausedDuration: c.clk.AccumulatedPause(),
		Distance:       snap.Metrics.Distance,
		AveragePace:    finitePace(activity.Pace(elapsed, snap.Metrics.Distance)),
		Calories:       snap.Metrics.Calories,
		Steps:          snap.Metrics.Steps,
		HeartRate: HeartRateSummary{
			Min:     snap.Metrics.HeartRate.Min,
			Max:     snap.Metrics.HeartRate.Max,
			Avg:     snap.Metrics.HeartRate.Avg,
			Samples: snap.Metrics.HeartRate.Samples,
		},
		ElevationGain: snap.Metrics.ElevationGain,
		ElevationLoss: snap.Metrics.ElevationLoss,
		Splits:        recordSplits(completed, current),
		Route:         recordRoute(c.agg.Route()),
		Diagnostics: RecordDiagnostics{
			RejectedFixes:          snap.Diagnostics.RejectedFixes,
			ClampedFixes:           snap.Diagnostics.ClampedFixes,
			RejectedBiometrics:     snap.Diagnostics.RejectedBiometrics,
			ClampedCalories:        snap.Diagnostics.ClampedCalories,
			ClampedSteps:           snap.Diagnostics.ClampedSteps,
			FallbackDistanceEvents: snap.Diagnostics.FallbackDistanceEvents,
			ClockInconsistencies:   c.clk.InconsistencyCount(),
			InvalidTransitions:     c.invalidTransitions,
		},
	}

	c.agg.SetPaused(true)
	from := c.state
	c.state = StateEnded

	stateEv := c.transitionEventLocked(now, from, c.state)
	recordEv := log.Event{
		Timestamp: now,
		SessionID: c.sessionID,
		Category:  log.CategoryRecord,
		Activity:  c.actType.String(),
		Record: &log.RecordEvent{
			RecordID: record.ID,
			Duration: record.Duration,
			Distance: record.Distance,
			Splits:   len(completed),
		},
	}
	c.mu.Unlock()

	c.logger.Log(stateEv)
	c.logger.Log(recordEv)
	c.notifyStateChange(from, StateEnded)
	return record, nil
}

// Cancel discards the session from any state and returns to Idle. It
// produces no record and never fails; cancelling while Idle is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()

	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}

	from := c.state
	c.state = StateIdle
	c.clk = nil
	c.agg = nil
	c.tracker = nil

	ev := c.transitionEventLocked(time.Now(), from, StateIdle)
	c.mu.Unlock()

	c.logger.Log(ev)
	c.notifyStateChange(from, StateIdle)
}

// Ingest forwards one telemetry sample to the aggregator. Samples are
// consumed only while Active; everything else drops them silently.
func (c *Controller) Ingest(sample telemetry.Sample) {
	c.mu.Lock()
	agg := c.agg
	active := c.state == StateActive
	c.mu.Unlock()

	if !active || agg == nil {
		return
	}
	agg.Ingest(sample)
}

// Tick recomputes derived state: it pulls the clock and aggregator
// snapshots, feeds the split tracker, and republishes live metrics to
// observers. O(1) in telemetry volume; a no-op outside Active.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()

	if c.state != StateActive {
		c.mu.Unlock()
		return
	}

	elapsed := c.clk.ElapsedActive(now)
	snap := c.agg.Snapshot()
	closed := c.tracker.Update(snap.Metrics.Distance, elapsed)

	metrics := LiveMetrics{
		SessionID:       c.sessionID,
		Activity:        c.actType,
		State:           c.state,
		ElapsedActive:   elapsed,
		Distance:        snap.Metrics.Distance,
		Pace:            activity.Pace(elapsed, snap.Metrics.Distance),
		HeartRate:       snap.Metrics.HeartRate.Latest,
		Calories:        snap.Metrics.Calories,
		CompletedSplits: c.tracker.CompletedCount(),
		CurrentSplit:    c.tracker.Current(),
	}

	sessionID := c.sessionID
	actName := c.actType.String()
	c.mu.Unlock()

	for _, s := range closed {
		c.logger.Log(log.Event{
			Timestamp: now,
			SessionID: sessionID,
			Category:  log.CategorySplit,
			Activity:  actName,
			Split: &log.SplitEvent{
				Index:    s.Index,
				Distance: s.Distance,
				Elapsed:  s.Elapsed,
				Pace:     finitePace(s.Pace),
			},
		})
	}
	c.logger.Log(log.Event{
		Timestamp: now,
		SessionID: sessionID,
		Category:  log.CategoryMetrics,
		Activity:  actName,
		Metrics: &log.MetricsEvent{
			Elapsed:   elapsed,
			Distance:  snap.Metrics.Distance,
			HeartRate: snap.Metrics.HeartRate.Latest,
		},
	})

	observers := c.observers.snapshot()
	for _, o := range observers {
		for _, s := range closed {
			o.HandleSplitCompleted(s)
		}
		o.HandleLiveMetrics(metrics)
	}
}

// ElapsedActive returns the current elapsed active time, zero while Idle.
func (c *Controller) ElapsedActive(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clk == nil {
		return 0
	}
	return c.clk.ElapsedActive(now)
}

// Snapshot returns the current aggregator snapshot, zero while Idle.
func (c *Controller) Snapshot() aggregate.Snapshot {
	c.mu.Lock()
	agg := c.agg
	c.mu.Unlock()

	if agg == nil {
		return aggregate.Snapshot{}
	}
	return agg.Snapshot()
}

// CompletedSplits returns the closed splits of the current session.
func (c *Controller) CompletedSplits() []split.Split {
	c.mu.Lock()
	tracker := c.tracker
	c.mu.Unlock()

	if tracker == nil {
		return nil
	}
	return tracker.Completed()
}

// rejectTransitionLocked counts a soft-rejected lifecycle call and builds
// its log event. Caller holds the lock.
func (c *Controller) rejectTransitionLocked(now time.Time, op string) log.Event {
	c.invalidTransitions++
	return log.Event{
		Timestamp: now,
		SessionID: c.sessionID,
		Category:  log.CategoryState,
		Activity:  c.actType.String(),
		State: &log.StateChangeEvent{
			From:     c.state.String(),
			To:       c.state.String(),
			Accepted: false,
			Reason:   op + " not legal from " + c.state.String(),
		},
	}
}

// transitionEventLocked builds the log event for an accepted transition.
// Caller holds the lock.
func (c *Controller) transitionEventLocked(now time.Time, from, to State) log.Event {
	return log.Event{
		Timestamp: now,
		SessionID: c.sessionID,
		Category:  log.CategoryState,
		Activity:  c.actType.String(),
		State: &log.StateChangeEvent{
			From:     from.String(),
			To:       to.String(),
			Accepted: true,
		},
	}
}

func (c *Controller) notifyStateChange(from, to State) {
	for _, o := range c.observers.snapshot() {
		o.HandleStateChange(from, to)
	}
}
