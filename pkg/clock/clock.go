package clock

import (
	"sync"
	"time"
)

// Clock tracks the active/paused wall-clock intervals of one session and
// computes the elapsed active duration. All methods take the current time
// explicitly so timers, event loops, and tests can drive the clock
// deterministically.
//
// Clock is safe for concurrent use.
type Clock struct {
	mu sync.RWMutex

	started      bool
	sessionStart time.Time

	paused     bool
	pauseStart time.Time

	// accumulatedPause is the sum of all completed pause intervals.
	accumulatedPause time.Duration

	// inconsistencies counts observations of a now earlier than
	// sessionStart, which are clamped to zero elapsed.
	inconsistencies uint64
}

// New returns an unstarted clock.
func New() *Clock {
	return &Clock{}
}

// Start begins time accounting at now. Restarting a running clock resets
// all accumulated state.
func (c *Clock) Start(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = true
	c.sessionStart = now
	c.paused = false
	c.pauseStart = time.Time{}
	c.accumulatedPause = 0
	c.inconsistencies = 0
}

// Pause freezes elapsed accounting at now. A no-op if the clock is not
// started or already paused.
func (c *Clock) Pause(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.paused {
		return
	}
	c.paused = true
	c.pauseStart = now
}

// Resume ends the current pause at now, folding the pause interval into the
// accumulated pause duration. A no-op if not paused.
//
// sessionStart is never touched here: elapsed active time continues from
// the value frozen at Pause, which is what keeps time from being lost
// across pause/resume cycles.
func (c *Clock) Resume(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || !c.paused {
		return
	}

	pauseLen := now.Sub(c.pauseStart)
	if pauseLen > 0 {
		c.accumulatedPause += pauseLen
	}
	c.paused = false
	c.pauseStart = time.Time{}
}

// ElapsedActive returns the elapsed active duration at now:
//
//	(now - sessionStart) - accumulatedPause - (now - pauseStart if paused)
//
// While paused the open-pause term grows at the same rate as the first
// term, so the result stays frozen at the value captured when the pause
// began. A now before sessionStart is clamped to zero and counted as an
// inconsistency.
func (c *Clock) ElapsedActive(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return 0
	}

	elapsed := now.Sub(c.sessionStart) - c.accumulatedPause
	if c.paused {
		elapsed -= now.Sub(c.pauseStart)
	}

	if elapsed < 0 {
		c.inconsistencies++
		return 0
	}
	return elapsed
}

// IsPaused reports whether the clock is currently paused.
func (c *Clock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// IsStarted reports whether Start has been called.
func (c *Clock) IsStarted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started
}

// SessionStart returns the time passed to Start, or the zero time if the
// clock is unstarted.
func (c *Clock) SessionStart() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionStart
}

// AccumulatedPause returns the sum of all completed pause intervals. An
// open pause is not included until Resume.
func (c *Clock) AccumulatedPause() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accumulatedPause
}

// InconsistencyCount returns how many times ElapsedActive observed a time
// before sessionStart and clamped the result to zero.
func (c *Clock) InconsistencyCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inconsistencies
}
