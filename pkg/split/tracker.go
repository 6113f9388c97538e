package split

import (
	"math"
	"sync"
	"time"

	"github.com/openstride/stride-go/pkg/activity"
)

// Split is one fixed-distance segment of a session.
type Split struct {
	// Index is 1-based.
	Index int

	// Distance is the distance covered within this split in meters. Equal
	// to the split distance for completed splits, partial otherwise.
	Distance float64

	// Elapsed is the active time attributed to this split.
	Elapsed time.Duration

	// Pace is in minutes per kilometer; NaN when Elapsed is zero or
	// non-finite.
	Pace float64

	// Completed is false only for the in-progress split.
	Completed bool
}

// Tracker derives completed splits and the in-progress split from
// cumulative distance and elapsed active time. It holds no timers and does
// no I/O; Update is called from the session recompute tick.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	splitDistance float64
	completed     []Split

	// lastBoundary is the elapsed active time at which the most recent
	// split boundary was attributed.
	lastBoundary time.Duration

	// lastDistance and lastElapsed mirror the most recent Update inputs
	// for the in-progress split view.
	lastDistance float64
	lastElapsed  time.Duration

	onCompleted func(Split)
}

// NewTracker creates a tracker with the given split distance in meters.
// Non-positive distances fall back to the default 1000 m.
func NewTracker(splitDistance float64) *Tracker {
	if splitDistance <= 0 || math.IsNaN(splitDistance) || math.IsInf(splitDistance, 0) {
		splitDistance = activity.DefaultSplitDistance
	}
	return &Tracker{splitDistance: splitDistance}
}

// OnCompleted sets the callback invoked once per newly closed split, in
// order. The callback runs outside the tracker lock.
func (t *Tracker) OnCompleted(fn func(Split)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCompleted = fn
}

// Update feeds the current cumulative distance (meters) and elapsed active
// time into the tracker and returns the splits closed by this update, if
// any.
//
// When the distance crosses k >= 1 boundaries in one update (a GPS jump can
// skip several splits in a single tick), the elapsed time since the last
// boundary is distributed evenly across all k closed splits. No split is
// ever attributed zero time while others absorb the whole interval.
func (t *Tracker) Update(cumulativeDistance float64, elapsed time.Duration) []Split {
	t.mu.Lock()

	if math.IsNaN(cumulativeDistance) || math.IsInf(cumulativeDistance, 0) || cumulativeDistance < 0 {
		t.mu.Unlock()
		return nil
	}

	t.lastDistance = cumulativeDistance
	t.lastElapsed = elapsed

	targetCount := int(math.Floor(cumulativeDistance / t.splitDistance))
	k := targetCount - len(t.completed)
	if k <= 0 {
		t.mu.Unlock()
		return nil
	}

	share := (elapsed - t.lastBoundary) / time.Duration(k)
	closed := make([]Split, 0, k)
	for i := 0; i < k; i++ {
		s := Split{
			Index:     len(t.completed) + 1,
			Distance:  t.splitDistance,
			Elapsed:   share,
			Pace:      pace(share, t.splitDistance),
			Completed: true,
		}
		t.completed = append(t.completed, s)
		closed = append(closed, s)
	}
	t.lastBoundary = elapsed

	fn := t.onCompleted
	t.mu.Unlock()

	if fn != nil {
		for _, s := range closed {
			fn(s)
		}
	}
	return closed
}

// Current returns the in-progress split as of the last Update.
func (t *Tracker) Current() Split {
	t.mu.Lock()
	defer t.mu.Unlock()

	dist := t.lastDistance - float64(len(t.completed))*t.splitDistance
	if dist < 0 {
		dist = 0
	}
	elapsed := t.lastElapsed - t.lastBoundary
	if elapsed < 0 {
		elapsed = 0
	}

	return Split{
		Index:    len(t.completed) + 1,
		Distance: dist,
		Elapsed:  elapsed,
		Pace:     pace(elapsed, dist),
	}
}

// Completed returns a copy of the closed splits in order.
func (t *Tracker) Completed() []Split {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Split, len(t.completed))
	copy(out, t.completed)
	return out
}

// CompletedCount returns the number of closed splits.
func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.completed)
}

// SplitDistance returns the configured split distance in meters.
func (t *Tracker) SplitDistance() float64 {
	return t.splitDistance
}

// Reset discards all split state, keeping the configured distance.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed = nil
	t.lastBoundary = 0
	t.lastDistance = 0
	t.lastElapsed = 0
}

func pace(elapsed time.Duration, distance float64) float64 {
	return activity.Pace(elapsed, distance)
}
