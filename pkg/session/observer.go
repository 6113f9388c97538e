package session

import (
	"sync"
	"time"

	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/split"
)

// LiveMetrics is the live view pushed to observers on every recompute
// tick. It is a value copy; observers may retain it.
type LiveMetrics struct {
	SessionID string
	Activity  activity.Type
	State     State

	// ElapsedActive is the active time excluding pauses.
	ElapsedActive time.Duration

	// Distance is cumulative distance in meters.
	Distance float64

	// Pace is the session average pace in minutes per kilometer, NaN
	// until distance has been covered.
	Pace float64

	// HeartRate is the latest accepted reading in bpm, 0 before any.
	HeartRate float64

	// Calories is cumulative active energy in kcal.
	Calories float64

	// CompletedSplits is the number of closed splits so far.
	CompletedSplits int

	// CurrentSplit is the in-progress split.
	CurrentSplit split.Split
}

// Observer receives session lifecycle and live-metric pushes. Callbacks
// are invoked outside the controller lock but sequentially; a slow
// observer delays later notifications, not the session itself.
type Observer interface {
	// HandleStateChange is called after every accepted transition.
	HandleStateChange(from, to State)

	// HandleLiveMetrics is called once per recompute tick.
	HandleLiveMetrics(metrics LiveMetrics)

	// HandleSplitCompleted is called once per closed split, in order.
	HandleSplitCompleted(s split.Split)
}

// observerRegistry manages observer registration. Notification happens
// from a snapshot taken under the lock, so observers may register or
// unregister from within a callback without deadlocking.
type observerRegistry struct {
	mu        sync.RWMutex
	nextID    uint64
	observers map[uint64]Observer
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{observers: make(map[uint64]Observer)}
}

func (r *observerRegistry) add(o Observer) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.observers[id] = o
	return id
}

func (r *observerRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.observers, id)
}

func (r *observerRegistry) snapshot() []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Observer, 0, len(r.observers))
	for _, o := range r.observers {
		out = append(out, o)
	}
	return out
}
