package split

import (
	"math"
	"testing"
	"time"
)

func TestSingleSplitClose(t *testing.T) {
	tr := NewTracker(1000)

	if closed := tr.Update(400, 2*time.Minute); closed != nil {
		t.Fatalf("closed %d splits before first boundary", len(closed))
	}

	closed := tr.Update(1050, 5*time.Minute)
	if len(closed) != 1 {
		t.Fatalf("closed = %d splits, want 1", len(closed))
	}

	s := closed[0]
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1", s.Index)
	}
	if s.Distance != 1000 {
		t.Errorf("Distance = %v, want 1000", s.Distance)
	}
	if s.Elapsed != 5*time.Minute {
		t.Errorf("Elapsed = %v, want 5m", s.Elapsed)
	}
	if math.Abs(s.Pace-5.0) > 1e-9 {
		t.Errorf("Pace = %v, want 5.0", s.Pace)
	}
	if !s.Completed {
		t.Error("Completed = false on closed split")
	}
}

// spec.md §8: 2500 m at 900 s => 2 completed splits + in-progress near 500 m.
func TestUniformProgressScenario(t *testing.T) {
	tr := NewTracker(1000)

	// Roughly uniform input: 100 m every 36 s.
	for i := 1; i <= 25; i++ {
		tr.Update(float64(i)*100, time.Duration(i*36)*time.Second)
	}

	if got := tr.CompletedCount(); got != 2 {
		t.Fatalf("CompletedCount = %d, want 2", got)
	}

	for i, s := range tr.Completed() {
		wantElapsed := 360 * time.Second
		if s.Elapsed != wantElapsed {
			t.Errorf("split %d Elapsed = %v, want %v", i+1, s.Elapsed, wantElapsed)
		}
		if math.Abs(s.Pace-6.0) > 0.01 {
			t.Errorf("split %d Pace = %v, want ~6.0", i+1, s.Pace)
		}
	}

	cur := tr.Current()
	if cur.Index != 3 {
		t.Errorf("current Index = %d, want 3", cur.Index)
	}
	if math.Abs(cur.Distance-500) > 1e-9 {
		t.Errorf("current Distance = %v, want 500", cur.Distance)
	}
	if cur.Completed {
		t.Error("current split reported completed")
	}
}

// spec.md §8: a jump from 900 m to 2100 m over 60 s closes 2 splits, each
// attributed roughly half the elapsed time.
func TestMultiSplitJumpEvenDistribution(t *testing.T) {
	tr := NewTracker(1000)

	tr.Update(900, 5*time.Minute)
	closed := tr.Update(2100, 6*time.Minute)

	if len(closed) != 2 {
		t.Fatalf("closed = %d splits, want 2", len(closed))
	}
	for i, s := range closed {
		if s.Elapsed != 3*time.Minute {
			t.Errorf("split %d Elapsed = %v, want 3m (even share)", i+1, s.Elapsed)
		}
		if s.Elapsed == 0 {
			t.Errorf("split %d attributed zero time", i+1)
		}
	}
	if closed[0].Index != 1 || closed[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 1, 2", closed[0].Index, closed[1].Index)
	}
}

func TestZeroElapsedSplitHasNaNPace(t *testing.T) {
	tr := NewTracker(1000)

	// Distance appears with no elapsed time at all.
	closed := tr.Update(1000, 0)
	if len(closed) != 1 {
		t.Fatalf("closed = %d splits, want 1", len(closed))
	}
	if !math.IsNaN(closed[0].Pace) {
		t.Errorf("Pace = %v, want NaN sentinel", closed[0].Pace)
	}
}

func TestOnCompletedCallbackPerSplit(t *testing.T) {
	tr := NewTracker(1000)

	var got []Split
	tr.OnCompleted(func(s Split) { got = append(got, s) })

	tr.Update(500, time.Minute)
	tr.Update(3200, 10*time.Minute)

	if len(got) != 3 {
		t.Fatalf("callback fired %d times, want 3", len(got))
	}
	for i, s := range got {
		if s.Index != i+1 {
			t.Errorf("callback %d: Index = %d, want %d", i, s.Index, i+1)
		}
	}
}

func TestNoResurveyOnStableDistance(t *testing.T) {
	tr := NewTracker(1000)

	tr.Update(1500, 5*time.Minute)
	if closed := tr.Update(1500, 6*time.Minute); closed != nil {
		t.Errorf("re-closed %d splits on unchanged distance", len(closed))
	}
	if got := tr.CompletedCount(); got != 1 {
		t.Errorf("CompletedCount = %d, want 1", got)
	}
}

func TestRejectsNonFiniteDistance(t *testing.T) {
	tr := NewTracker(1000)

	tr.Update(500, time.Minute)
	if closed := tr.Update(math.NaN(), 2*time.Minute); closed != nil {
		t.Error("NaN distance closed splits")
	}
	if closed := tr.Update(math.Inf(1), 2*time.Minute); closed != nil {
		t.Error("Inf distance closed splits")
	}
	if got := tr.CompletedCount(); got != 0 {
		t.Errorf("CompletedCount = %d, want 0", got)
	}
}

func TestDefaultSplitDistanceFallback(t *testing.T) {
	for _, d := range []float64{0, -5, math.NaN()} {
		tr := NewTracker(d)
		if got := tr.SplitDistance(); got != 1000 {
			t.Errorf("NewTracker(%v).SplitDistance() = %v, want 1000", d, got)
		}
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker(1000)
	tr.Update(2500, 10*time.Minute)
	tr.Reset()

	if got := tr.CompletedCount(); got != 0 {
		t.Errorf("CompletedCount after Reset = %d, want 0", got)
	}
	cur := tr.Current()
	if cur.Index != 1 || cur.Distance != 0 {
		t.Errorf("Current after Reset = %+v, want fresh split 1", cur)
	}
}

func TestCurrentElapsedTracksSinceBoundary(t *testing.T) {
	tr := NewTracker(1000)
	tr.Update(1200, 6*time.Minute)
	tr.Update(1400, 7*time.Minute)

	cur := tr.Current()
	if cur.Elapsed != time.Minute {
		t.Errorf("current Elapsed = %v, want 1m", cur.Elapsed)
	}
	if math.Abs(cur.Distance-400) > 1e-9 {
		t.Errorf("current Distance = %v, want 400", cur.Distance)
	}
}
