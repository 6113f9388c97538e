package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openstride/stride-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := writeTestLog(t)

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats() error = %v", err)
	}

	if stats.TotalEvents != 4 {
		t.Errorf("TotalEvents = %v, want 4", stats.TotalEvents)
	}
	if stats.ByCategory[log.CategoryState] != 1 {
		t.Errorf("state events = %v, want 1", stats.ByCategory[log.CategoryState])
	}
	if stats.ByCategory[log.CategoryAnomaly] != 1 {
		t.Errorf("anomaly events = %v, want 1", stats.ByCategory[log.CategoryAnomaly])
	}
	if len(stats.BySession) != 2 {
		t.Errorf("sessions = %v, want 2", len(stats.BySession))
	}
	if stats.ByMetric["distance"] != 1 {
		t.Errorf("distance anomalies = %v, want 1", stats.ByMetric["distance"])
	}
	if !stats.FirstEvent.Equal(testBase) {
		t.Errorf("FirstEvent = %v, want %v", stats.FirstEvent, testBase)
	}
}

func TestRunStats(t *testing.T) {
	path := writeTestLog(t)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total events: 4",
		"STATE",
		"ANOMALY",
		"Sessions (2):",
		"distance",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
