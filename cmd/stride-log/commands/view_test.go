package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/openstride/stride-go/pkg/log"
)

var testBase = time.Date(2026, 5, 14, 8, 0, 0, 0, time.UTC)

// writeTestLog writes a small session history and returns its path.
func writeTestLog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "events.cbor")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Log(log.Event{
		Timestamp: testBase,
		SessionID: "aaaaaaaa-1111-2222-3333-444444444444",
		Category:  log.CategoryState,
		Activity:  "RUNNING",
		State:     &log.StateChangeEvent{From: "IDLE", To: "ACTIVE", Accepted: true},
	})
	logger.Log(log.Event{
		Timestamp: testBase.Add(30 * time.Second),
		SessionID: "aaaaaaaa-1111-2222-3333-444444444444",
		Category:  log.CategoryAnomaly,
		Activity:  "RUNNING",
		Anomaly: &log.AnomalyEvent{
			Metric: "distance", Verdict: "CLAMP",
			Candidate: 500, Applied: 100, Reason: "speed above activity ceiling",
		},
	})
	logger.Log(log.Event{
		Timestamp: testBase.Add(5 * time.Minute),
		SessionID: "aaaaaaaa-1111-2222-3333-444444444444",
		Category:  log.CategorySplit,
		Activity:  "RUNNING",
		Split:     &log.SplitEvent{Index: 1, Distance: 1000, Elapsed: 5 * time.Minute, Pace: 5},
	})
	logger.Log(log.Event{
		Timestamp: testBase.Add(10 * time.Minute),
		SessionID: "bbbbbbbb-1111-2222-3333-444444444444",
		Category:  log.CategoryRecord,
		Activity:  "CYCLING",
		Record:    &log.RecordEvent{RecordID: "rec-1", Duration: 10 * time.Minute, Distance: 4500, Splits: 4},
	})

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return path
}

func TestRunView(t *testing.T) {
	path := writeTestLog(t)

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunView() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"IDLE -> ACTIVE",
		"Metric: distance",
		"Candidate: 500.00 -> Applied: 100.00",
		"Split 1: 1000 m in 5m0s",
		"Record: rec-1",
		"aaaaaaaa",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunViewFiltered(t *testing.T) {
	path := writeTestLog(t)

	category := log.CategoryAnomaly
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Category: &category}, &buf); err != nil {
		t.Fatalf("RunView() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "ANOMALY") {
		t.Errorf("output missing anomaly event:\n%s", out)
	}
	if strings.Contains(out, "SPLIT") || strings.Contains(out, "RECORD") {
		t.Errorf("filter leaked other categories:\n%s", out)
	}
}

func TestBuildFilter(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		filter, err := BuildFilter("abc", "split")
		if err != nil {
			t.Fatalf("BuildFilter() error = %v", err)
		}
		if filter.SessionID != "abc" {
			t.Errorf("SessionID = %v, want abc", filter.SessionID)
		}
		if filter.Category == nil || *filter.Category != log.CategorySplit {
			t.Errorf("Category = %v, want SPLIT", filter.Category)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		if _, err := BuildFilter("", "bogus"); err == nil {
			t.Error("BuildFilter() error = nil for invalid category")
		}
	})
}
