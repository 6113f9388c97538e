package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogAdapterEmitsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "abc123",
		Category:  CategoryState,
		Activity:  "CYCLING",
		State:     &StateChangeEvent{From: "ACTIVE", To: "PAUSED", Accepted: true},
	})

	out := buf.String()
	for _, want := range []string{"session_id=abc123", "category=STATE", "activity=CYCLING", "from=ACTIVE", "to=PAUSED"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterAnomalyPayload(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		SessionID: "abc123",
		Category:  CategoryAnomaly,
		Anomaly:   &AnomalyEvent{Metric: "distance", Verdict: "CLAMP", Candidate: 250, Applied: 50, Reason: "speed above activity ceiling"},
	})

	out := buf.String()
	for _, want := range []string{"metric=distance", "verdict=CLAMP", "candidate=250", "applied=50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}
