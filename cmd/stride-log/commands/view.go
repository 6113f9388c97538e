// Package commands implements the stride-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/openstride/stride-go/pkg/log"
)

// BuildFilter parses the common -session and -category flags into a log
// filter.
func BuildFilter(session, category string) (log.Filter, error) {
	filter := log.Filter{SessionID: session}
	if category != "" {
		c, err := parseCategory(category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "anomaly":
		return log.CategoryAnomaly, nil
	case "split":
		return log.CategorySplit, nil
	case "metrics":
		return log.CategoryMetrics, nil
	case "record":
		return log.CategoryRecord, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, anomaly, split, metrics, or record)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s [%s] %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Category, event.Activity)

	switch {
	case event.State != nil:
		formatStateDetails(w, event.State)
	case event.Anomaly != nil:
		formatAnomalyDetails(w, event.Anomaly)
	case event.Split != nil:
		formatSplitDetails(w, event.Split)
	case event.Metrics != nil:
		formatMetricsDetails(w, event.Metrics)
	case event.Record != nil:
		formatRecordDetails(w, event.Record)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStateDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.Accepted {
		fmt.Fprintf(w, "  %s -> %s\n", sc.From, sc.To)
	} else {
		fmt.Fprintf(w, "  %s (rejected)\n", sc.From)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatAnomalyDetails(w io.Writer, a *log.AnomalyEvent) {
	fmt.Fprintf(w, "  Metric: %s\n", a.Metric)
	fmt.Fprintf(w, "  Verdict: %s\n", a.Verdict)
	if a.Verdict == "CLAMP" {
		fmt.Fprintf(w, "  Candidate: %.2f -> Applied: %.2f\n", a.Candidate, a.Applied)
	} else {
		fmt.Fprintf(w, "  Candidate: %.2f\n", a.Candidate)
	}
	if a.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", a.Reason)
	}
}

func formatSplitDetails(w io.Writer, s *log.SplitEvent) {
	fmt.Fprintf(w, "  Split %d: %.0f m in %s\n", s.Index, s.Distance, formatDuration(s.Elapsed))
	if s.Pace > 0 {
		fmt.Fprintf(w, "  Pace: %.2f min/km\n", s.Pace)
	}
}

func formatMetricsDetails(w io.Writer, m *log.MetricsEvent) {
	fmt.Fprintf(w, "  Elapsed: %s  Distance: %.0f m", formatDuration(m.Elapsed), m.Distance)
	if m.HeartRate > 0 {
		fmt.Fprintf(w, "  HR: %.0f bpm", m.HeartRate)
	}
	fmt.Fprintln(w)
}

func formatRecordDetails(w io.Writer, r *log.RecordEvent) {
	fmt.Fprintf(w, "  Record: %s\n", r.RecordID)
	fmt.Fprintf(w, "  Duration: %s  Distance: %.0f m  Splits: %d\n",
		formatDuration(r.Duration), r.Distance, r.Splits)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
